package retrieval

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTablesYAML []byte

// Synonym groups morphological and business variants of one term.
type Synonym struct {
	Key      string   `yaml:"key"`
	Variants []string `yaml:"variants"`
}

// PriorityRule maps a query keyword to the document that must lead navigation answers.
type PriorityRule struct {
	Keyword  string `yaml:"keyword"`
	Document string `yaml:"document"`
}

// Tables holds every keyword list the classifier and engine match against.
type Tables struct {
	Greetings          []string       `yaml:"greetings"`
	DomainKeywords     []string       `yaml:"domain_keywords"`
	NavigationKeywords []string       `yaml:"navigation_keywords"`
	Synonyms           []Synonym      `yaml:"synonyms"`
	Priority           []PriorityRule `yaml:"priority"`
	NavigationPrefix   string         `yaml:"navigation_prefix"`
	ExcerptLength      int            `yaml:"excerpt_length"`
	MaxResults         int            `yaml:"max_results"`
}

const (
	defaultExcerptLength = 500
	defaultMaxResults    = 3
)

// DefaultTables returns the built-in tables.
func DefaultTables() *Tables {
	t, err := ParseTables(defaultTablesYAML)
	if err != nil {
		panic(fmt.Sprintf("retrieval: embedded tables: %v", err))
	}
	return t
}

// LoadTables reads tables from a YAML file.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables: %w", err)
	}
	return ParseTables(data)
}

// ParseTables decodes YAML tables and lower-cases every keyword.
func ParseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse tables: %w", err)
	}
	if err := t.normalize(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Tables) normalize() error {
	if t.ExcerptLength <= 0 {
		t.ExcerptLength = defaultExcerptLength
	}
	if t.MaxResults <= 0 {
		t.MaxResults = defaultMaxResults
	}

	t.Greetings = lowerAll(t.Greetings)
	t.DomainKeywords = lowerAll(t.DomainKeywords)
	t.NavigationKeywords = lowerAll(t.NavigationKeywords)

	for i := range t.Synonyms {
		t.Synonyms[i].Key = strings.ToLower(strings.TrimSpace(t.Synonyms[i].Key))
		t.Synonyms[i].Variants = lowerAll(t.Synonyms[i].Variants)
		if t.Synonyms[i].Key == "" {
			return fmt.Errorf("parse tables: synonym %d has no key", i)
		}
	}
	for i := range t.Priority {
		t.Priority[i].Keyword = strings.ToLower(strings.TrimSpace(t.Priority[i].Keyword))
		if t.Priority[i].Keyword == "" || t.Priority[i].Document == "" {
			return fmt.Errorf("parse tables: priority rule %d needs keyword and document", i)
		}
	}
	return nil
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
