// Package retrieval classifies user queries and selects reference documents for them.
package retrieval

import "strings"

// Kind is the primary label of a query.
type Kind int

const (
	OutOfDomain Kind = iota
	InDomain
	Greeting
)

func (k Kind) String() string {
	switch k {
	case Greeting:
		return "greeting"
	case InDomain:
		return "in_domain"
	default:
		return "out_of_domain"
	}
}

// Classification labels a query. Navigation is only set on in-domain queries
// that ask where or how to do something.
type Classification struct {
	Kind       Kind
	Navigation bool
}

func (c Classification) String() string {
	if c.Navigation {
		return c.Kind.String() + "+navigation"
	}
	return c.Kind.String()
}

// Classifier labels queries by case-insensitive substring containment.
type Classifier struct {
	tables *Tables
}

// NewClassifier creates a classifier over the given tables (nil means defaults).
func NewClassifier(tables *Tables) *Classifier {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Classifier{tables: tables}
}

// Classify labels query. Greetings short-circuit every other check.
func (c *Classifier) Classify(query string) Classification {
	q := strings.ToLower(strings.TrimSpace(query))

	if c.isGreeting(q) {
		return Classification{Kind: Greeting}
	}

	if !containsAny(q, c.tables.DomainKeywords) {
		return Classification{Kind: OutOfDomain}
	}
	return Classification{
		Kind:       InDomain,
		Navigation: containsAny(q, c.tables.NavigationKeywords),
	}
}

func (c *Classifier) isGreeting(q string) bool {
	for _, g := range c.tables.Greetings {
		if q == g || strings.HasPrefix(q, g) || strings.HasSuffix(q, g) {
			return true
		}
	}
	return false
}
