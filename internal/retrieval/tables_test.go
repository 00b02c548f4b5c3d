package retrieval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTables(t *testing.T) {
	tables := DefaultTables()

	assert.Equal(t, "Layout/", tables.NavigationPrefix)
	assert.Equal(t, 500, tables.ExcerptLength)
	assert.Equal(t, 3, tables.MaxResults)
	require.NotEmpty(t, tables.Priority)
	assert.Equal(t, "klant", tables.Priority[0].Keyword)
	assert.Equal(t, "Layout/relaties.txt", tables.Priority[0].Document)
	assert.Contains(t, tables.Greetings, "hallo")
}

func TestParseTables_NormalizesAndDefaults(t *testing.T) {
	data := []byte(`
greetings: ["  Hallo "]
domain_keywords: [Klant, ""]
synonyms:
  - key: Klant
    variants: [KLANTEN]
priority:
  - keyword: Klant
    document: Layout/Klanten.txt
`)
	tables, err := ParseTables(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"hallo"}, tables.Greetings)
	assert.Equal(t, []string{"klant"}, tables.DomainKeywords)
	assert.Equal(t, "klant", tables.Synonyms[0].Key)
	assert.Equal(t, []string{"klanten"}, tables.Synonyms[0].Variants)
	assert.Equal(t, "klant", tables.Priority[0].Keyword)
	assert.Equal(t, "Layout/Klanten.txt", tables.Priority[0].Document)
	assert.Equal(t, 500, tables.ExcerptLength)
	assert.Equal(t, 3, tables.MaxResults)
}

func TestParseTables_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed yaml", "greetings: [unclosed"},
		{"synonym without key", "synonyms:\n  - variants: [a]\n"},
		{"priority without document", "priority:\n  - keyword: klant\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTables([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_results: 5\nnavigation_prefix: Schermen/\n"), 0o644))

	tables, err := LoadTables(path)
	require.NoError(t, err)
	assert.Equal(t, 5, tables.MaxResults)
	assert.Equal(t, "Schermen/", tables.NavigationPrefix)

	_, err = LoadTables(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
