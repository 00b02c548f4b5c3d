package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name       string
		query      string
		kind       Kind
		navigation bool
	}{
		{"exact greeting", "hallo", Greeting, false},
		{"greeting with whitespace and case", "  Hallo  ", Greeting, false},
		{"greeting prefix", "Goedemorgen, ik heb een vraag over mijn klant", Greeting, false},
		{"greeting suffix", "ik ben er weer, hoi", Greeting, false},
		{"navigation in domain", "Hoe maak ik een nieuwe klant aan?", InDomain, true},
		{"in domain without navigation", "Welke containers heeft de klant?", InDomain, false},
		{"out of domain", "Wat is de hoofdstad van Nederland?", OutOfDomain, false},
		{"navigation words out of domain", "Where is the nearest beach?", OutOfDomain, false},
		{"dutch navigation words out of domain", "hoe laat is het?", OutOfDomain, false},
		{"keyword inside a longer word", "Overzicht van alle facturen", InDomain, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.query)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.navigation, got.Navigation)
		})
	}
}

func TestClassify_EveryGreetingWord(t *testing.T) {
	tables := DefaultTables()
	c := NewClassifier(tables)

	for _, g := range tables.Greetings {
		assert.Equal(t, Greeting, c.Classify(g).Kind, g)
		assert.Equal(t, Greeting, c.Classify(g+" daar").Kind, g)
		assert.Equal(t, Greeting, c.Classify("nou "+g).Kind, g)
	}
}

func TestClassify_MultiWordKeywordMustBeContiguous(t *testing.T) {
	tables := &Tables{DomainKeywords: []string{"nieuwe klant"}}
	c := NewClassifier(tables)

	assert.Equal(t, InDomain, c.Classify("Een Nieuwe Klant invoeren").Kind)
	assert.Equal(t, OutOfDomain, c.Classify("Een klant die nieuwe is").Kind)
}

func TestClassification_String(t *testing.T) {
	assert.Equal(t, "greeting", Classification{Kind: Greeting}.String())
	assert.Equal(t, "in_domain+navigation", Classification{Kind: InDomain, Navigation: true}.String())
	assert.Equal(t, "out_of_domain", Classification{Kind: OutOfDomain}.String())
}
