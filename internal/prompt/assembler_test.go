package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/qubz-assistant/internal/retrieval"
	"github.com/bull/qubz-assistant/internal/storage"
)

func pipeline(store *storage.Store, query string) (retrieval.Result, retrieval.Classification) {
	class := retrieval.NewClassifier(nil).Classify(query)
	return retrieval.NewEngine(store, nil).Retrieve(query, class), class
}

// instructionBlock returns everything after the layout reminder line.
func instructionBlock(t *testing.T, prompt string) string {
	t.Helper()
	reminder := DefaultTemplate().LayoutReminder + "\n"
	idx := strings.Index(prompt, reminder)
	require.GreaterOrEqual(t, idx, 0, "layout reminder missing")
	return prompt[idx+len(reminder):]
}

func TestAssemble_Greeting(t *testing.T) {
	a := NewAssembler()
	result, class := pipeline(storage.NewStore(), "hallo")

	prompt := a.Assemble("hallo", result, class)

	assert.Equal(t, DefaultTemplate().Greeting, instructionBlock(t, prompt))
	assert.NotContains(t, prompt, DefaultTemplate().DocumentsLabel)
	assert.Contains(t, prompt, "Vraag: hallo")
}

func TestAssemble_OutOfDomainRefuses(t *testing.T) {
	store := storage.NewStore()
	store.AddDocument("Layout/relaties.txt", "Relaties beheren.", storage.TypeText)
	a := NewAssembler()
	query := "Wat is de hoofdstad van Nederland?"
	result, class := pipeline(store, query)

	prompt := a.Assemble(query, result, class)

	assert.Equal(t, DefaultTemplate().Refusal, instructionBlock(t, prompt))
	assert.Contains(t, prompt, RefusalMessage)
	assert.NotContains(t, prompt, "Layout/relaties.txt:")
}

func TestAssemble_DocumentsBlock(t *testing.T) {
	store := storage.NewStore()
	store.AddDocument("Handleiding/intro.txt", "Uitleg over relaties.", storage.TypeText)
	store.AddDocument("Layout/relaties.txt", "Menu Relaties > Nieuw.", storage.TypeText)
	a := NewAssembler()
	query := "Hoe maak ik een nieuwe klant aan?"
	result, class := pipeline(store, query)

	prompt := a.Assemble(query, result, class)

	assert.Contains(t, prompt, "Relevant documents:\nLayout/relaties.txt: Menu Relaties > Nieuw.\n\nHandleiding/intro.txt: Uitleg over relaties.")
	assert.Equal(t, DefaultTemplate().Documents, instructionBlock(t, prompt))
}

func TestAssemble_AlwaysContainsQueryAndReminder(t *testing.T) {
	store := storage.NewStore()
	store.AddDocument("Layout/orders.txt", "Orders aanmaken via Orders > Nieuw.", storage.TypeText)
	a := NewAssembler()

	queries := []string{
		"hallo",
		"Goedemiddag!",
		"Wat is de hoofdstad van Nederland?",
		"Waar maak ik een order aan?",
		"Welke containers zijn er?",
		"",
	}
	for _, q := range queries {
		result, class := pipeline(store, q)
		prompt := a.Assemble(q, result, class)

		assert.True(t, strings.HasPrefix(prompt, DefaultTemplate().Persona), q)
		assert.Contains(t, prompt, q)
		assert.Contains(t, prompt, DefaultTemplate().LayoutReminder, q)
	}
}

func TestAssemble_EmptyStoreInDomainRefuses(t *testing.T) {
	a := NewAssembler()
	query := "Hoe maak ik een nieuwe klant aan?"
	result, class := pipeline(storage.NewStore(), query)

	assert.Equal(t, retrieval.InDomain, class.Kind)
	assert.Equal(t, DefaultTemplate().Refusal, instructionBlock(t, a.Assemble(query, result, class)))
}

func TestAssemble_CustomTemplate(t *testing.T) {
	tmpl := DefaultTemplate()
	tmpl.Persona = "You are a test assistant."
	tmpl.Refusal = "- refuse"
	a := NewAssemblerWithTemplate(tmpl)

	prompt := a.Assemble("anything", retrieval.Result{}, retrieval.Classification{})

	assert.True(t, strings.HasPrefix(prompt, "You are a test assistant."))
	assert.True(t, strings.HasSuffix(prompt, "- refuse"))
}
