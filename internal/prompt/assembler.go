// Package prompt builds the text sent to a language model from a query and its retrieval.
package prompt

import (
	"strings"

	"github.com/bull/qubz-assistant/internal/retrieval"
)

// Template holds the fixed wording of an assembled prompt.
type Template struct {
	Persona           string // Opening line naming the assistant's domain
	QueryLabel        string
	DocumentsLabel    string
	InstructionsLabel string
	LayoutReminder    string // Always included, regardless of classification
	Greeting          string
	Documents         string
	Refusal           string
}

// RefusalMessage is the canned answer for questions outside the business domain.
const RefusalMessage = "Sorry, ik kan alleen vragen beantwoorden die gerelateerd zijn aan 21Qubz en 21south. Heb je vragen over onze diensten of processen?"

// DefaultTemplate returns the Dutch 21Qubz/21south wording.
func DefaultTemplate() Template {
	return Template{
		Persona:           "Je bent een AI-assistent voor 21Qubz en 21south.",
		QueryLabel:        "Vraag:",
		DocumentsLabel:    "Relevant documents:",
		InstructionsLabel: "INSTRUCTIES:",
		LayoutReminder: "BELANGRIJK: Als er gevraagd wordt waar je iets kunt maken, toevoegen, vinden, of navigeren in het systeem, " +
			"raadpleeg dan eerst de navigatiepaden in de Layout bestanden (zoals Layout/relaties.txt, Layout/contract-management.txt, enz.) voor de juiste stappen.",
		Greeting: "- De gebruiker begroet je. Groet vriendelijk terug in het Nederlands, stel jezelf kort voor als de assistent van 21Qubz en 21south, " +
			"en vraag waarmee je kunt helpen.",
		Documents: "- Er zijn relevante documenten gevonden, dus beantwoord de vraag in het Nederlands gebaseerd op deze documentinformatie.",
		Refusal:   "- Deze vraag is niet gerelateerd aan 21Qubz of 21south. Antwoord precies: \"" + RefusalMessage + "\"",
	}
}

// Assembler renders prompts from a Template.
type Assembler struct {
	tmpl Template
}

// NewAssembler creates an assembler with the default template.
func NewAssembler() *Assembler {
	return &Assembler{tmpl: DefaultTemplate()}
}

// NewAssemblerWithTemplate creates an assembler with custom wording.
func NewAssemblerWithTemplate(tmpl Template) *Assembler {
	return &Assembler{tmpl: tmpl}
}

// Assemble builds the prompt for query. It has no side effects.
//
// The instruction block branches on the retrieval: the greeting sentinel yields the
// greeting branch, documents yield the documents branch and an empty result yields the
// refusal. The classification is accepted for callers that want to vary the template
// and does not change the branch on its own.
func (a *Assembler) Assemble(query string, result retrieval.Result, _ retrieval.Classification) string {
	var b strings.Builder

	b.WriteString(a.tmpl.Persona)
	b.WriteString("\n\n")
	b.WriteString(a.tmpl.QueryLabel)
	b.WriteString(" ")
	b.WriteString(query)

	docs := result.Documents()
	if !result.IsGreeting() && len(docs) > 0 {
		b.WriteString("\n\n")
		b.WriteString(a.tmpl.DocumentsLabel)
		b.WriteString("\n")
		for i, d := range docs {
			if i > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString(d.Identifier)
			b.WriteString(": ")
			b.WriteString(d.Content)
		}
	}

	b.WriteString("\n\n")
	b.WriteString(a.tmpl.InstructionsLabel)
	b.WriteString("\n")
	b.WriteString(a.tmpl.LayoutReminder)
	b.WriteString("\n")
	b.WriteString(a.Instruction(result))
	return b.String()
}

// Instruction returns the trailing instruction branch selected by result.
func (a *Assembler) Instruction(result retrieval.Result) string {
	switch {
	case result.IsGreeting():
		return a.tmpl.Greeting
	case len(result.Documents()) > 0:
		return a.tmpl.Documents
	default:
		return a.tmpl.Refusal
	}
}
