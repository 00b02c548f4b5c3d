// Package benchmark compares providers by running fixed scenarios through the chat
// pipeline and recording latency, token usage and success.
package benchmark

import (
	"fmt"
	"strings"
)

// Scenario is one benchmark prompt.
type Scenario struct {
	Name                 string `json:"name"`
	Description          string `json:"description"`
	Prompt               string `json:"prompt"`
	ExpectedResponseType string `json:"expectedResponseType"`
}

const (
	TestQuick  = "quick"
	TestFull   = "full"
	TestStress = "stress"
)

// TestTypes lists the available scenario sets.
var TestTypes = []string{TestQuick, TestFull, TestStress}

// NormalizeTestType trims and lower-cases testType. An empty type selects quick.
func NormalizeTestType(testType string) string {
	t := strings.ToLower(strings.TrimSpace(testType))
	if t == "" {
		return TestQuick
	}
	return t
}

// ScenariosFor returns the scenario set for testType. An empty type selects quick.
func ScenariosFor(testType string) ([]Scenario, error) {
	switch NormalizeTestType(testType) {
	case TestQuick:
		return quickScenarios, nil
	case TestFull:
		return fullScenarios, nil
	case TestStress:
		return stressScenarios, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTestType, testType)
	}
}

var fullScenarios = []Scenario{
	{
		Name:                 "Simple Question",
		Description:          "Test basic response speed with simple question",
		Prompt:               "Wat is de hoofdstad van Nederland?",
		ExpectedResponseType: "short_factual",
	},
	{
		Name:                 "21Qubz Domain Question",
		Description:          "Test domain-specific knowledge about 21Qubz services",
		Prompt:               "Leg uit wat 21Qubz doet en welke diensten zij aanbieden in de afvalinzameling.",
		ExpectedResponseType: "domain_specific",
	},
	{
		Name:                 "Complex Technical Question",
		Description:          "Test handling of complex technical queries",
		Prompt:               "Hoe werkt een ERP-systeem en wat zijn de voordelen ervan voor afvalinzamelingsbedrijven? Geef concrete voorbeelden.",
		ExpectedResponseType: "technical_detailed",
	},
	{
		Name:                 "Short Answer Request",
		Description:          "Test ability to provide concise responses",
		Prompt:               "Geef een korte definitie van duurzame afvalinzameling in maximaal 2 zinnen.",
		ExpectedResponseType: "concise",
	},
	{
		Name:                 "Step-by-Step Explanation",
		Description:          "Test structured response generation",
		Prompt:               "Leg stap voor stap uit hoe een nieuwe klant een afvalinzamelingscontract kan afsluiten bij 21Qubz.",
		ExpectedResponseType: "structured_steps",
	},
	{
		Name:                 "Problem Solving",
		Description:          "Test problem-solving and analytical thinking",
		Prompt:               "Een klant klaagt dat hun afval niet op tijd wordt opgehaald. Wat zijn mogelijke oorzaken en oplossingen?",
		ExpectedResponseType: "problem_solving",
	},
	{
		Name:                 "Creative Writing",
		Description:          "Test creative capabilities",
		Prompt:               "Schrijf een korte, vriendelijke e-mail aan een klant om hen te bedanken voor hun samenwerking met 21Qubz.",
		ExpectedResponseType: "creative",
	},
	{
		Name:                 "Numerical/Analytical",
		Description:          "Test handling of numerical and analytical queries",
		Prompt:               "Als een bedrijf 500kg afval per week produceert, hoeveel containers van 240 liter hebben ze nodig per maand?",
		ExpectedResponseType: "numerical",
	},
	{
		Name:                 "Long Form Content",
		Description:          "Test generation of longer, detailed content",
		Prompt:               "Schrijf een uitgebreide uitleg over de verschillende typen afval (restafval, gft, papier, etc.) en hoe deze door 21Qubz worden verwerkt. Gebruik subkoppen en geef praktische tips.",
		ExpectedResponseType: "long_form",
	},
	{
		Name:                 "Edge Case Question",
		Description:          "Test handling of unusual or edge case queries",
		Prompt:               "Wat gebeurt er als een container vol zit met gevaarlijk afval dat niet gemeld was? Welke protocollen volgt 21Qubz?",
		ExpectedResponseType: "edge_case",
	},
}

var quickScenarios = []Scenario{
	{
		Name:                 "21Qubz Bedrijfsinfo",
		Description:          "Basic company information",
		Prompt:               "Wat doet 21Qubz en welke diensten bieden jullie aan?",
		ExpectedResponseType: "company_info",
	},
	{
		Name:                 "Nieuwe Klant Toevoegen",
		Description:          "Navigation question about adding clients",
		Prompt:               "Hoe maak ik een nieuwe klant aan in het systeem?",
		ExpectedResponseType: "navigation_help",
	},
	{
		Name:                 "Contract Management",
		Description:          "Contract-related question",
		Prompt:               "Waar kan ik contracten beheren en nieuwe contracten aanmaken?",
		ExpectedResponseType: "contract_management",
	},
}

var stressScenarios = []Scenario{
	{
		Name:                 "Stress Test 1",
		Description:          "Complex multilayered question",
		Prompt:               "Analyseer de impact van nieuwe EU-wetgeving op circulaire economie voor afvalinzamelingsbedrijven zoals 21Qubz. Geef concrete aanbevelingen voor implementatie, kostenanalyse en tijdschema. Gebruik praktische voorbeelden en verwijs naar relevante stakeholders.",
		ExpectedResponseType: "complex_analysis",
	},
	{
		Name:                 "Stress Test 2",
		Description:          "Multiple question prompt",
		Prompt:               "1. Wat zijn de nieuwste trends in afvalinzameling? 2. Hoe beïnvloedt digitalisering deze sector? 3. Welke rol speelt AI in optimalisatie van routes? 4. Wat zijn de milieu-impact overwegingen? Beantwoord elke vraag uitgebreid.",
		ExpectedResponseType: "multiple_questions",
	},
}
