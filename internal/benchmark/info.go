package benchmark

// Info describes the benchmark capabilities exposed to clients.
type Info struct {
	AvailableTestTypes []string `json:"availableTestTypes"`
	Providers          []string `json:"providers"`
	Metrics            []string `json:"metrics"`
	Description        string   `json:"description"`
}

// Describe returns the Info for the given providers.
func Describe(providers []string) Info {
	return Info{
		AvailableTestTypes: TestTypes,
		Providers:          providers,
		Metrics: []string{
			"response_time",
			"token_usage",
			"response_length",
			"success_rate",
			"error_rate",
		},
		Description: "AI Provider Benchmark Tool - Compare provider performance on 21Qubz scenarios",
	}
}
