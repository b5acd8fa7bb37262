package scenarios

import (
	"github.com/ngodron/power-sim-MTB/pkg/config"
)

// Scenario describes one cohort composition to run the power analysis
// against. Both scenarios share the same genetic architecture and pipeline;
// only cohort size and target heritability differ.
type Scenario struct {
	Name         string
	Description  string
	Tag          string  // dataset tag written into every replicate row
	CohortSize   int     // number of individuals drawn per replicate
	Heritability float64 // target h2 used to calibrate phenotype noise
}

// GenerateAll builds the available scenarios from the configuration
func GenerateAll(cfg config.Config) map[string]Scenario {
	return map[string]Scenario{
		"susceptible": {
			Name:         "Susceptible Only",
			Description:  "Cohort restricted to drug-susceptible isolates; smaller sample, stronger genetic signal",
			Tag:          "susceptible",
			CohortSize:   cfg.Susceptible.Size,
			Heritability: cfg.Susceptible.Heritability,
		},
		"combined": {
			Name:         "Susceptible + Resistant",
			Description:  "Cohort pooling susceptible and resistant isolates; larger sample, diluted heritability",
			Tag:          "combined",
			CohortSize:   cfg.Combined.Size,
			Heritability: cfg.Combined.Heritability,
		},
	}
}

// GetByName returns a specific scenario by name
func GetByName(name string, cfg config.Config) (Scenario, bool) {
	scenario, exists := GenerateAll(cfg)[name]
	return scenario, exists
}

// GetValidScenarioNames returns a list of all valid scenario names
func GetValidScenarioNames() []string {
	return []string{"all", "susceptible", "combined"}
}
