// internal/agents/analysis/risk-analyst/config.go
package riskanalyst

import "startup-analyst/internal/models"

type Config struct {
	BaseRisk map[string]float64
	Weights  map[string]float64
	// Categories above this level get a mitigation entry.
	MitigationThreshold float64
}

func LoadConfig() *Config {
	return &Config{
		BaseRisk: map[string]float64{
			models.RiskMarket:     0.30,
			models.RiskTeam:       0.25,
			models.RiskFinancial:  0.30,
			models.RiskTechnology: 0.20,
		},
		Weights: map[string]float64{
			models.RiskMarket:     0.30,
			models.RiskTeam:       0.25,
			models.RiskFinancial:  0.25,
			models.RiskTechnology: 0.20,
		},
		MitigationThreshold: 0.5,
	}
}
