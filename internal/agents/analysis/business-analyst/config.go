// internal/agents/analysis/business-analyst/config.go
package businessanalyst

type Config struct {
	Weights         map[string]float64
	ProjectionYears int
}

func LoadConfig() *Config {
	return &Config{
		Weights: map[string]float64{
			MetricRevenue:           0.25,
			MetricGrowth:            0.25,
			MetricMargins:           0.20,
			MetricScalability:       0.15,
			MetricCapitalEfficiency: 0.15,
		},
		ProjectionYears: 3,
	}
}
