// internal/agents/analysis/market-analyst/config.go
package marketanalyst

type Config struct {
	Weights map[string]float64
}

func LoadConfig() *Config {
	return &Config{
		Weights: map[string]float64{
			MetricMarketSize:    0.30,
			MetricGrowthRate:    0.25,
			MetricCompetition:   0.20,
			MetricTiming:        0.15,
			MetricAccessibility: 0.10,
		},
	}
}
