// internal/agents/decision/decision-maker/config.go
package decisionmaker

import "startup-analyst/internal/common/config"

type Thresholds struct {
	Invest   float64
	Consider float64
	Pass     float64
}

type Config struct {
	Weights    map[string]float64
	Thresholds Thresholds
}

func LoadConfig() *Config {
	return &Config{
		Weights: map[string]float64{
			WeightFounder:  0.30,
			WeightMarket:   0.25,
			WeightBusiness: 0.25,
			WeightRisk:     0.20,
		},
		Thresholds: Thresholds{
			Invest:   75,
			Consider: 60,
			Pass:     40,
		},
	}
}

// FromPipeline applies the pipeline section over the defaults. Zero values keep the default.
func FromPipeline(p config.PipelineConfig) *Config {
	cfg := LoadConfig()

	overrides := map[string]float64{
		WeightFounder:  p.DecisionWeights.Founder,
		WeightMarket:   p.DecisionWeights.Market,
		WeightBusiness: p.DecisionWeights.Business,
		WeightRisk:     p.DecisionWeights.Risk,
	}
	for k, v := range overrides {
		if v > 0 {
			cfg.Weights[k] = v
		}
	}

	if p.DecisionThresholds.Invest > 0 {
		cfg.Thresholds.Invest = p.DecisionThresholds.Invest
	}
	if p.DecisionThresholds.Consider > 0 {
		cfg.Thresholds.Consider = p.DecisionThresholds.Consider
	}
	if p.DecisionThresholds.Pass > 0 {
		cfg.Thresholds.Pass = p.DecisionThresholds.Pass
	}
	return cfg
}
