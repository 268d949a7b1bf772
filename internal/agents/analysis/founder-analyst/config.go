// internal/agents/analysis/founder-analyst/config.go
package founderanalyst

type Config struct {
	Weights map[string]float64
}

func LoadConfig() *Config {
	return &Config{
		Weights: map[string]float64{
			MetricExperience:          0.25,
			MetricEducation:           0.15,
			MetricTrackRecord:         0.25,
			MetricTeamComplementarity: 0.20,
			MetricCommitment:          0.15,
		},
	}
}
