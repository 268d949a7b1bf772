// internal/agents/extraction/voice-extractor/config.go
package voiceextractor

import "time"

type Config struct {
	Delay      time.Duration
	Sentiments []string
	KeyPoints  []string
}

func LoadConfig() *Config {
	return &Config{
		Delay:      0,
		Sentiments: []string{"positive", "confident", "neutral", "enthusiastic"},
		KeyPoints: []string{
			"Clear articulation of the problem",
			"Strong understanding of the target market",
			"Confident delivery of the growth plan",
		},
	}
}
