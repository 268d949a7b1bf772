// internal/agents/extraction/public-data-extractor/config.go
package publicdataextractor

import "time"

type Config struct {
	Delay time.Duration
	// Placeholder controls whether a failed or empty lookup falls back to sampled data.
	Placeholder bool
}

func LoadConfig() *Config {
	return &Config{
		Delay:       0,
		Placeholder: true,
	}
}
