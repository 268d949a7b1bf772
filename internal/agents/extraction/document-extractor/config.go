// internal/agents/extraction/document-extractor/config.go
package documentextractor

import "time"

type Config struct {
	Delay time.Duration
}

func LoadConfig() *Config {
	return &Config{Delay: 0}
}
