// internal/agents/consolidation/data-processor/config.go
package dataprocessor

// No tunables yet.
type Config struct{}

func LoadConfig() *Config {
	return &Config{}
}
