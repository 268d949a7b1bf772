// internal/agents/memo/memo-generator/config.go
package memogenerator

type Config struct {
	// Used when the request carries no company name.
	DefaultCompany string
	// Maximum key highlights in the executive summary.
	MaxHighlights int
}

func LoadConfig() *Config {
	return &Config{
		DefaultCompany: "Unnamed startup",
		MaxHighlights:  5,
	}
}
