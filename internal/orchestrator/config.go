// internal/orchestrator/config.go
package orchestrator

import (
	"time"

	"startup-analyst/internal/common/config"
	"startup-analyst/pkg/registry"
)

type Config struct {
	// Per-slot call timeouts. Missing or zero means no limit.
	Timeouts map[string]time.Duration
}

// LoadConfig resolves slot timeouts from agents.<slot>.timeout, falling back
// to the catalogue timeout.
func LoadConfig(cfg *config.Config, catalogue *registry.AgentRegistry) *Config {
	c := &Config{Timeouts: make(map[string]time.Duration)}
	for _, slot := range registry.SlotNames() {
		timeout := time.Duration(0)
		if cfg != nil {
			timeout = config.GetDuration(config.GetAgentConfig(cfg, slot).Timeout)
		}
		if timeout == 0 && catalogue != nil {
			timeout = catalogue.TimeoutFor(slot)
		}
		if timeout > 0 {
			c.Timeouts[slot] = timeout
		}
	}
	return c
}
