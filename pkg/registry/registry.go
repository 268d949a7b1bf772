// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// Pipeline slot names.
const (
	SlotDocumentExtractor   = "documentExtractor"
	SlotVoiceExtractor      = "voiceExtractor"
	SlotPublicDataExtractor = "publicDataExtractor"
	SlotDataProcessor       = "dataProcessor"
	SlotFounderAnalyst      = "founderAnalyst"
	SlotMarketAnalyst       = "marketAnalyst"
	SlotBusinessAnalyst     = "businessAnalyst"
	SlotRiskAnalyst         = "riskAnalyst"
	SlotDecisionMaker       = "decisionMaker"
	SlotMemoGenerator       = "memoGenerator"
)

// Default returns the built-in catalogue of the ten pipeline slots.
func Default() *AgentRegistry {
	return &AgentRegistry{
		Version:     "1.0.0",
		LastUpdated: "2026-01-01",
		Agents: []AgentSlot{
			{
				ID: SlotDocumentExtractor, DisplayName: "Document Extractor", Phase: 1, Stage: "extraction",
				Role: "DocumentExtractor", TaskType: "document-extractor", Timeout: "60s",
				Description: "Parses pitch documents into founder, business, market and product fields",
				ErrorCodes:  []string{"EXTRACTION_FAILED"}, Tags: []string{"documents"},
			},
			{
				ID: SlotVoiceExtractor, DisplayName: "Voice Extractor", Phase: 1, Stage: "extraction",
				Role: "VoiceExtractor", TaskType: "voice-extractor", Timeout: "30s",
				Description: "Derives sentiment and key points from a founder voice recording",
				ErrorCodes:  []string{"EXTRACTION_FAILED"}, Tags: []string{"voice"},
			},
			{
				ID: SlotPublicDataExtractor, DisplayName: "Public Data Extractor", Phase: 1, Stage: "extraction",
				Role: "PublicDataExtractor", TaskType: "public-data-extractor", Timeout: "30s",
				Description: "Looks up market data, competitors, news and funding for the company",
				ErrorCodes:  []string{"EXTRACTION_FAILED", "MARKET_INTEL_FAILED"}, Tags: []string{"market-intel"},
			},
			{
				ID: SlotDataProcessor, DisplayName: "Data Processor", Phase: 2, Stage: "consolidation",
				Role: "DataProcessor", TaskType: "data-processor", Timeout: "10s",
				Description: "Merges extraction records into founder, market, business and product views",
				ErrorCodes:  []string{"CONSOLIDATION_FAILED"},
			},
			{
				ID: SlotFounderAnalyst, DisplayName: "Founder Analyst", Phase: 3, Stage: "analysis",
				Role: "FounderAnalyst", TaskType: "founder-analyst", Timeout: "10s",
				Description: "Scores founder experience, education, track record, team and commitment",
				ErrorCodes:  []string{"ANALYSIS_FAILED"}, Tags: []string{"scoring"},
			},
			{
				ID: SlotMarketAnalyst, DisplayName: "Market Analyst", Phase: 3, Stage: "analysis",
				Role: "MarketAnalyst", TaskType: "market-analyst", Timeout: "10s",
				Description: "Scores market size, growth, competition, timing and accessibility",
				ErrorCodes:  []string{"ANALYSIS_FAILED"}, Tags: []string{"scoring"},
			},
			{
				ID: SlotBusinessAnalyst, DisplayName: "Business Analyst", Phase: 3, Stage: "analysis",
				Role: "BusinessAnalyst", TaskType: "business-analyst", Timeout: "10s",
				Description: "Scores revenue, growth, margins, scalability and capital efficiency",
				ErrorCodes:  []string{"ANALYSIS_FAILED"}, Tags: []string{"scoring"},
			},
			{
				ID: SlotRiskAnalyst, DisplayName: "Risk Analyst", Phase: 3, Stage: "analysis",
				Role: "RiskAnalyst", TaskType: "risk-analyst", Timeout: "10s",
				Description: "Accumulates market, team, financial and technology risk over the whole consolidated view",
				ErrorCodes:  []string{"ANALYSIS_FAILED"}, Tags: []string{"scoring", "risk"},
			},
			{
				ID: SlotDecisionMaker, DisplayName: "Decision Maker", Phase: 4, Stage: "decision",
				Role: "DecisionMaker", TaskType: "decision-maker", Timeout: "10s",
				Description: "Combines analysis scores into an INVEST, CONSIDER or PASS recommendation",
				ErrorCodes:  []string{"DECISION_FAILED"},
			},
			{
				ID: SlotMemoGenerator, DisplayName: "Memo Generator", Phase: 5, Stage: "memo",
				Role: "MemoGenerator", TaskType: "memo-generator", Timeout: "10s",
				Description: "Assembles the investment memo from the decision and analysis results",
				ErrorCodes:  []string{"MEMO_FAILED"},
			},
		},
	}
}

// SlotNames returns every known slot name in pipeline order.
func SlotNames() []string {
	slots := Default().Sorted()
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = s.ID
	}
	return names
}

// IsKnownSlot reports whether name is one of the pipeline slots.
func IsKnownSlot(name string) bool {
	_, ok := Default().Lookup(name)
	return ok
}

func LoadRegistry(path string) (*AgentRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg AgentRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// LoadWithOverrides returns the default catalogue with entries from path
// replacing the matching slots. An empty path yields the defaults.
func LoadWithOverrides(path string) (*AgentRegistry, error) {
	base := Default()
	if path == "" {
		return base, nil
	}
	overrides, err := LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load agent registry %s: %w", path, err)
	}
	base.Merge(overrides)
	return base, nil
}

// Merge applies non-empty fields of other's slots onto the matching slots of r.
func (r *AgentRegistry) Merge(other *AgentRegistry) {
	if other == nil {
		return
	}
	if other.Version != "" {
		r.Version = other.Version
	}
	if other.LastUpdated != "" {
		r.LastUpdated = other.LastUpdated
	}
	for _, o := range other.Agents {
		for i := range r.Agents {
			s := &r.Agents[i]
			if s.ID != o.ID {
				continue
			}
			if o.DisplayName != "" {
				s.DisplayName = o.DisplayName
			}
			if o.Description != "" {
				s.Description = o.Description
			}
			if o.TaskType != "" {
				s.TaskType = o.TaskType
			}
			if o.Timeout != "" {
				s.Timeout = o.Timeout
			}
			if len(o.Tags) > 0 {
				s.Tags = o.Tags
			}
		}
	}
}

// Validate rejects unknown slots and unparseable timeouts.
func (r *AgentRegistry) Validate() error {
	defaults := Default()
	for _, s := range r.Agents {
		if _, ok := defaults.Lookup(s.ID); !ok {
			return fmt.Errorf("unknown agent slot %q", s.ID)
		}
		if s.Timeout != "" {
			if _, err := time.ParseDuration(s.Timeout); err != nil {
				return fmt.Errorf("slot %s: invalid timeout %q: %w", s.ID, s.Timeout, err)
			}
		}
	}
	return nil
}

func (r *AgentRegistry) Lookup(id string) (AgentSlot, bool) {
	for _, s := range r.Agents {
		if s.ID == id {
			return s, true
		}
	}
	return AgentSlot{}, false
}

// Sorted returns the slots ordered by phase, keeping declaration order within a phase.
func (r *AgentRegistry) Sorted() []AgentSlot {
	out := append([]AgentSlot(nil), r.Agents...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Phase < out[j].Phase })
	return out
}

// TimeoutFor returns the catalogued timeout for a slot, or 0.
func (r *AgentRegistry) TimeoutFor(id string) time.Duration {
	s, ok := r.Lookup(id)
	if !ok || s.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0
	}
	return d
}
