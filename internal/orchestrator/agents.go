// internal/orchestrator/agents.go
package orchestrator

import (
	"context"

	"startup-analyst/internal/models"
	"startup-analyst/pkg/registry"
)

// Agent is one pipeline stage.
type Agent[In, Out any] interface {
	Execute(ctx context.Context, input In) (Out, error)
}

// Role interfaces, one per slot.
type (
	DocumentExtractor   = Agent[[]models.Document, models.DocumentRecord]
	VoiceExtractor      = Agent[*models.VoiceData, *models.VoiceRecord]
	PublicDataExtractor = Agent[string, *models.PublicDataRecord]
	DataProcessor       = Agent[*models.ExtractionBundle, *models.ConsolidatedView]
	FounderAnalyst      = Agent[*models.FounderData, *models.FounderAnalysis]
	MarketAnalyst       = Agent[*models.MarketData, *models.MarketAnalysis]
	BusinessAnalyst     = Agent[*models.BusinessData, *models.BusinessAnalysis]
	RiskAnalyst         = Agent[*models.ConsolidatedView, *models.RiskAssessment]
	DecisionMaker       = Agent[*models.DecisionInput, *models.Decision]
	MemoGenerator       = Agent[*models.MemoInput, *models.Memo]
)

// AgentFunc adapts a function to the Agent interface.
type AgentFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

func (f AgentFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}

type role struct {
	name string
	fits func(agent interface{}) bool
}

func roleFor[In, Out any](name string) role {
	return role{
		name: name,
		fits: func(agent interface{}) bool {
			_, ok := agent.(Agent[In, Out])
			return ok
		},
	}
}

var roles = map[string]role{
	registry.SlotDocumentExtractor:   roleFor[[]models.Document, models.DocumentRecord]("DocumentExtractor"),
	registry.SlotVoiceExtractor:      roleFor[*models.VoiceData, *models.VoiceRecord]("VoiceExtractor"),
	registry.SlotPublicDataExtractor: roleFor[string, *models.PublicDataRecord]("PublicDataExtractor"),
	registry.SlotDataProcessor:       roleFor[*models.ExtractionBundle, *models.ConsolidatedView]("DataProcessor"),
	registry.SlotFounderAnalyst:      roleFor[*models.FounderData, *models.FounderAnalysis]("FounderAnalyst"),
	registry.SlotMarketAnalyst:       roleFor[*models.MarketData, *models.MarketAnalysis]("MarketAnalyst"),
	registry.SlotBusinessAnalyst:     roleFor[*models.BusinessData, *models.BusinessAnalysis]("BusinessAnalyst"),
	registry.SlotRiskAnalyst:         roleFor[*models.ConsolidatedView, *models.RiskAssessment]("RiskAnalyst"),
	registry.SlotDecisionMaker:       roleFor[*models.DecisionInput, *models.Decision]("DecisionMaker"),
	registry.SlotMemoGenerator:       roleFor[*models.MemoInput, *models.Memo]("MemoGenerator"),
}
