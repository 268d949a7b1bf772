// internal/agents/defaults.go

// Package agents builds the built-in implementation of every pipeline slot.
package agents

import (
	"time"

	businessanalyst "startup-analyst/internal/agents/analysis/business-analyst"
	founderanalyst "startup-analyst/internal/agents/analysis/founder-analyst"
	marketanalyst "startup-analyst/internal/agents/analysis/market-analyst"
	riskanalyst "startup-analyst/internal/agents/analysis/risk-analyst"
	dataprocessor "startup-analyst/internal/agents/consolidation/data-processor"
	decisionmaker "startup-analyst/internal/agents/decision/decision-maker"
	documentextractor "startup-analyst/internal/agents/extraction/document-extractor"
	publicdataextractor "startup-analyst/internal/agents/extraction/public-data-extractor"
	voiceextractor "startup-analyst/internal/agents/extraction/voice-extractor"
	memogenerator "startup-analyst/internal/agents/memo/memo-generator"
	"startup-analyst/internal/common/config"
	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/common/random"
	"startup-analyst/pkg/registry"
)

// Registrar accepts agents by slot name.
type Registrar interface {
	RegisterAgent(name string, agent interface{}) error
}

// Dependencies are the collaborators shared by the built-in agents.
// MarketIntel may be nil.
type Dependencies struct {
	Parser      documentextractor.Parser
	MarketIntel publicdataextractor.Lookup
	Random      random.Source
}

// Set holds one handler per slot.
type Set struct {
	DocumentExtractor   *documentextractor.Handler
	VoiceExtractor      *voiceextractor.Handler
	PublicDataExtractor *publicdataextractor.Handler
	DataProcessor       *dataprocessor.Handler
	FounderAnalyst      *founderanalyst.Handler
	MarketAnalyst       *marketanalyst.Handler
	BusinessAnalyst     *businessanalyst.Handler
	RiskAnalyst         *riskanalyst.Handler
	DecisionMaker       *decisionmaker.Handler
	MemoGenerator       *memogenerator.Handler
}

func New(cfg *config.Config, deps Dependencies, log logger.Logger) *Set {
	rnd := deps.Random
	if rnd == nil {
		rnd = random.New(cfg.Pipeline.RandomSeed)
	}
	delay := time.Duration(cfg.Pipeline.ExtractionDelay) * time.Millisecond

	docConfig := documentextractor.LoadConfig()
	docConfig.Delay = delay
	voiceConfig := voiceextractor.LoadConfig()
	voiceConfig.Delay = delay
	publicConfig := publicdataextractor.LoadConfig()
	publicConfig.Delay = delay

	return &Set{
		DocumentExtractor:   documentextractor.NewHandler(docConfig, deps.Parser, log),
		VoiceExtractor:      voiceextractor.NewHandler(voiceConfig, rnd, log),
		PublicDataExtractor: publicdataextractor.NewHandler(publicConfig, deps.MarketIntel, rnd, log),
		DataProcessor:       dataprocessor.NewHandler(dataprocessor.LoadConfig(), log),
		FounderAnalyst:      founderanalyst.NewHandler(founderanalyst.LoadConfig(), rnd, log),
		MarketAnalyst:       marketanalyst.NewHandler(marketanalyst.LoadConfig(), rnd, log),
		BusinessAnalyst:     businessanalyst.NewHandler(businessanalyst.LoadConfig(), log),
		RiskAnalyst:         riskanalyst.NewHandler(riskanalyst.LoadConfig(), log),
		DecisionMaker:       decisionmaker.NewHandler(decisionmaker.FromPipeline(cfg.Pipeline), rnd, log),
		MemoGenerator:       memogenerator.NewHandler(memogenerator.LoadConfig(), log),
	}
}

// BySlot maps every slot name to its handler.
func (s *Set) BySlot() map[string]interface{} {
	return map[string]interface{}{
		registry.SlotDocumentExtractor:   s.DocumentExtractor,
		registry.SlotVoiceExtractor:      s.VoiceExtractor,
		registry.SlotPublicDataExtractor: s.PublicDataExtractor,
		registry.SlotDataProcessor:       s.DataProcessor,
		registry.SlotFounderAnalyst:      s.FounderAnalyst,
		registry.SlotMarketAnalyst:       s.MarketAnalyst,
		registry.SlotBusinessAnalyst:     s.BusinessAnalyst,
		registry.SlotRiskAnalyst:         s.RiskAnalyst,
		registry.SlotDecisionMaker:       s.DecisionMaker,
		registry.SlotMemoGenerator:       s.MemoGenerator,
	}
}

// Register adds every enabled agent to reg in pipeline order and returns the
// slots that were skipped.
func (s *Set) Register(reg Registrar, cfg *config.Config, log logger.Logger) ([]string, error) {
	handlers := s.BySlot()
	var skipped []string
	for _, slot := range registry.SlotNames() {
		if !config.IsAgentEnabled(cfg, slot) {
			skipped = append(skipped, slot)
			log.Warn("agent disabled", map[string]interface{}{"agent": slot})
			continue
		}
		if err := reg.RegisterAgent(slot, handlers[slot]); err != nil {
			return skipped, err
		}
	}
	return skipped, nil
}
