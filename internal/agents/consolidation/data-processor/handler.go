// internal/agents/consolidation/data-processor/handler.go
package dataprocessor

import (
	"context"

	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/models"
	"startup-analyst/pkg/registry"
)

const (
	TaskType = "data-processor"
	Slot     = registry.SlotDataProcessor
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: logger.ForAgent(log, Slot),
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// execute groups the extraction records by domain. Missing records count as empty.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		input = &Input{}
	}

	docs := input.Documents
	if docs == nil {
		docs = models.Record{}
	}
	voice := input.Voice
	if voice == nil {
		voice = &models.VoiceRecord{Sentiment: "neutral"}
	}
	public := input.PublicData
	if public == nil {
		public = &models.PublicDataRecord{}
	}

	output := &Output{
		FounderData: models.FounderData{
			Profile:    docs.Map(models.FieldFounderInfo).Clone(),
			Sentiment:  voice.Sentiment,
			Confidence: voice.Confidence,
			KeyPoints:  copyStrings(voice.KeyPoints),
		},
		MarketData: models.MarketData{
			Attributes:  docs.Map(models.FieldMarket).Clone().Merge(public.MarketData),
			Competitors: append([]models.Competitor{}, public.Competitors...),
			News:        append([]models.NewsItem{}, public.News...),
		},
		BusinessData: models.BusinessData{
			Attributes:    docs.Map(models.FieldBusinessModel).Clone().Merge(docs.Map(models.FieldFinancials)),
			VoiceInsights: copyStrings(voice.KeyPoints),
		},
		ProductData: models.ProductData{
			Attributes: docs.Map(models.FieldProduct).Clone(),
		},
	}

	h.logger.Info("extraction records consolidated", map[string]interface{}{
		"founderFields":  len(output.FounderData.Profile),
		"marketFields":   len(output.MarketData.Attributes),
		"businessFields": len(output.BusinessData.Attributes),
		"productFields":  len(output.ProductData.Attributes),
		"competitors":    len(output.MarketData.Competitors),
	})

	return output, nil
}

func copyStrings(in []string) []string {
	return append([]string{}, in...)
}
