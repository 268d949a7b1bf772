// internal/agents/analysis/business-analyst/handler.go
package businessanalyst

import (
	"context"
	"math"
	"strings"

	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/common/scoring"
	"startup-analyst/internal/models"
	"startup-analyst/pkg/registry"
)

const (
	TaskType = "business-analyst"
	Slot     = registry.SlotBusinessAnalyst
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		input = &Input{}
	}
	attrs := input.Attributes
	if attrs == nil {
		attrs = models.Record{}
	}

	metrics := make(map[string]float64)
	revenue, hasRevenue := attrs.Float("revenue")
	if hasRevenue {
		metrics[MetricRevenue] = scoring.Bucket(revenue, revenueBuckets, 30)
	}
	growth, hasGrowth := attrs.Float("growthRate")
	if hasGrowth {
		metrics[MetricGrowth] = scoring.Bucket(growth, growthBuckets, 35)
	}
	if margin, ok := attrs.Float("grossMargin"); ok {
		metrics[MetricMargins] = scoring.Bucket(margin, marginBuckets, 40)
	}
	if model := normalizeModel(attrs.String("model")); model != "" {
		score, ok := scalabilityScores[model]
		if !ok {
			score = 60
		}
		metrics[MetricScalability] = score
	}
	if raised, ok := attrs.Float("capitalRaised"); ok && hasRevenue && raised > 0 {
		metrics[MetricCapitalEfficiency] = scoring.Bucket(revenue/raised, capitalEfficiencyBuckets, 40)
	}

	total := scoring.Round(scoring.ClampScore(scoring.WeightedAverage(metrics, h.config.Weights)))

	breakdown := make(models.Breakdown, len(metrics))
	for k, v := range metrics {
		breakdown[k] = float64(scoring.Round(v))
	}

	output := &Output{
		Total:           total,
		Breakdown:       breakdown,
		Projections:     h.project(revenue, growth, hasRevenue),
		Recommendations: h.recommendations(metrics, attrs),
	}

	h.logger.Info("business analysis completed", map[string]interface{}{
		"total":       output.Total,
		"breakdown":   output.Breakdown,
		"projections": len(output.Projections),
	})

	return output, nil
}

// project compounds current revenue at the reported growth rate.
func (h *Handler) project(revenue, growth float64, hasRevenue bool) []models.Projection {
	projections := []models.Projection{}
	if !hasRevenue || revenue <= 0 {
		return projections
	}
	for year := 1; year <= h.config.ProjectionYears; year++ {
		projections = append(projections, models.Projection{
			Year:    year,
			Revenue: math.Round(revenue * math.Pow(1+growth, float64(year))),
		})
	}
	return projections
}

func (h *Handler) recommendations(metrics map[string]float64, attrs models.Record) []string {
	recs := []string{}
	if len(attrs) == 0 {
		return append(recs, "Provide financial statements to support the business analysis")
	}
	if v, ok := metrics[MetricGrowth]; ok && v < 70 {
		recs = append(recs, "Accelerate customer acquisition to lift revenue growth")
	}
	if v, ok := metrics[MetricMargins]; ok && v < 60 {
		recs = append(recs, "Improve gross margins through pricing or cost of delivery")
	}
	if v, ok := metrics[MetricScalability]; ok && v < 70 {
		recs = append(recs, "Explore more scalable revenue streams")
	}
	burn, hasBurn := attrs.Float("burnRate")
	revenue, _ := attrs.Float("revenue")
	if hasBurn && burn > revenue {
		recs = append(recs, "Reduce burn rate relative to revenue")
	}
	if runway, ok := attrs.Float("runway"); ok && runway < 12 {
		recs = append(recs, "Extend runway to at least 12 months")
	}
	return recs
}

func normalizeModel(model string) string {
	model = strings.ToLower(strings.TrimSpace(model))
	return strings.NewReplacer("-", "", " ", "").Replace(model)
}
