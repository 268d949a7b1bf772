// internal/agents/analysis/market-analyst/handler.go
package marketanalyst

import (
	"context"
	"fmt"
	"strings"

	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/common/random"
	"startup-analyst/internal/common/scoring"
	"startup-analyst/internal/models"
	"startup-analyst/pkg/registry"
)

const (
	TaskType = "market-analyst"
	Slot     = registry.SlotMarketAnalyst
)

type Handler struct {
	config *Config
	random random.Source
	logger logger.Logger
}

func NewHandler(config *Config, rnd random.Source, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		random: rnd,
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
	if size, ok := attrs.Float("size"); ok {
		metrics[MetricMarketSize] = scoring.Bucket(size, marketSizeBuckets, 50)
	}
	if growth, ok := attrs.Float("growthRate"); ok {
		metrics[MetricGrowthRate] = scoring.Bucket(growth, growthBuckets, 40)
	}
	competitors := competitorNames(input, attrs)
	if len(competitors) > 0 || attrs.Has("competitors") {
		metrics[MetricCompetition] = scoring.Bucket(float64(len(competitors)), competitionBuckets, 90)
	}
	if v, ok := h.calculateTiming(input, attrs); ok {
		metrics[MetricTiming] = v
	}
	// No channel data is extracted yet, so accessibility is sampled.
	metrics[MetricAccessibility] = random.Between(h.random, minAccessibility, maxAccessibility)

	total := scoring.Round(scoring.ClampScore(scoring.WeightedAverage(metrics, h.config.Weights)))

	breakdown := make(models.Breakdown, len(metrics))
	for k, v := range metrics {
		breakdown[k] = float64(scoring.Round(v))
	}

	output := &Output{
		Total:         total,
		Breakdown:     breakdown,
		Trends:        h.trends(input, attrs),
		Opportunities: h.opportunities(metrics, attrs),
	}

	h.logger.Info("market analysis completed", map[string]interface{}{
		"total":       output.Total,
		"competitors": len(competitors),
		"breakdown":   output.Breakdown,
	})

	return output, nil
}

// calculateTiming prefers an explicit trend and falls back to news coverage.
func (h *Handler) calculateTiming(input *Input, attrs models.Record) (float64, bool) {
	if trend := strings.ToLower(strings.TrimSpace(attrs.String("trend"))); trend != "" {
		if score, ok := trendScores[trend]; ok {
			return score, true
		}
	}
	if len(input.News) == 0 {
		return 0, false
	}
	return scoring.Bucket(float64(len(input.News)), newsBuckets, 60), true
}

func (h *Handler) trends(input *Input, attrs models.Record) []string {
	trends := []string{}
	if trend := attrs.String("trend"); trend != "" {
		trends = append(trends, fmt.Sprintf("Market is %s", strings.ToLower(trend)))
	}
	if growth, ok := attrs.Float("growthRate"); ok && growth > 0.20 {
		trends = append(trends, fmt.Sprintf("Market expanding at %.0f%% annually", growth*100))
	}
	positive := 0
	for _, item := range input.News {
		if item.Sentiment == "positive" {
			positive++
		}
	}
	if positive > 0 {
		trends = append(trends, fmt.Sprintf("%d positive news mention(s)", positive))
	}
	return trends
}

func (h *Handler) opportunities(metrics map[string]float64, attrs models.Record) []string {
	opportunities := []string{}
	if v, ok := metrics[MetricMarketSize]; ok && v >= 85 {
		opportunities = append(opportunities, "Large addressable market")
	}
	if v, ok := metrics[MetricGrowthRate]; ok && v >= 85 {
		opportunities = append(opportunities, "Rapid market growth supports expansion")
	}
	if v, ok := metrics[MetricCompetition]; ok && v >= 75 {
		opportunities = append(opportunities, "Limited competition leaves room for a category leader")
	}
	if v, ok := metrics[MetricTiming]; ok && v >= 85 {
		opportunities = append(opportunities, "Favourable market timing")
	}
	if len(opportunities) == 0 && len(attrs) == 0 {
		opportunities = append(opportunities, "Market data insufficient to identify opportunities")
	}
	return opportunities
}

// competitorNames merges document-listed and public competitors by name.
func competitorNames(input *Input, attrs models.Record) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		names = append(names, name)
	}
	for _, name := range attrs.Strings("competitors") {
		add(name)
	}
	for _, c := range input.Competitors {
		add(c.Name)
	}
	return names
}
