// internal/agents/analysis/risk-analyst/handler.go
package riskanalyst

import (
	"context"
	"strings"

	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/common/scoring"
	"startup-analyst/internal/models"
	"startup-analyst/pkg/registry"
)

const (
	TaskType = "risk-analyst"
	Slot     = registry.SlotRiskAnalyst
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

// Execute scores risk over the whole consolidated view, since the penalties
// mix founder, market, business and product signals.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		input = &Input{}
	}
	s := collectSignals(input)

	risk := make(map[string]float64, len(models.RiskCategories))
	for _, category := range models.RiskCategories {
		risk[category] = h.config.BaseRisk[category]
	}

	factors := []string{}
	for _, p := range penalties {
		if p.applies(s) {
			risk[p.category] += p.amount
			factors = append(factors, p.factor)
		}
	}

	breakdown := make(models.Breakdown, len(risk))
	for category, value := range risk {
		breakdown[category] = scoring.RoundTo(scoring.ClampUnit(value), 2)
	}

	total := scoring.ClampScore(scoring.WeightedAverage(breakdown, h.config.Weights) * 100)

	mitigation := []string{}
	for _, category := range models.RiskCategories {
		if breakdown[category] > h.config.MitigationThreshold {
			mitigation = append(mitigation, mitigations[category])
		}
	}

	output := &Output{
		TotalRisk:  scoring.RoundTo(total, 2),
		Breakdown:  breakdown,
		Factors:    factors,
		Mitigation: mitigation,
	}

	h.logger.Info("risk assessment completed", map[string]interface{}{
		"totalRisk": output.TotalRisk,
		"factors":   len(factors),
		"breakdown": output.Breakdown,
	})

	return output, nil
}

func collectSignals(input *Input) *signals {
	s := &signals{}

	market := input.MarketData.Attributes
	if market == nil {
		market = models.Record{}
	}
	names := make(map[string]bool)
	for _, name := range market.Strings("competitors") {
		names[strings.ToLower(strings.TrimSpace(name))] = true
	}
	for _, c := range input.MarketData.Competitors {
		names[strings.ToLower(strings.TrimSpace(c.Name))] = true
	}
	delete(names, "")
	s.competitors = len(names)
	s.marketSize, s.hasMarketSize = market.Float("size")

	profile := input.FounderData.Profile
	if profile == nil {
		profile = models.Record{}
	}
	founders := profile.Records("founders")
	s.teamSize = len(founders)
	if s.teamSize == 0 {
		s.teamSize, _ = profile.Int("teamSize")
	}
	for _, f := range founders {
		years, _ := f.Float("yearsExperience")
		exits, _ := f.Float("previousExits")
		if years > 0 || exits > 0 || f.Bool("priorStartups") {
			s.priorExperience = true
		}
		if f.Bool("technical") || strings.EqualFold(f.String("role"), "CTO") {
			s.technicalFounder = true
		}
	}

	business := input.BusinessData.Attributes
	if business == nil {
		business = models.Record{}
	}
	s.burnRate, s.hasBurnRate = business.Float("burnRate")
	s.revenue, _ = business.Float("revenue")
	s.runway, s.hasRunway = business.Float("runway")

	product := input.ProductData.Attributes
	if product == nil {
		product = models.Record{}
	}
	s.stage = strings.ToLower(strings.TrimSpace(product.String("stage")))

	return s
}
