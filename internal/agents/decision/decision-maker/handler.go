// internal/agents/decision/decision-maker/handler.go
package decisionmaker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/common/random"
	"startup-analyst/internal/common/scoring"
	"startup-analyst/internal/models"
	"startup-analyst/pkg/registry"
)

const (
	TaskType = "decision-maker"
	Slot     = registry.SlotDecisionMaker
)

var (
	ErrUnknownWeight = errors.New("UNKNOWN_DECISION_WEIGHT")
	ErrInvalidWeight = errors.New("INVALID_DECISION_WEIGHT")
)

type Handler struct {
	config *Config
	random random.Source
	logger logger.Logger

	mu      sync.RWMutex
	weights map[string]float64
}

func NewHandler(config *Config, rnd random.Source, log logger.Logger) *Handler {
	weights := make(map[string]float64, len(config.Weights))
	for k, v := range config.Weights {
		weights[k] = v
	}
	return &Handler{
		config:  config,
		random:  rnd,
		logger:  logger.ForAgent(log, Slot),
		weights: weights,
	}
}

// UpdateWeights replaces the given component weights. Keys not present keep their value.
func (h *Handler) UpdateWeights(weights map[string]float64) error {
	for k, v := range weights {
		if _, ok := h.config.Weights[k]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownWeight, k)
		}
		if v < 0 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidWeight, k, v)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for k, v := range weights {
		h.weights[k] = v
	}

	h.logger.Info("decision weights updated", map[string]interface{}{
		"weights": h.weights,
	})
	return nil
}

// Weights returns a copy of the weights currently applied.
func (h *Handler) Weights() map[string]float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[string]float64, len(h.weights))
	for k, v := range h.weights {
		out[k] = v
	}
	return out
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		input = &Input{}
	}

	components := normalize(input)
	overall := scoring.Round(scoring.ClampScore(scoring.WeightedAverage(components, h.Weights())))

	scores := models.Scores{
		Founder:  scoring.Round(components[WeightFounder]),
		Market:   scoring.Round(components[WeightMarket]),
		Business: scoring.Round(components[WeightBusiness]),
		Risk:     scoring.Round(components[WeightRisk]),
		Overall:  overall,
	}

	verdict := h.verdict(overall, components)
	risks := h.riskFlags(input.RiskAssessment)

	output := &Output{
		Scores:         scores,
		Decision:       verdict,
		Confidence:     h.confidence(input, scores),
		Risks:          risks,
		Recommendation: h.recommendations(verdict.Action, risks),
	}

	h.logger.Info("investment decision made", map[string]interface{}{
		"overall":    overall,
		"action":     verdict.Action,
		"confidence": output.Confidence.Overall,
		"risks":      len(risks),
	})

	return output, nil
}

// normalize maps the inputs onto [0,100]. A missing analysis scores 0 and a
// missing risk assessment counts as fully safe.
func normalize(input *Input) map[string]float64 {
	components := map[string]float64{
		WeightFounder:  0,
		WeightMarket:   0,
		WeightBusiness: 0,
		WeightRisk:     100,
	}
	if input.FounderScore != nil {
		components[WeightFounder] = scoring.ClampScore(float64(input.FounderScore.Total))
	}
	if input.MarketScore != nil {
		components[WeightMarket] = scoring.ClampScore(float64(input.MarketScore.Total))
	}
	if input.BusinessScore != nil {
		components[WeightBusiness] = scoring.ClampScore(float64(input.BusinessScore.Total))
	}
	if input.RiskAssessment != nil {
		components[WeightRisk] = 100 - scoring.ClampScore(input.RiskAssessment.TotalRisk)
	}
	return components
}

func (h *Handler) verdict(overall int, components map[string]float64) models.Verdict {
	t := h.config.Thresholds
	score := float64(overall)

	switch {
	case score >= t.Invest:
		key, value := strongest(components)
		return models.Verdict{
			Action:   models.ActionInvest,
			Priority: models.PriorityHigh,
			Reasoning: fmt.Sprintf("Overall score of %d meets the investment threshold of %.0f. Strongest area is the %s (%d).",
				overall, t.Invest, key, scoring.Round(value)),
		}
	case score >= t.Consider:
		key, value := weakest(components)
		return models.Verdict{
			Action:   models.ActionConsider,
			Priority: models.PriorityMedium,
			Reasoning: fmt.Sprintf("Overall score of %d clears the consideration threshold of %.0f but not the investment threshold of %.0f. Weakest area is the %s (%d).",
				overall, t.Consider, t.Invest, key, scoring.Round(value)),
		}
	default:
		key, value := weakest(components)
		reasoning := fmt.Sprintf("Overall score of %d is below the consideration threshold of %.0f", overall, t.Consider)
		if score < t.Pass {
			reasoning += fmt.Sprintf(" and under the minimum of %.0f", t.Pass)
		}
		return models.Verdict{
			Action:    models.ActionPass,
			Priority:  models.PriorityLow,
			Reasoning: fmt.Sprintf("%s. Weakest area is the %s (%d).", reasoning, key, scoring.Round(value)),
		}
	}
}

func strongest(components map[string]float64) (string, float64) {
	name, best := "", -1.0
	for _, area := range areaNames {
		if v := components[area.key]; v > best {
			name, best = area.name, v
		}
	}
	return name, best
}

func weakest(components map[string]float64) (string, float64) {
	name, worst := "", 101.0
	for _, area := range areaNames {
		if v := components[area.key]; v < worst {
			name, worst = area.name, v
		}
	}
	return name, worst
}

// confidence averages four factors, each on a 0-100 scale.
func (h *Handler) confidence(input *Input, scores models.Scores) models.Confidence {
	factors := models.ConfidenceFactors{
		DataQuality:      dataQuality(input),
		Consistency:      scoring.Round(random.Between(h.random, 0.8, 1.0) * 100),
		MarketValidation: scores.Market,
		TeamAssessment:   scores.Founder,
	}
	sum := factors.DataQuality + factors.Consistency + factors.MarketValidation + factors.TeamAssessment
	return models.Confidence{
		Overall: scoring.Round(float64(sum) / 4),
		Factors: factors,
	}
}

// dataQuality gives 15 points per analysis present and 10 more when it is
// backed by at least three sub-metrics.
func dataQuality(input *Input) int {
	score := 0
	rich := func(b models.Breakdown) {
		score += 15
		if len(b) >= 3 {
			score += 10
		}
	}
	if input.FounderScore != nil {
		rich(input.FounderScore.Breakdown)
	}
	if input.MarketScore != nil {
		rich(input.MarketScore.Breakdown)
	}
	if input.BusinessScore != nil {
		rich(input.BusinessScore.Breakdown)
	}
	if input.RiskAssessment != nil {
		rich(input.RiskAssessment.Breakdown)
	}
	return scoring.Round(scoring.ClampScore(float64(score)))
}

func (h *Handler) riskFlags(risk *models.RiskAssessment) []models.RiskFlag {
	flags := []models.RiskFlag{}
	if risk == nil {
		return flags
	}
	for _, rule := range riskRules {
		if risk.Breakdown[rule.category] > rule.above {
			flags = append(flags, models.RiskFlag{
				Type:        rule.category,
				Level:       rule.level,
				Description: rule.description,
			})
		}
	}
	return flags
}

func (h *Handler) recommendations(action models.Action, risks []models.RiskFlag) []models.RecommendationItem {
	items := []models.RecommendationItem{{
		Category: CategoryInvestment,
		Action:   string(action),
		Details:  investmentDetails[action],
	}}

	if action != models.ActionPass {
		items = append(items, models.RecommendationItem{
			Category: CategoryDueDiligence,
			Action:   "CONDUCT_DUE_DILIGENCE",
			Details:  dueDiligenceDetails[action],
		})
	}

	if len(risks) > 0 {
		details := make([]string, 0, len(risks))
		for _, r := range risks {
			details = append(details, mitigationDetails[r.Type])
		}
		items = append(items, models.RecommendationItem{
			Category: CategoryRiskMitigation,
			Action:   "ADDRESS_RISKS",
			Details:  strings.Join(details, "; "),
		})
	}
	return items
}
