// internal/agents/memo/memo-generator/handler.go
package memogenerator

import (
	"context"
	"errors"
	"fmt"

	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/common/scoring"
	"startup-analyst/internal/models"
	"startup-analyst/pkg/registry"
)

const (
	TaskType = "memo-generator"
	Slot     = registry.SlotMemoGenerator
)

var ErrMissingDecision = errors.New("MISSING_DECISION")

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
	if input == nil || input.Decision == nil {
		return nil, ErrMissingDecision
	}

	results := filled(input.AnalysisResults)
	decision := input.Decision
	company := input.InputData.Company()
	if company == "" {
		company = h.config.DefaultCompany
	}

	memo := &Output{
		ExecutiveSummary: h.executiveSummary(company, results, decision),
		InvestmentThesis: h.investmentThesis(company, results, decision),
		DetailedAnalysis: models.DetailedAnalysis{
			Founder:  section("Founding team", results.Founder.Total, results.Founder.Insights, results.Founder.RedFlags),
			Market:   section("Market", results.Market.Total, results.Market.Trends, results.Market.Opportunities),
			Business: section("Business model", results.Business.Total, results.Business.Recommendations),
		},
		RiskAssessment: riskSection(results.Risk, decision.Risks),
		Recommendation: recommendation(decision),
		NextSteps:      h.nextSteps(decision),
		Appendices:     appendices(results, decision, input.InputData),
	}

	h.logger.Info("investment memo generated", map[string]interface{}{
		"company":        company,
		"recommendation": memo.ExecutiveSummary.Recommendation,
		"overallScore":   memo.ExecutiveSummary.OverallScore,
	})

	return memo, nil
}

// filled replaces missing analyses with empty ones.
func filled(r models.AnalysisResults) models.AnalysisResults {
	if r.Founder == nil {
		r.Founder = &models.FounderAnalysis{}
	}
	if r.Market == nil {
		r.Market = &models.MarketAnalysis{}
	}
	if r.Business == nil {
		r.Business = &models.BusinessAnalysis{}
	}
	if r.Risk == nil {
		r.Risk = &models.RiskAssessment{}
	}
	return r
}

func (h *Handler) executiveSummary(company string, r models.AnalysisResults, d *models.Decision) models.ExecutiveSummary {
	highlights := []string{
		fmt.Sprintf("Founder score %d/100 (%s)", d.Scores.Founder, assessment(d.Scores.Founder)),
		fmt.Sprintf("Market score %d/100 (%s)", d.Scores.Market, assessment(d.Scores.Market)),
		fmt.Sprintf("Business score %d/100 (%s)", d.Scores.Business, assessment(d.Scores.Business)),
	}
	if len(r.Market.Opportunities) > 0 {
		highlights = append(highlights, r.Market.Opportunities[0])
	}
	if len(r.Founder.Insights) > 0 {
		highlights = append(highlights, r.Founder.Insights[0])
	}
	if h.config.MaxHighlights > 0 && len(highlights) > h.config.MaxHighlights {
		highlights = highlights[:h.config.MaxHighlights]
	}

	return models.ExecutiveSummary{
		Company:        company,
		Recommendation: d.Decision.Action,
		OverallScore:   d.Scores.Overall,
		Summary:        fmt.Sprintf(templateFor(summaryTemplates, d.Decision.Action, neutralSummaryTemplate), company, d.Scores.Overall),
		KeyHighlights:  highlights,
	}
}

func (h *Handler) investmentThesis(company string, r models.AnalysisResults, d *models.Decision) models.InvestmentThesis {
	strengths := []string{}
	for _, area := range []struct {
		key   string
		score int
	}{
		{"founder", d.Scores.Founder},
		{"market", d.Scores.Market},
		{"business", d.Scores.Business},
	} {
		if area.score >= 70 {
			strengths = append(strengths, strengthTexts[area.key])
		}
	}

	return models.InvestmentThesis{
		Thesis:        fmt.Sprintf(templateFor(thesisTemplates, d.Decision.Action, neutralThesisTemplate), company),
		Strengths:     strengths,
		Opportunities: copyStrings(r.Market.Opportunities),
	}
}

func section(name string, score int, highlights ...[]string) models.SectionAnalysis {
	merged := []string{}
	for _, list := range highlights {
		merged = append(merged, list...)
	}
	return models.SectionAnalysis{
		Score:      score,
		Assessment: fmt.Sprintf("%s: %s", name, assessment(score)),
		Highlights: merged,
	}
}

func assessment(score int) string {
	for _, b := range assessmentBuckets {
		if score >= b.min {
			return b.label
		}
	}
	return assessmentBuckets[len(assessmentBuckets)-1].label
}

func riskSection(risk *models.RiskAssessment, flags []models.RiskFlag) models.MemoRiskAssessment {
	level := riskLevels[int(scoring.Bucket(risk.TotalRisk, riskLevelBuckets, 0))]

	risks := make([]string, 0, len(flags))
	for _, f := range flags {
		risks = append(risks, fmt.Sprintf("[%s] %s: %s", f.Level, f.Type, f.Description))
	}

	return models.MemoRiskAssessment{
		Level:      level,
		TotalRisk:  risk.TotalRisk,
		Risks:      risks,
		Factors:    copyStrings(risk.Factors),
		Mitigation: copyStrings(risk.Mitigation),
	}
}

func recommendation(d *models.Decision) models.MemoRecommendation {
	details := make([]string, 0, len(d.Recommendation))
	for _, item := range d.Recommendation {
		details = append(details, fmt.Sprintf("%s: %s", item.Category, item.Details))
	}
	return models.MemoRecommendation{
		Action:    d.Decision.Action,
		Priority:  d.Decision.Priority,
		Reasoning: d.Decision.Reasoning,
		Details:   details,
	}
}

func (h *Handler) nextSteps(d *models.Decision) []string {
	steps := copyStrings(nextSteps[d.Decision.Action])
	for _, f := range d.Risks {
		if f.Level == models.PriorityHigh {
			steps = append(steps, fmt.Sprintf("Resolve %s risk before closing", f.Type))
		}
	}
	return steps
}

func appendices(r models.AnalysisResults, d *models.Decision, req *models.AnalysisRequest) models.Appendices {
	documents := req.DocumentNames()
	if documents == nil {
		documents = []string{}
	}
	return models.Appendices{
		Scores:     d.Scores,
		Confidence: d.Confidence,
		ScoreBreakdowns: map[string]models.Breakdown{
			"founder":  r.Founder.Breakdown,
			"market":   r.Market.Breakdown,
			"business": r.Business.Breakdown,
			"risk":     r.Risk.Breakdown,
		},
		Projections:       r.Business.Projections,
		DocumentsReviewed: documents,
	}
}

func copyStrings(in []string) []string {
	return append([]string{}, in...)
}
