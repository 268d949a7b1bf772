package memogenerator

import (
	"context"
	"encoding/json"
	"testing"

	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func sampleInput() *Input {
	return &Input{
		AnalysisResults: models.AnalysisResults{
			Founder: &models.FounderAnalysis{
				Total:     88,
				Breakdown: models.Breakdown{"experience": 85},
				Insights:  []string{"Founders bring deep industry experience"},
				RedFlags:  []string{},
			},
			Market: &models.MarketAnalysis{
				Total:         95,
				Breakdown:     models.Breakdown{"marketSize": 95},
				Trends:        []string{"Market is growing"},
				Opportunities: []string{"Large addressable market"},
			},
			Business: &models.BusinessAnalysis{
				Total:           94,
				Breakdown:       models.Breakdown{"revenue": 95},
				Projections:     []models.Projection{{Year: 1, Revenue: 2e6}},
				Recommendations: []string{},
			},
			Risk: &models.RiskAssessment{
				TotalRisk:  20,
				Breakdown:  models.Breakdown{models.RiskMarket: 0.3},
				Factors:    []string{},
				Mitigation: []string{},
			},
		},
		Decision: &models.Decision{
			Scores: models.Scores{Founder: 88, Market: 95, Business: 94, Risk: 80, Overall: 90},
			Decision: models.Verdict{
				Action:    models.ActionInvest,
				Priority:  models.PriorityHigh,
				Reasoning: "Overall score of 90 meets the investment threshold of 75.",
			},
			Confidence: models.Confidence{Overall: 83},
			Risks:      []models.RiskFlag{},
			Recommendation: []models.RecommendationItem{
				{Category: "INVESTMENT", Action: "INVEST", Details: "Proceed to term sheet discussions"},
			},
		},
		InputData: &models.AnalysisRequest{
			Documents:   []models.Document{{Name: "uber_deck.pdf"}},
			CompanyName: " Uber ",
		},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_InvestMemo(t *testing.T) {
	handler := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	memo, err := handler.Execute(context.Background(), sampleInput())
	require.NoError(t, err)

	summary := memo.ExecutiveSummary
	assert.Equal(t, "Uber", summary.Company)
	assert.Equal(t, models.ActionInvest, summary.Recommendation)
	assert.Equal(t, 90, summary.OverallScore)
	assert.Equal(t, "Uber scores 90/100 and is recommended for investment.", summary.Summary)
	assert.Equal(t, []string{
		"Founder score 88/100 (Excellent)",
		"Market score 95/100 (Excellent)",
		"Business score 94/100 (Excellent)",
		"Large addressable market",
		"Founders bring deep industry experience",
	}, summary.KeyHighlights)

	assert.Len(t, memo.InvestmentThesis.Strengths, 3)
	assert.Equal(t, []string{"Large addressable market"}, memo.InvestmentThesis.Opportunities)

	assert.Equal(t, "Market: Excellent", memo.DetailedAnalysis.Market.Assessment)
	assert.Equal(t, []string{"Market is growing", "Large addressable market"}, memo.DetailedAnalysis.Market.Highlights)

	assert.Equal(t, models.PriorityLow, memo.RiskAssessment.Level)
	assert.Equal(t, []string{"INVESTMENT: Proceed to term sheet discussions"}, memo.Recommendation.Details)
	assert.Equal(t, nextSteps[models.ActionInvest], memo.NextSteps)

	want := models.Appendices{
		Scores:     models.Scores{Founder: 88, Market: 95, Business: 94, Risk: 80, Overall: 90},
		Confidence: models.Confidence{Overall: 83},
		ScoreBreakdowns: map[string]models.Breakdown{
			"founder":  {"experience": 85},
			"market":   {"marketSize": 95},
			"business": {"revenue": 95},
			"risk":     {models.RiskMarket: 0.3},
		},
		Projections:       []models.Projection{{Year: 1, Revenue: 2e6}},
		DocumentsReviewed: []string{"uber_deck.pdf"},
	}
	if diff := cmp.Diff(want, memo.Appendices); diff != "" {
		t.Errorf("appendices mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_Execute_HighRiskAddsNextSteps(t *testing.T) {
	handler := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	input := sampleInput()
	input.AnalysisResults.Risk.TotalRisk = 66.25
	input.Decision.Decision.Action = models.ActionPass
	input.Decision.Risks = []models.RiskFlag{
		{Type: models.RiskFinancial, Level: models.PriorityHigh, Description: "Severe financial risk"},
		{Type: models.RiskTeam, Level: models.PriorityMedium, Description: "Team gaps"},
	}

	memo, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, models.PriorityHigh, memo.RiskAssessment.Level)
	assert.Equal(t, []string{
		"[HIGH] financial: Severe financial risk",
		"[MEDIUM] team: Team gaps",
	}, memo.RiskAssessment.Risks)
	assert.Equal(t, []string{
		"Send feedback to the founders",
		"Track progress for a future round",
		"Resolve financial risk before closing",
	}, memo.NextSteps)
}

func TestHandler_Execute_MissingInputs(t *testing.T) {
	handler := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{})
	assert.ErrorIs(t, err, ErrMissingDecision)

	memo, err := handler.Execute(context.Background(), &Input{
		Decision: &models.Decision{Decision: models.Verdict{Action: models.ActionConsider}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Unnamed startup", memo.ExecutiveSummary.Company)
	assert.Equal(t, "Founding team: Weak", memo.DetailedAnalysis.Founder.Assessment)
	assert.NotNil(t, memo.Appendices.DocumentsReviewed)
	assert.Empty(t, memo.InvestmentThesis.Strengths)
}

func TestHandler_Execute_UnknownActionUsesNeutralText(t *testing.T) {
	handler := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	input := sampleInput()
	input.Decision.Decision.Action = models.Action("HOLD")

	memo, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "Uber scores 90/100.", memo.ExecutiveSummary.Summary)
	assert.Equal(t, "Uber has been reviewed across team, market, business and risk.", memo.InvestmentThesis.Thesis)
	assert.NotContains(t, memo.ExecutiveSummary.Summary, "%!")
	assert.NotContains(t, memo.InvestmentThesis.Thesis, "%!")
	assert.Equal(t, models.Action("HOLD"), memo.Recommendation.Action)
}

func TestHandler_Execute_Deterministic(t *testing.T) {
	handler := NewHandler(LoadConfig(), logger.NewNoOpLogger())

	first, err := handler.Execute(context.Background(), sampleInput())
	require.NoError(t, err)
	second, err := handler.Execute(context.Background(), sampleInput())
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(first, second))
}

func TestMemo_JSONSectionKeys(t *testing.T) {
	handler := NewHandler(LoadConfig(), logger.NewNoOpLogger())

	memo, err := handler.Execute(context.Background(), sampleInput())
	require.NoError(t, err)

	raw, err := json.Marshal(memo)
	require.NoError(t, err)

	var sections map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &sections))
	for _, key := range []string{
		"executive_summary", "investment_thesis", "detailed_analysis",
		"risk_assessment", "recommendation", "next_steps", "appendices",
	} {
		assert.Contains(t, sections, key)
	}
}

func TestAssessment(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "Excellent"},
		{85, "Excellent"},
		{84, "Strong"},
		{70, "Strong"},
		{55, "Moderate"},
		{54, "Weak"},
		{-1, "Weak"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, assessment(tt.score))
	}
}
