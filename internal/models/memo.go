// internal/models/memo.go
package models

import "time"

type MemoInput struct {
	AnalysisResults AnalysisResults  `json:"analysisResults"`
	Decision        *Decision        `json:"decision"`
	InputData       *AnalysisRequest `json:"inputData"`
}

type Memo struct {
	ExecutiveSummary ExecutiveSummary   `json:"executive_summary"`
	InvestmentThesis InvestmentThesis   `json:"investment_thesis"`
	DetailedAnalysis DetailedAnalysis   `json:"detailed_analysis"`
	RiskAssessment   MemoRiskAssessment `json:"risk_assessment"`
	Recommendation   MemoRecommendation `json:"recommendation"`
	NextSteps        []string           `json:"next_steps"`
	Appendices       Appendices         `json:"appendices"`
}

type ExecutiveSummary struct {
	Company        string   `json:"company"`
	Recommendation Action   `json:"recommendation"`
	OverallScore   int      `json:"overall_score"`
	Summary        string   `json:"summary"`
	KeyHighlights  []string `json:"key_highlights"`
}

type InvestmentThesis struct {
	Thesis        string   `json:"thesis"`
	Strengths     []string `json:"strengths"`
	Opportunities []string `json:"opportunities"`
}

type SectionAnalysis struct {
	Score      int      `json:"score"`
	Assessment string   `json:"assessment"`
	Highlights []string `json:"highlights"`
}

type DetailedAnalysis struct {
	Founder  SectionAnalysis `json:"founder"`
	Market   SectionAnalysis `json:"market"`
	Business SectionAnalysis `json:"business"`
}

type MemoRiskAssessment struct {
	Level      Priority `json:"level"`
	TotalRisk  float64  `json:"total_risk"`
	Risks      []string `json:"risks"`
	Factors    []string `json:"factors"`
	Mitigation []string `json:"mitigation"`
}

type MemoRecommendation struct {
	Action    Action   `json:"action"`
	Priority  Priority `json:"priority"`
	Reasoning string   `json:"reasoning"`
	Details   []string `json:"details"`
}

type Appendices struct {
	Scores            Scores               `json:"scores"`
	Confidence        Confidence           `json:"confidence"`
	ScoreBreakdowns   map[string]Breakdown `json:"score_breakdowns"`
	Projections       []Projection         `json:"projections,omitempty"`
	DocumentsReviewed []string             `json:"documents_reviewed"`
}

// StoredAnalysis is the persisted result of one successful run.
type StoredAnalysis struct {
	ID         string     `json:"id"`
	Scores     Scores     `json:"scores"`
	Memo       *Memo      `json:"memo"`
	Timestamp  time.Time  `json:"timestamp"`
	Confidence Confidence `json:"confidence"`
}
