// internal/models/decision.go
package models

type Action string

const (
	ActionInvest   Action = "INVEST"
	ActionConsider Action = "CONSIDER"
	ActionPass     Action = "PASS"
)

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// DecisionInput positionally maps the four analysis outputs.
type DecisionInput struct {
	FounderScore   *FounderAnalysis  `json:"founderScore"`
	MarketScore    *MarketAnalysis   `json:"marketScore"`
	BusinessScore  *BusinessAnalysis `json:"businessScore"`
	RiskAssessment *RiskAssessment   `json:"riskAssessment"`
}

// Scores are all in [0,100]. Risk is the safety score, 100 minus total risk.
type Scores struct {
	Founder  int `json:"founder"`
	Market   int `json:"market"`
	Business int `json:"business"`
	Risk     int `json:"risk"`
	Overall  int `json:"overall"`
}

type Verdict struct {
	Action    Action   `json:"action"`
	Priority  Priority `json:"priority"`
	Reasoning string   `json:"reasoning"`
}

type ConfidenceFactors struct {
	DataQuality      int `json:"dataQuality"`
	Consistency      int `json:"consistency"`
	MarketValidation int `json:"marketValidation"`
	TeamAssessment   int `json:"teamAssessment"`
}

type Confidence struct {
	Overall int               `json:"overall"`
	Factors ConfidenceFactors `json:"factors"`
}

type RiskFlag struct {
	Type        string   `json:"type"`
	Level       Priority `json:"level"`
	Description string   `json:"description"`
}

type RecommendationItem struct {
	Category string `json:"category"`
	Action   string `json:"action"`
	Details  string `json:"details"`
}

type Decision struct {
	Scores         Scores               `json:"scores"`
	Decision       Verdict              `json:"decision"`
	Confidence     Confidence           `json:"confidence"`
	Risks          []RiskFlag           `json:"risks"`
	Recommendation []RecommendationItem `json:"recommendation"`
}
