// internal/models/analysis.go
package models

// Breakdown maps sub-metric names to their score.
type Breakdown map[string]float64

type FounderAnalysis struct {
	Total     int       `json:"total"`
	Breakdown Breakdown `json:"breakdown"`
	Insights  []string  `json:"insights"`
	RedFlags  []string  `json:"redFlags"`
}

type MarketAnalysis struct {
	Total         int       `json:"total"`
	Breakdown     Breakdown `json:"breakdown"`
	Trends        []string  `json:"trends"`
	Opportunities []string  `json:"opportunities"`
}

type BusinessAnalysis struct {
	Total           int          `json:"total"`
	Breakdown       Breakdown    `json:"breakdown"`
	Projections     []Projection `json:"projections"`
	Recommendations []string     `json:"recommendations"`
}

type Projection struct {
	Year    int     `json:"year"`
	Revenue float64 `json:"revenue"`
}

// Risk categories.
const (
	RiskMarket     = "market"
	RiskTeam       = "team"
	RiskFinancial  = "financial"
	RiskTechnology = "technology"
)

// RiskCategories lists the risk categories in reporting order.
var RiskCategories = []string{RiskMarket, RiskTeam, RiskFinancial, RiskTechnology}

// RiskAssessment holds per-category risk in [0,1] and a combined 0-100 total.
type RiskAssessment struct {
	TotalRisk  float64   `json:"totalRisk"`
	Breakdown  Breakdown `json:"breakdown"`
	Factors    []string  `json:"factors"`
	Mitigation []string  `json:"mitigation"`
}

// AnalysisResults is the phase-three output in founder, market, business, risk order.
type AnalysisResults struct {
	Founder  *FounderAnalysis  `json:"founder"`
	Market   *MarketAnalysis   `json:"market"`
	Business *BusinessAnalysis `json:"business"`
	Risk     *RiskAssessment   `json:"risk"`
}
