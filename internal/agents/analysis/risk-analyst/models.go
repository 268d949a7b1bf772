// internal/agents/analysis/risk-analyst/models.go
package riskanalyst

import "startup-analyst/internal/models"

type Input = models.ConsolidatedView

type Output = models.RiskAssessment

// penalty is an adverse condition that raises one category's risk.
type penalty struct {
	category string
	amount   float64
	factor   string
	applies  func(s *signals) bool
}

// signals are the cross-domain facts the penalties are evaluated against.
type signals struct {
	competitors      int
	marketSize       float64
	hasMarketSize    bool
	teamSize         int
	priorExperience  bool
	technicalFounder bool
	burnRate         float64
	hasBurnRate      bool
	revenue          float64
	runway           float64
	hasRunway        bool
	stage            string
}

var penalties = []penalty{
	{models.RiskMarket, 0.20, "Crowded market with more than 5 competitors",
		func(s *signals) bool { return s.competitors > 5 }},
	{models.RiskMarket, 0.15, "Addressable market below $100M",
		func(s *signals) bool { return s.hasMarketSize && s.marketSize < 100e6 }},
	{models.RiskTeam, 0.20, "Single founder or no identified founding team",
		func(s *signals) bool { return s.teamSize <= 1 }},
	{models.RiskTeam, 0.15, "Founders have no prior industry or startup experience",
		func(s *signals) bool { return !s.priorExperience }},
	{models.RiskFinancial, 0.25, "Burn rate exceeds revenue",
		func(s *signals) bool { return s.hasBurnRate && s.burnRate > s.revenue }},
	{models.RiskFinancial, 0.20, "Runway shorter than 12 months",
		func(s *signals) bool { return s.hasRunway && s.runway < 12 }},
	{models.RiskTechnology, 0.30, "Product is still at the idea stage",
		func(s *signals) bool { return s.stage == "idea" }},
	{models.RiskTechnology, 0.15, "No technical founder on the team",
		func(s *signals) bool { return !s.technicalFounder }},
}

var mitigations = map[string]string{
	models.RiskMarket:     "Validate differentiation against key competitors and size the serviceable market",
	models.RiskTeam:       "Strengthen the team with experienced hires or advisors",
	models.RiskFinancial:  "Tie the next raise to milestones that extend runway and reduce burn",
	models.RiskTechnology: "Require a technical roadmap review and prototype validation",
}
