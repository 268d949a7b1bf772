// internal/agents/decision/decision-maker/models.go
package decisionmaker

import "startup-analyst/internal/models"

type Input = models.DecisionInput

type Output = models.Decision

const (
	WeightFounder  = "founder"
	WeightMarket   = "market"
	WeightBusiness = "business"
	WeightRisk     = "risk"
)

const (
	CategoryInvestment     = "INVESTMENT"
	CategoryDueDiligence   = "DUE_DILIGENCE"
	CategoryRiskMitigation = "RISK_MITIGATION"
)

type riskRule struct {
	category    string
	above       float64
	level       models.Priority
	description string
}

// Evaluated in this order against the risk breakdown.
var riskRules = []riskRule{
	{models.RiskMarket, 0.7, models.PriorityHigh, "High market risk from competition or limited market size"},
	{models.RiskTeam, 0.6, models.PriorityMedium, "Team gaps in experience or founder coverage"},
	{models.RiskFinancial, 0.8, models.PriorityHigh, "Severe financial risk from burn and runway"},
	{models.RiskTechnology, 0.5, models.PriorityMedium, "Technology is unproven or lacks technical leadership"},
}

var investmentDetails = map[models.Action]string{
	models.ActionInvest:   "Proceed to term sheet discussions",
	models.ActionConsider: "Keep in pipeline and revisit after the next milestone",
	models.ActionPass:     "Decline for now and send constructive feedback to the founders",
}

var dueDiligenceDetails = map[models.Action]string{
	models.ActionInvest:   "Fast-track financial and legal due diligence",
	models.ActionConsider: "Run a focused deep-dive on the weakest scoring areas",
}

var mitigationDetails = map[string]string{
	models.RiskMarket:     "Validate competitive positioning with customer interviews",
	models.RiskTeam:       "Require key hires or board advisors as a condition of investment",
	models.RiskFinancial:  "Stage capital against revenue and runway milestones",
	models.RiskTechnology: "Commission an independent technical review",
}

// Display names for reasoning text, in tie-break order.
var areaNames = []struct {
	key  string
	name string
}{
	{WeightFounder, "founding team"},
	{WeightMarket, "market opportunity"},
	{WeightBusiness, "business model"},
	{WeightRisk, "risk profile"},
}
