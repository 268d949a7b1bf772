// internal/agents/memo/memo-generator/models.go
package memogenerator

import (
	"startup-analyst/internal/common/scoring"
	"startup-analyst/internal/models"
)

type Input = models.MemoInput

type Output = models.Memo

// Assessment labels by score.
var assessmentBuckets = []struct {
	min   int
	label string
}{
	{85, "Excellent"},
	{70, "Strong"},
	{55, "Moderate"},
	{0, "Weak"},
}

// Total risk thresholds for the memo risk level.
var riskLevelBuckets = []scoring.Breakpoint{
	{Above: 60, Score: 2},
	{Above: 35, Score: 1},
}

var riskLevels = []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh}

var summaryTemplates = map[models.Action]string{
	models.ActionInvest:   "%s scores %d/100 and is recommended for investment.",
	models.ActionConsider: "%s scores %d/100 and merits further consideration.",
	models.ActionPass:     "%s scores %d/100 and does not meet the bar for investment at this time.",
}

// Used when a decision agent returns an action outside the table above.
const neutralSummaryTemplate = "%s scores %d/100."

var thesisTemplates = map[models.Action]string{
	models.ActionInvest:   "%s combines a capable team with an attractive market and a business model that can scale.",
	models.ActionConsider: "%s shows promise, but open questions remain before committing capital.",
	models.ActionPass:     "%s does not yet present a compelling investment case.",
}

const neutralThesisTemplate = "%s has been reviewed across team, market, business and risk."

// templateFor returns the template for action, or fallback when there is none.
func templateFor(templates map[models.Action]string, action models.Action, fallback string) string {
	if tmpl, ok := templates[action]; ok {
		return tmpl
	}
	return fallback
}

var strengthTexts = map[string]string{
	"founder":  "Experienced and complementary founding team",
	"market":   "Large and growing target market",
	"business": "Sound business model and unit economics",
}

var nextSteps = map[models.Action][]string{
	models.ActionInvest: {
		"Schedule partner meeting with the founders",
		"Complete confirmatory due diligence",
		"Prepare term sheet",
	},
	models.ActionConsider: {
		"Request updated financials and customer metrics",
		"Schedule a follow-up call with the founders",
		"Reassess after the next milestone",
	},
	models.ActionPass: {
		"Send feedback to the founders",
		"Track progress for a future round",
	},
}
