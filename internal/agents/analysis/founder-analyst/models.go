// internal/agents/analysis/founder-analyst/models.go
package founderanalyst

import (
	"startup-analyst/internal/common/scoring"
	"startup-analyst/internal/models"
)

type Input = models.FounderData

type Output = models.FounderAnalysis

const (
	MetricExperience          = "experience"
	MetricEducation           = "education"
	MetricTrackRecord         = "trackRecord"
	MetricTeamComplementarity = "teamComplementarity"
	MetricCommitment          = "commitment"
)

// Average years of founder experience.
var experienceBuckets = []scoring.Breakpoint{
	{Above: 15, Score: 95},
	{Above: 10, Score: 85},
	{Above: 5, Score: 70},
	{Above: 2, Score: 55},
}

// Total prior exits across the team.
var exitBuckets = []scoring.Breakpoint{
	{Above: 1, Score: 95},
	{Above: 0, Score: 85},
}

var educationScores = map[string]float64{
	"phd":       95,
	"mba":       85,
	"masters":   80,
	"bachelors": 70,
}

const (
	minCommitment = 70.0
	maxCommitment = 100.0
)
