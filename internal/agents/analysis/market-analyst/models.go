// internal/agents/analysis/market-analyst/models.go
package marketanalyst

import (
	"startup-analyst/internal/common/scoring"
	"startup-analyst/internal/models"
)

type Input = models.MarketData

type Output = models.MarketAnalysis

const (
	MetricMarketSize    = "marketSize"
	MetricGrowthRate    = "growthRate"
	MetricCompetition   = "competition"
	MetricTiming        = "timing"
	MetricAccessibility = "accessibility"
)

// Total addressable market in USD.
var marketSizeBuckets = []scoring.Breakpoint{
	{Above: 10e9, Score: 95},
	{Above: 1e9, Score: 85},
	{Above: 100e6, Score: 70},
}

// Annual growth as a fraction.
var growthBuckets = []scoring.Breakpoint{
	{Above: 0.30, Score: 95},
	{Above: 0.20, Score: 85},
	{Above: 0.10, Score: 70},
	{Above: 0.05, Score: 55},
}

// Number of known competitors. More competitors scores lower.
var competitionBuckets = []scoring.Breakpoint{
	{Above: 10, Score: 35},
	{Above: 5, Score: 55},
	{Above: 2, Score: 75},
}

var newsBuckets = []scoring.Breakpoint{
	{Above: 2, Score: 80},
	{Above: 0, Score: 70},
}

var trendScores = map[string]float64{
	"emerging":  90,
	"growing":   85,
	"mature":    60,
	"declining": 30,
}

const (
	minAccessibility = 60.0
	maxAccessibility = 90.0
)
