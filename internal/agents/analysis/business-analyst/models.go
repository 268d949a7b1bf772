// internal/agents/analysis/business-analyst/models.go
package businessanalyst

import (
	"startup-analyst/internal/common/scoring"
	"startup-analyst/internal/models"
)

type Input = models.BusinessData

type Output = models.BusinessAnalysis

const (
	MetricRevenue           = "revenue"
	MetricGrowth            = "growth"
	MetricMargins           = "margins"
	MetricScalability       = "scalability"
	MetricCapitalEfficiency = "capitalEfficiency"
)

// Annual revenue in USD.
var revenueBuckets = []scoring.Breakpoint{
	{Above: 10e6, Score: 95},
	{Above: 1e6, Score: 85},
	{Above: 100e3, Score: 70},
	{Above: 10e3, Score: 50},
}

// Year-over-year growth as a fraction.
var growthBuckets = []scoring.Breakpoint{
	{Above: 1.0, Score: 95},
	{Above: 0.5, Score: 85},
	{Above: 0.2, Score: 70},
	{Above: 0.05, Score: 55},
}

// Gross margin as a fraction.
var marginBuckets = []scoring.Breakpoint{
	{Above: 0.7, Score: 90},
	{Above: 0.5, Score: 75},
	{Above: 0.3, Score: 60},
}

// Revenue per dollar raised.
var capitalEfficiencyBuckets = []scoring.Breakpoint{
	{Above: 1.0, Score: 90},
	{Above: 0.5, Score: 75},
	{Above: 0.2, Score: 60},
}

var scalabilityScores = map[string]float64{
	"saas":         90,
	"marketplace":  85,
	"platform":     85,
	"subscription": 80,
	"ecommerce":    70,
	"hardware":     50,
	"services":     40,
	"consulting":   40,
}
