// internal/common/scoring/scoring.go

// Package scoring holds the arithmetic shared by the analysis agents.
package scoring

import "math"

// Breakpoint maps every value strictly above Above to Score.
type Breakpoint struct {
	Above float64
	Score float64
}

// WeightedAverage combines metrics using only the weights whose key is also
// present in metrics, dividing by the sum of the weights applied.
// Returns 0 when no weight applies.
func WeightedAverage(metrics, weights map[string]float64) float64 {
	var sum, applied float64
	for key, weight := range weights {
		value, ok := metrics[key]
		if !ok {
			continue
		}
		sum += value * weight
		applied += weight
	}
	if applied == 0 {
		return 0
	}
	return sum / applied
}

// Bucket returns the score of the first breakpoint whose threshold value exceeds,
// or fallback. Breakpoints are expected in descending order.
func Bucket(value float64, breakpoints []Breakpoint, fallback float64) float64 {
	for _, bp := range breakpoints {
		if value > bp.Above {
			return bp.Score
		}
	}
	return fallback
}

func Clamp(value, min, max float64) float64 {
	if math.IsNaN(value) {
		return min
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampScore clamps to the [0,100] score range.
func ClampScore(value float64) float64 {
	return Clamp(value, 0, 100)
}

// ClampUnit clamps to [0,1].
func ClampUnit(value float64) float64 {
	return Clamp(value, 0, 1)
}

// Round rounds half away from zero to the nearest integer.
func Round(value float64) int {
	return int(math.Round(value))
}

// RoundTo rounds to the given number of decimal places.
func RoundTo(value float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(value*p) / p
}
