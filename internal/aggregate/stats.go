// Package aggregate derives display groupings and statistics from fetched journal
// records. Nothing here mutates its input.
package aggregate

import "math"

// Percentage returns part/total*100, or 0 when total is zero.
func Percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// Average is the unrounded arithmetic mean, 0 for no values.
func Average(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// Round1 rounds to one decimal place for display.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// GradeBand is the colour band of a grade.
func GradeBand(value int) string {
	switch {
	case value >= 9:
		return "success"
	case value >= 7:
		return "warning"
	case value >= 5:
		return "info"
	default:
		return "error"
	}
}
