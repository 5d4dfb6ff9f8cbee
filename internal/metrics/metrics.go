// Package metrics wraps the descriptive statistics the comparison layer
// needs. Empty inputs yield zeros rather than errors; a report over no
// executions is an upstream bug, not a math problem.
package metrics

import (
	"github.com/montanaflynn/stats"
)

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	m, err := stats.Mean(stats.Float64Data(values))
	if err != nil {
		return 0
	}
	return m
}

// Variance returns the population variance of values, or 0 when fewer than
// two values exist.
func Variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	v, err := stats.PopulationVariance(stats.Float64Data(values))
	if err != nil {
		return 0
	}
	return v
}

// StdDev returns the population standard deviation of values, or 0 when
// fewer than two values exist.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sd, err := stats.StandardDeviationPopulation(stats.Float64Data(values))
	if err != nil {
		return 0
	}
	return sd
}

// Min returns the smallest value, or 0 for an empty slice.
func Min(values []float64) float64 {
	m, err := stats.Min(stats.Float64Data(values))
	if err != nil {
		return 0
	}
	return m
}

// Max returns the largest value, or 0 for an empty slice.
func Max(values []float64) float64 {
	m, err := stats.Max(stats.Float64Data(values))
	if err != nil {
		return 0
	}
	return m
}
