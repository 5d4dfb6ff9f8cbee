package models

import (
	"math"
	"time"
)

// Status is the lifecycle state of an execution. Pending and Running are
// transient; the rest are terminal. An execution carries at most one
// terminal status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusTimeout   Status = "timeout"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether the status is a terminal state.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusTimeout, StatusCancelled:
		return true
	default:
		return false
	}
}

// Score dimension names, used for weight lookup, dimension leaders, and
// report rendering.
const (
	DimensionAccuracy     = "accuracy"
	DimensionCompleteness = "completeness"
	DimensionCreativity   = "creativity"
	DimensionEfficiency   = "efficiency"
)

// Dimensions lists the four score dimensions in canonical order.
var Dimensions = []string{
	DimensionAccuracy,
	DimensionCompleteness,
	DimensionCreativity,
	DimensionEfficiency,
}

// Execution is one run of a case against one tool/model. It is created by
// the execution engine with zeroed scores; the evaluator populates Scores
// exactly once, after which the execution is treated as read-only.
type Execution struct {
	ID         string    `json:"id"`
	CaseID     string    `json:"case_id"`
	Tool       string    `json:"tool"`
	Model      string    `json:"model,omitempty"`
	Output     string    `json:"output"`
	StartedAt  time.Time `json:"started_at"`
	DurationMs int64     `json:"duration_ms"`
	Scores     Scores    `json:"scores"`
	Status     Status    `json:"status"`
}

// Scores holds the four sub-scores in [0,100] and the derived weighted
// overall score. Custom carries free-form auxiliary scores.
type Scores struct {
	Accuracy     float64            `json:"accuracy"`
	Completeness float64            `json:"completeness"`
	Creativity   float64            `json:"creativity"`
	Efficiency   float64            `json:"efficiency"`
	Overall      float64            `json:"overall"`
	Custom       map[string]float64 `json:"custom,omitempty"`
}

// Dimension returns the sub-score for a dimension name.
func (s Scores) Dimension(dimension string) float64 {
	switch dimension {
	case DimensionAccuracy:
		return s.Accuracy
	case DimensionCompleteness:
		return s.Completeness
	case DimensionCreativity:
		return s.Creativity
	case DimensionEfficiency:
		return s.Efficiency
	default:
		return 0
	}
}

// ClampScore bounds a raw strategy or sub-score to [0,100] and rounds it to
// the nearest integer value. Strategies may transiently exceed the range.
func ClampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
