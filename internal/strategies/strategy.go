// Package strategies implements the interchangeable accuracy-scoring
// algorithms. Every strategy is a pure, stateless function of the raw tool
// output and the case's expected-result specification, returning a number
// that callers clamp to [0,100]. Malformed expected specs degrade to a score
// of 0 rather than raising.
package strategies

import (
	"fmt"

	"github.com/nice-copacabana/meteor-shower/internal/models"
)

// Strategy scores raw output against an expected-result specification.
type Strategy interface {
	// Kind returns the expected-result type this strategy handles.
	Kind() models.ExpectedType

	// Score returns the accuracy for the output. Implementations may
	// transiently exceed [0,100]; callers clamp.
	Score(output string, expected *models.Expected) float64
}

// ErrStrategyNotFound reports an expected-result type with no matching
// strategy. It should not occur for the four known variants but is handled
// defensively.
var ErrStrategyNotFound = fmt.Errorf("no evaluation strategy for expected type")

// ForExpected returns the strategy matching the expected-result type.
func ForExpected(t models.ExpectedType) (Strategy, error) {
	switch t {
	case models.ExpectedExact:
		return ExactMatch{}, nil
	case models.ExpectedPattern:
		return PatternMatch{}, nil
	case models.ExpectedCriteria:
		return CriteriaMatch{}, nil
	case models.ExpectedCreative:
		return CreativeEvaluation{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrStrategyNotFound, t)
	}
}
