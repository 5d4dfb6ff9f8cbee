// Package evaluation scores completed executions: accuracy comes from the
// strategy matching the case's expected-result type, the other three
// sub-scores are computed here, and the overall score is the weighted
// combination under the case's scoring vector.
package evaluation

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nice-copacabana/meteor-shower/internal/models"
	"github.com/nice-copacabana/meteor-shower/internal/strategies"
)

// ErrNotScorable reports an execution that never produced output to score.
var ErrNotScorable = fmt.Errorf("execution did not complete, nothing to score")

// approachTerms signal that the output discusses more than one way of
// solving the task.
var approachTerms = []string{
	"approach", "method", "solution", "strategy",
	"alternative", "option", "technique",
}

// exampleMarkers and comparisonMarkers are the phrases the creativity
// sub-score looks for.
var exampleMarkers = []string{"for example", "such as", "for instance", "e.g."}
var comparisonMarkers = []string{"compared to", "versus", "vs.", "in contrast", "on the other hand"}

// Evaluator scores executions against their cases.
type Evaluator struct {
	logger *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the evaluator's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEvaluator creates an evaluator.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{logger: slog.Default()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// EvaluateResult computes all four sub-scores and the weighted overall for a
// completed execution, writing them into exec.Scores. Scores are written
// exactly once; the execution is read-only afterwards.
func (e *Evaluator) EvaluateResult(c *models.Case, exec *models.Execution) error {
	if exec.Status != models.StatusCompleted {
		return fmt.Errorf("%w: status %q", ErrNotScorable, exec.Status)
	}

	strategy, err := strategies.ForExpected(c.Expected.Type)
	if err != nil {
		return err
	}

	accuracy := models.ClampScore(strategy.Score(exec.Output, &c.Expected))
	completeness := models.ClampScore(completenessScore(c.Scenario.Task, exec.Output))
	creativity := models.ClampScore(creativityScore(exec.Output))
	efficiency := models.ClampScore(efficiencyScore(accuracy, len(exec.Output)))

	exec.Scores = models.Scores{
		Accuracy:     accuracy,
		Completeness: completeness,
		Creativity:   creativity,
		Efficiency:   efficiency,
	}
	exec.Scores.Overall = overallScore(c.Scoring, exec.Scores)

	e.logger.Debug("scored execution",
		"execution_id", exec.ID,
		"case_id", c.ID,
		"accuracy", accuracy,
		"completeness", completeness,
		"creativity", creativity,
		"efficiency", efficiency,
		"overall", exec.Scores.Overall,
	)
	return nil
}

// completenessScore starts at 50 and adds up to 50 more for covering the
// task description's keywords (tokens longer than 3 characters).
func completenessScore(task, output string) float64 {
	keywords := strategies.Keywords(task, 3)
	if len(keywords) == 0 {
		return 50
	}
	return 50 + 50*strategies.KeywordCoverage(keywords, output)
}

// creativityScore starts at 50 and rewards discussing multiple approaches,
// giving examples, and drawing comparisons.
func creativityScore(output string) float64 {
	lower := strings.ToLower(output)

	score := 50.0
	if countPresent(lower, approachTerms) >= 2 {
		score += 20
	}
	if countPresent(lower, exampleMarkers) > 0 {
		score += 15
	}
	if countPresent(lower, comparisonMarkers) > 0 {
		score += 15
	}
	return score
}

func countPresent(haystack string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			n++
		}
	}
	return n
}

// efficiencyScore is a banded lookup keyed by output length and the already
// computed accuracy. High accuracy rewards brevity; low accuracy tolerates
// longer explanatory output.
func efficiencyScore(accuracy float64, outputLen int) float64 {
	if accuracy >= 70 {
		switch {
		case outputLen < 300:
			return 100
		case outputLen < 1000:
			return 90
		case outputLen < 3000:
			return 80
		default:
			return 70
		}
	}
	switch {
	case outputLen < 300:
		return 40
	case outputLen < 1000:
		return 50
	case outputLen < 3000:
		return 70
	default:
		return 60
	}
}

// overallScore combines the sub-scores under the case's weight vector,
// normalized by the actual weight sum so malformed vectors still produce a
// sensible [0,100] number. A zero vector degrades to a plain average.
func overallScore(weights models.Scoring, s models.Scores) float64 {
	sum := weights.Sum()
	if sum <= 0 {
		return models.ClampScore((s.Accuracy + s.Completeness + s.Creativity + s.Efficiency) / 4)
	}

	weighted := s.Accuracy*weights.Accuracy +
		s.Completeness*weights.Completeness +
		s.Creativity*weights.Creativity +
		s.Efficiency*weights.Efficiency
	return models.ClampScore(weighted / sum)
}
