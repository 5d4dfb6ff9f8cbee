package evaluation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nice-copacabana/meteor-shower/internal/models"
)

func scoredCase(expectedType models.ExpectedType) *models.Case {
	c := &models.Case{
		ID:         "demo",
		Name:       "Demo",
		Difficulty: models.DifficultyBeginner,
		Scenario:   models.Scenario{Task: "Explain database indexing strategies"},
		Expected:   models.Expected{Type: expectedType},
		Scoring:    models.Scoring{Accuracy: 40, Completeness: 30, Creativity: 20, Efficiency: 10},
	}
	switch expectedType {
	case models.ExpectedExact:
		c.Expected.Content = "use a btree index"
	case models.ExpectedPattern:
		c.Expected.Pattern = `btree|hash`
	case models.ExpectedCriteria:
		c.Expected.Criteria = []string{"mentions btree indexes", "mentions hash indexes"}
	}
	return c
}

func completedExecution(output string) *models.Execution {
	return &models.Execution{
		ID:     "exec-1",
		CaseID: "demo",
		Tool:   "echo",
		Output: output,
		Status: models.StatusCompleted,
	}
}

func TestEvaluateResultPopulatesScores(t *testing.T) {
	e := NewEvaluator()
	c := scoredCase(models.ExpectedExact)
	exec := completedExecution("Use a B-Tree index")

	require.NoError(t, e.EvaluateResult(c, exec))

	require.InDelta(t, 100, exec.Scores.Accuracy, 1e-9)
	for _, dim := range models.Dimensions {
		score := exec.Scores.Dimension(dim)
		require.GreaterOrEqual(t, score, 0.0)
		require.LessOrEqual(t, score, 100.0)
	}
	require.Greater(t, exec.Scores.Overall, 0.0)
}

func TestEvaluateResultRejectsIncomplete(t *testing.T) {
	e := NewEvaluator()
	c := scoredCase(models.ExpectedExact)

	for _, status := range []models.Status{models.StatusPending, models.StatusFailed, models.StatusTimeout, models.StatusCancelled} {
		exec := completedExecution("anything")
		exec.Status = status
		require.ErrorIs(t, e.EvaluateResult(c, exec), ErrNotScorable)
	}
}

func TestEvaluateResultUnknownExpectedType(t *testing.T) {
	e := NewEvaluator()
	c := scoredCase(models.ExpectedExact)
	c.Expected.Type = "telepathy"

	require.Error(t, e.EvaluateResult(c, completedExecution("out")))
}

func TestOverallIsWeightedSum(t *testing.T) {
	e := NewEvaluator()
	c := scoredCase(models.ExpectedCriteria)
	exec := completedExecution("Covers btree indexes and hash indexes with examples such as postgres.")

	require.NoError(t, e.EvaluateResult(c, exec))

	s := exec.Scores
	w := c.Scoring
	expected := (s.Accuracy*w.Accuracy + s.Completeness*w.Completeness +
		s.Creativity*w.Creativity + s.Efficiency*w.Efficiency) / w.Sum()
	require.InDelta(t, models.ClampScore(expected), s.Overall, 1e-9)
}

func TestOverallNormalizesMalformedWeights(t *testing.T) {
	e := NewEvaluator()

	// Weights sum to 200 instead of 100; the overall score must still land
	// in [0,100].
	c := scoredCase(models.ExpectedExact)
	c.Scoring = models.Scoring{Accuracy: 80, Completeness: 60, Creativity: 40, Efficiency: 20}
	exec := completedExecution("use a btree index")

	require.NoError(t, e.EvaluateResult(c, exec))
	require.LessOrEqual(t, exec.Scores.Overall, 100.0)
	require.Greater(t, exec.Scores.Overall, 0.0)

	// An all-zero vector degrades to a plain average.
	c2 := scoredCase(models.ExpectedExact)
	c2.Scoring = models.Scoring{}
	exec2 := completedExecution("use a btree index")
	require.NoError(t, e.EvaluateResult(c2, exec2))
	s := exec2.Scores
	require.InDelta(t, models.ClampScore((s.Accuracy+s.Completeness+s.Creativity+s.Efficiency)/4), s.Overall, 1e-9)
}

func TestCompletenessScore(t *testing.T) {
	// Base 50 when nothing is covered, up to 100 at full coverage.
	require.InDelta(t, 50, completenessScore("Explain database indexing", "no relevant words here"), 1e-9)
	require.InDelta(t, 100, completenessScore("Explain database indexing", "I explain database indexing in depth"), 1e-9)

	// Tasks with only short tokens keep the base.
	require.InDelta(t, 50, completenessScore("do it now", "done"), 1e-9)

	mid := completenessScore("Explain database indexing strategies", "indexing and strategies only")
	require.Greater(t, mid, 50.0)
	require.Less(t, mid, 100.0)
}

func TestCreativityScore(t *testing.T) {
	require.InDelta(t, 50, creativityScore("plain answer"), 1e-9)
	require.InDelta(t, 70, creativityScore("One approach is X; another method is Y."), 1e-9)
	require.InDelta(t, 65, creativityScore("Databases such as postgres do this."), 1e-9)
	require.InDelta(t, 65, creativityScore("This is fast compared to a table scan."), 1e-9)
	require.InDelta(t, 100, creativityScore(
		"One approach is a btree; an alternative method is hashing. "+
			"For example, postgres defaults to btree, which is flexible compared to hash indexes."), 1e-9)
}

func TestEfficiencyScoreBands(t *testing.T) {
	short := strings.Repeat("a", 100)
	medium := strings.Repeat("a", 500)
	long := strings.Repeat("a", 2000)
	huge := strings.Repeat("a", 5000)

	// High accuracy rewards brevity.
	require.InDelta(t, 100, efficiencyScore(90, len(short)), 1e-9)
	require.InDelta(t, 90, efficiencyScore(90, len(medium)), 1e-9)
	require.InDelta(t, 80, efficiencyScore(90, len(long)), 1e-9)
	require.InDelta(t, 70, efficiencyScore(90, len(huge)), 1e-9)

	// Low accuracy tolerates longer explanatory output.
	require.InDelta(t, 40, efficiencyScore(40, len(short)), 1e-9)
	require.InDelta(t, 50, efficiencyScore(40, len(medium)), 1e-9)
	require.InDelta(t, 70, efficiencyScore(40, len(long)), 1e-9)
	require.InDelta(t, 60, efficiencyScore(40, len(huge)), 1e-9)
}
