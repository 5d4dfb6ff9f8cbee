package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusTerminal(t *testing.T) {
	require.False(t, StatusPending.Terminal())
	require.False(t, StatusRunning.Terminal())

	for _, s := range []Status{StatusCompleted, StatusFailed, StatusTimeout, StatusCancelled} {
		require.True(t, s.Terminal(), "status %q", s)
	}
}

func TestScoresDimension(t *testing.T) {
	s := Scores{Accuracy: 1, Completeness: 2, Creativity: 3, Efficiency: 4}
	require.InDelta(t, 1, s.Dimension(DimensionAccuracy), 1e-9)
	require.InDelta(t, 2, s.Dimension(DimensionCompleteness), 1e-9)
	require.InDelta(t, 3, s.Dimension(DimensionCreativity), 1e-9)
	require.InDelta(t, 4, s.Dimension(DimensionEfficiency), 1e-9)
	require.Zero(t, s.Dimension("nope"))
}

func TestClampScore(t *testing.T) {
	require.InDelta(t, 0, ClampScore(-5), 1e-9)
	require.InDelta(t, 100, ClampScore(140), 1e-9)
	require.InDelta(t, 67, ClampScore(66.67), 1e-9)
	require.InDelta(t, 66, ClampScore(66.4), 1e-9)
	require.InDelta(t, 0, ClampScore(math.NaN()), 1e-9)
	require.InDelta(t, 100, ClampScore(math.Inf(1)), 1e-9)
	require.InDelta(t, 0, ClampScore(math.Inf(-1)), 1e-9)
}
