package evaluation

import (
	"fmt"

	"github.com/nice-copacabana/meteor-shower/internal/models"
)

const (
	strongThreshold = 80
	weakThreshold   = 60
)

// suggestionsByDimension maps each weak dimension to actionable advice.
var suggestionsByDimension = map[string]string{
	models.DimensionAccuracy:     "Review the expected result specification and tighten the prompt's task statement.",
	models.DimensionCompleteness: "Restate the key terms of the task in the answer so every requirement is visibly addressed.",
	models.DimensionCreativity:   "Discuss alternative approaches and include concrete examples or comparisons.",
	models.DimensionEfficiency:   "Trim the output to what the task needs, or raise accuracy so brevity is rewarded.",
}

// AnalyzeResult derives the qualitative read of a scored execution:
// strengths and weaknesses from threshold crossings, per-dimension
// suggestions, and a pass verdict against the case's difficulty threshold.
func (e *Evaluator) AnalyzeResult(c *models.Case, exec *models.Execution) *models.ResultAnalysis {
	analysis := &models.ResultAnalysis{
		ExecutionID: exec.ID,
		Threshold:   c.Difficulty.PassThreshold(),
	}
	analysis.Passed = exec.Scores.Overall >= analysis.Threshold

	for _, dim := range models.Dimensions {
		score := exec.Scores.Dimension(dim)
		switch {
		case score >= strongThreshold:
			analysis.Strengths = append(analysis.Strengths, fmt.Sprintf("strong %s (%.0f)", dim, score))
		case score < weakThreshold:
			analysis.Weaknesses = append(analysis.Weaknesses, fmt.Sprintf("weak %s (%.0f)", dim, score))
			if tip, ok := suggestionsByDimension[dim]; ok {
				analysis.Suggestions = append(analysis.Suggestions, tip)
			}
		}
	}

	return analysis
}
