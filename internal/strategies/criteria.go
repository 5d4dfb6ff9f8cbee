package strategies

import "github.com/nice-copacabana/meteor-shower/internal/models"

// criterionCoverage is the fraction of a criterion's keywords that must
// appear in the output for the criterion to count as satisfied.
const criterionCoverage = 0.6

// CriteriaMatch scores output as the fraction of criteria satisfied. A
// criterion is satisfied when at least 60% of its keywords (tokens longer
// than two characters) appear in the output, case-insensitively. An empty
// criteria list scores 0.
type CriteriaMatch struct{}

func (CriteriaMatch) Kind() models.ExpectedType { return models.ExpectedCriteria }

func (CriteriaMatch) Score(output string, expected *models.Expected) float64 {
	if len(expected.Criteria) == 0 {
		return 0
	}

	satisfied := 0
	for _, criterion := range expected.Criteria {
		keywords := Keywords(criterion, 2)
		if len(keywords) == 0 {
			continue
		}
		if KeywordCoverage(keywords, output) >= criterionCoverage {
			satisfied++
		}
	}

	return 100 * float64(satisfied) / float64(len(expected.Criteria))
}
