package strategies

import "github.com/nice-copacabana/meteor-shower/internal/models"

// ExactMatch scores output against a reference answer. Normalized equality
// scores 100; otherwise the score degrades with Levenshtein edit distance
// between the normalized strings. Symmetric, and Score(a, a) == 100.
type ExactMatch struct{}

func (ExactMatch) Kind() models.ExpectedType { return models.ExpectedExact }

func (ExactMatch) Score(output string, expected *models.Expected) float64 {
	got := Normalize(output)
	want := Normalize(expected.Content)

	if got == want {
		return 100
	}

	maxLen := len(got)
	if len(want) > maxLen {
		maxLen = len(want)
	}
	if maxLen == 0 {
		return 100
	}

	distance := Levenshtein(got, want)
	similarity := 1 - float64(distance)/float64(maxLen)
	if similarity < 0 {
		return 0
	}
	return similarity * 100
}
