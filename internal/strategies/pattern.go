package strategies

import (
	"regexp"

	"github.com/nice-copacabana/meteor-shower/internal/models"
)

// PatternMatch scores output against a regular expression. A match earns a
// base 70 plus up to 30 proportional to how much of the output the first
// match covers. A pattern that fails to compile or to match falls back to
// partial credit from the pattern's own keywords; compile errors are never
// surfaced.
type PatternMatch struct{}

func (PatternMatch) Kind() models.ExpectedType { return models.ExpectedPattern }

func (PatternMatch) Score(output string, expected *models.Expected) float64 {
	pattern := expected.Pattern
	if pattern == "" {
		return 0
	}

	re, err := regexp.Compile("(?i)" + pattern)
	if err == nil {
		if match := re.FindString(output); match != "" && len(output) > 0 {
			score := 70 + 30*float64(len(match))/float64(len(output))
			if score > 100 {
				return 100
			}
			return score
		}
	}

	return keywordFallback(pattern, output)
}

// keywordFallback awards up to 50 points for the fraction of the pattern's
// alphanumeric keywords (length > 2) literally present in the output.
func keywordFallback(pattern, output string) float64 {
	keywords := Keywords(pattern, 2)
	if len(keywords) == 0 {
		return 0
	}
	return 50 * KeywordCoverage(keywords, output)
}
