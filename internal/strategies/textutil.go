package strategies

import (
	"strings"
	"unicode"
)

// Normalize lowercases, strips punctuation, collapses internal whitespace to
// single spaces, and trims. Both sides of an exact comparison go through
// this before anything else.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
		// Punctuation and symbols are dropped.
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Words splits a string into lowercase tokens at every non-alphanumeric
// boundary. Unlike Normalize, punctuation separates tokens rather than
// merging their neighbors.
func Words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Keywords extracts the normalized tokens strictly longer than minLen.
func Keywords(s string, minLen int) []string {
	var out []string
	for _, w := range Words(s) {
		if len(w) > minLen {
			out = append(out, w)
		}
	}
	return out
}

// KeywordCoverage returns the fraction of keywords literally present in the
// output (case-insensitive substring match). Returns 0 for an empty keyword
// list.
func KeywordCoverage(keywords []string, output string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	haystack := strings.ToLower(output)
	found := 0
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			found++
		}
	}
	return float64(found) / float64(len(keywords))
}

// Levenshtein computes the edit distance between two strings with unit
// insert/delete/substitute costs, using the standard two-row DP table.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // delete
				curr[j-1]+1,    // insert
				prev[j-1]+cost, // substitute
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Jaccard computes the Jaccard similarity of the two strings' word sets.
// Two empty inputs are identical (1); one empty input shares nothing (0).
func Jaccard(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range Words(s) {
		set[w] = struct{}{}
	}
	return set
}

// countSentences counts sentence terminators, treating consecutive
// terminators as one. A trailing unterminated fragment counts as a sentence.
func countSentences(s string) int {
	count := 0
	inSentence := false
	for _, r := range s {
		switch r {
		case '.', '!', '?':
			if inSentence {
				count++
				inSentence = false
			}
		default:
			if !unicode.IsSpace(r) {
				inSentence = true
			}
		}
	}
	if inSentence {
		count++
	}
	return count
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
