package strategies

import (
	"strings"

	"github.com/nice-copacabana/meteor-shower/internal/models"
)

// CreativeEvaluation scores open-ended output with a weighted rubric over
// length adequacy, structural richness, lexical richness, and — when the
// case supplies example answers — similarity to the closest example. With
// examples the signals weigh 0.1/0.2/0.3/0.4; without, the first three are
// averaged.
type CreativeEvaluation struct{}

func (CreativeEvaluation) Kind() models.ExpectedType { return models.ExpectedCreative }

func (CreativeEvaluation) Score(output string, expected *models.Expected) float64 {
	length := lengthScore(output)
	structure := structureScore(output)
	richness := lexicalRichness(output)

	if len(expected.Examples) == 0 {
		return (length + structure + richness) / 3
	}

	similarity := bestExampleSimilarity(output, expected.Examples)
	return 0.1*length + 0.2*structure + 0.3*richness + 0.4*similarity
}

// lengthScore is a banded curve over output length: too-short answers score
// low, mid-length answers peak, and very long answers taper off.
func lengthScore(output string) float64 {
	n := len(output)
	switch {
	case n < 50:
		return 30
	case n < 200:
		return 60
	case n < 1000:
		return 100
	case n < 5000:
		return 90
	default:
		return 70
	}
}

// structureScore rewards visible structure: paragraphs, headings or
// emphasis, lists, and code markers. Capped at 100.
func structureScore(output string) float64 {
	score := 0.0

	if strings.Contains(output, "\n\n") {
		score += 30
	}
	if hasLinePrefix(output, "#") || strings.Contains(output, "**") {
		score += 20
	}
	if hasListMarker(output) {
		score += 30
	}
	if strings.Contains(output, "`") {
		score += 20
	}

	if score > 100 {
		return 100
	}
	return score
}

func hasLinePrefix(output, prefix string) bool {
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), prefix) {
			return true
		}
	}
	return false
}

func hasListMarker(output string) bool {
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			return true
		}
		if len(trimmed) >= 3 && trimmed[0] >= '0' && trimmed[0] <= '9' && (trimmed[1] == '.' || trimmed[1] == ')') && trimmed[2] == ' ' {
			return true
		}
	}
	return false
}

// lexicalRichness combines a unique-word-count band with a type/token
// diversity ratio and a sentence-length bonus. Capped at 100.
func lexicalRichness(output string) float64 {
	words := Words(output)
	if len(words) == 0 {
		return 0
	}

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}

	var base float64
	switch u := len(unique); {
	case u < 20:
		base = 30
	case u < 50:
		base = 55
	case u < 100:
		base = 75
	default:
		base = 90
	}

	diversity := float64(len(unique)) / float64(len(words))
	score := base + diversity*20

	if sentences := countSentences(output); sentences > 0 {
		avg := float64(len(words)) / float64(sentences)
		if avg >= 8 && avg <= 30 {
			score += 10
		}
	}

	if score > 100 {
		return 100
	}
	return score
}

// bestExampleSimilarity returns the highest Jaccard word-set similarity
// between the output and any example answer, scaled to 100.
func bestExampleSimilarity(output string, examples []string) float64 {
	best := 0.0
	for _, ex := range examples {
		if sim := Jaccard(output, ex); sim > best {
			best = sim
		}
	}
	return best * 100
}
