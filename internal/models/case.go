package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExpectedType identifies which evaluation strategy applies to a case.
type ExpectedType string

const (
	ExpectedExact    ExpectedType = "exact"
	ExpectedPattern  ExpectedType = "pattern"
	ExpectedCriteria ExpectedType = "criteria"
	ExpectedCreative ExpectedType = "creative"
)

// Difficulty is the author-assigned difficulty tier of a case.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
	DifficultyLegendary    Difficulty = "legendary"
)

// passThresholds maps each difficulty to the minimum overall score that
// counts as a pass. Harder tiers tolerate lower scores.
var passThresholds = map[Difficulty]float64{
	DifficultyBeginner:     60,
	DifficultyIntermediate: 50,
	DifficultyAdvanced:     40,
	DifficultyExpert:       30,
	DifficultyLegendary:    20,
}

// PassThreshold returns the pass threshold for the difficulty.
// Unknown difficulties fall back to the beginner threshold.
func (d Difficulty) PassThreshold() float64 {
	if t, ok := passThresholds[d]; ok {
		return t
	}
	return passThresholds[DifficultyBeginner]
}

// Case is a human-authored test scenario with an expected-result
// specification and scoring weights. Cases are read-only inputs to the
// execution and evaluation core.
type Case struct {
	ID         string     `yaml:"id" json:"id"`
	Name       string     `yaml:"name" json:"name"`
	Category   string     `yaml:"category,omitempty" json:"category,omitempty"`
	Difficulty Difficulty `yaml:"difficulty,omitempty" json:"difficulty,omitempty"`
	Scenario   Scenario   `yaml:"scenario" json:"scenario"`
	Expected   Expected   `yaml:"expected" json:"expected"`
	Scoring    Scoring    `yaml:"scoring" json:"scoring"`
}

// Scenario describes the situation presented to a tool.
type Scenario struct {
	Context     string   `yaml:"context,omitempty" json:"context,omitempty"`
	Task        string   `yaml:"task" json:"task"`
	Input       string   `yaml:"input,omitempty" json:"input,omitempty"`
	Constraints []string `yaml:"constraints,omitempty" json:"constraints,omitempty"`
}

// Expected is the expected-result specification, tagged by Type.
// Only the field matching Type is meaningful; the others are ignored.
type Expected struct {
	Type ExpectedType `yaml:"type" json:"type"`

	// Content is the reference answer for exact cases.
	Content string `yaml:"content,omitempty" json:"content,omitempty"`
	// Pattern is the regular expression for pattern cases.
	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	// Criteria lists the criterion strings for criteria cases.
	Criteria []string `yaml:"criteria,omitempty" json:"criteria,omitempty"`
	// Examples holds optional reference answers for creative cases.
	Examples []string `yaml:"examples,omitempty" json:"examples,omitempty"`
}

// Scoring is the per-case weight vector. The four weights nominally sum to
// 100; the evaluator normalizes by the actual sum rather than rejecting
// malformed vectors.
type Scoring struct {
	Accuracy     float64 `yaml:"accuracy" json:"accuracy"`
	Completeness float64 `yaml:"completeness" json:"completeness"`
	Creativity   float64 `yaml:"creativity" json:"creativity"`
	Efficiency   float64 `yaml:"efficiency" json:"efficiency"`
}

// Sum returns the total of the four weights.
func (s Scoring) Sum() float64 {
	return s.Accuracy + s.Completeness + s.Creativity + s.Efficiency
}

// Weight returns the weight for a dimension name.
func (s Scoring) Weight(dimension string) float64 {
	switch dimension {
	case DimensionAccuracy:
		return s.Accuracy
	case DimensionCompleteness:
		return s.Completeness
	case DimensionCreativity:
		return s.Creativity
	case DimensionEfficiency:
		return s.Efficiency
	default:
		return 0
	}
}

// ParseCase parses and validates a case from YAML bytes.
func ParseCase(data []byte) (*Case, error) {
	var c Case
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing case: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// LoadCase loads a case from a YAML file.
func LoadCase(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := ParseCase(data)
	if err != nil {
		return nil, fmt.Errorf("invalid case %s: %w", path, err)
	}
	return c, nil
}

// Validate checks structural requirements of the case. Scoring weights are
// deliberately not required to sum to 100.
func (c *Case) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("case id is required")
	}
	if c.Scenario.Task == "" {
		return fmt.Errorf("scenario task is required")
	}
	switch c.Expected.Type {
	case ExpectedExact, ExpectedPattern, ExpectedCriteria, ExpectedCreative:
	case "":
		return fmt.Errorf("expected type is required")
	default:
		return fmt.Errorf("unknown expected type %q", c.Expected.Type)
	}
	for _, w := range []float64{c.Scoring.Accuracy, c.Scoring.Completeness, c.Scoring.Creativity, c.Scoring.Efficiency} {
		if w < 0 {
			return fmt.Errorf("scoring weights must not be negative")
		}
	}
	return nil
}
