package execution

import (
	"fmt"
	"strings"

	"github.com/nice-copacabana/meteor-shower/internal/models"
)

// BuildPrompt renders the prompt sent to an adapter for a case. The layout
// is deterministic: context, task, input, constraint bullets, then an
// instruction suffix chosen by the expected-result type.
func BuildPrompt(c *models.Case) string {
	var b strings.Builder

	if c.Scenario.Context != "" {
		b.WriteString("Context:\n")
		b.WriteString(c.Scenario.Context)
		b.WriteString("\n\n")
	}

	b.WriteString("Task:\n")
	b.WriteString(c.Scenario.Task)
	b.WriteString("\n\n")

	if c.Scenario.Input != "" {
		b.WriteString("Input:\n")
		b.WriteString(c.Scenario.Input)
		b.WriteString("\n\n")
	}

	if len(c.Scenario.Constraints) > 0 {
		b.WriteString("Constraints:\n")
		for _, constraint := range c.Scenario.Constraints {
			fmt.Fprintf(&b, "- %s\n", constraint)
		}
		b.WriteString("\n")
	}

	b.WriteString(instructionSuffix(&c.Expected))
	b.WriteString("\n")

	return b.String()
}

func instructionSuffix(expected *models.Expected) string {
	switch expected.Type {
	case models.ExpectedExact:
		return "Provide a precise answer."
	case models.ExpectedPattern:
		return "Follow the specified format."
	case models.ExpectedCriteria:
		var b strings.Builder
		b.WriteString("Address each of the following criteria:\n")
		for _, criterion := range expected.Criteria {
			fmt.Fprintf(&b, "- [ ] %s\n", criterion)
		}
		return strings.TrimRight(b.String(), "\n")
	case models.ExpectedCreative:
		return "Provide an innovative solution."
	default:
		return ""
	}
}
