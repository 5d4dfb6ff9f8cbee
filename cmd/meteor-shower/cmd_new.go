package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/nice-copacabana/meteor-shower/internal/models"
	"github.com/nice-copacabana/meteor-shower/internal/validation"
)

var newCasesDir string

func newNewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <case-id>",
		Short: "Create a new case YAML file",
		Long: `Create a new capability case.

When running in a terminal (TTY), launches an interactive wizard for the
case's scenario and expected result. In non-interactive environments (CI,
pipes), writes a template to edit by hand.`,
		Args: cobra.ExactArgs(1),
		RunE: newCommandE,
	}

	cmd.Flags().StringVar(&newCasesDir, "dir", "cases", "Directory to create the case file in")

	return cmd
}

func newCommandE(cmd *cobra.Command, args []string) error {
	caseID := args[0]
	if err := validateCaseID(caseID); err != nil {
		return err
	}

	path := filepath.Join(newCasesDir, caseID+".yaml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	var c *models.Case
	// Check TTY from the command's input stream, not os.Stdin directly.
	inReader := cmd.InOrStdin()
	isTTY := false
	if f, ok := inReader.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	if isTTY {
		wizardCase, err := runCaseWizard(cmd.InOrStdin(), cmd.OutOrStdout(), caseID)
		if err != nil {
			return err
		}
		c = wizardCase
	} else {
		c = templateCase(caseID)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling case: %w", err)
	}

	if violations := validation.ValidateCaseBytes(data); len(violations) > 0 {
		return fmt.Errorf("generated case fails schema validation:\n  %s", strings.Join(violations, "\n  "))
	}

	if err := os.MkdirAll(newCasesDir, 0o755); err != nil {
		return fmt.Errorf("creating case directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing case: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path) //nolint:errcheck
	return nil
}

// validateCaseID rejects ids with path-traversal characters or empty ids.
func validateCaseID(id string) error {
	if id == "" {
		return fmt.Errorf("case id must not be empty")
	}
	cleaned := filepath.Clean(id)
	if cleaned == ".." || strings.Contains(cleaned, "/") || strings.Contains(cleaned, "\\") {
		return fmt.Errorf("case id %q contains invalid path characters", id)
	}
	return nil
}

// runCaseWizard runs an interactive huh form to collect the case fields.
func runCaseWizard(in io.Reader, out io.Writer, caseID string) (*models.Case, error) {
	var (
		name         = caseID
		category     string
		difficulty   = string(models.DifficultyBeginner)
		task         string
		contextText  string
		expectedType = string(models.ExpectedCreative)
		content      string
		pattern      string
		criteriaRaw  string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Case name").
				Description("A human-readable name for this case").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Category").
				Placeholder("coding").
				Value(&category),
			huh.NewSelect[string]().
				Title("Difficulty").
				Options(
					huh.NewOption("beginner", string(models.DifficultyBeginner)),
					huh.NewOption("intermediate", string(models.DifficultyIntermediate)),
					huh.NewOption("advanced", string(models.DifficultyAdvanced)),
					huh.NewOption("expert", string(models.DifficultyExpert)),
					huh.NewOption("legendary", string(models.DifficultyLegendary)),
				).
				Value(&difficulty),
			huh.NewText().
				Title("Task").
				Description("What should the tool do?").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("task is required")
					}
					return nil
				}).
				Value(&task),
			huh.NewText().
				Title("Context").
				Description("Optional background presented before the task").
				Value(&contextText),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Expected result type").
				Options(
					huh.NewOption("exact answer", string(models.ExpectedExact)),
					huh.NewOption("regex pattern", string(models.ExpectedPattern)),
					huh.NewOption("criteria list", string(models.ExpectedCriteria)),
					huh.NewOption("creative (open-ended)", string(models.ExpectedCreative)),
				).
				Value(&expectedType),
			huh.NewInput().
				Title("Exact content").
				Description("Reference answer, used for the exact type").
				Value(&content),
			huh.NewInput().
				Title("Pattern").
				Description("Regular expression, used for the pattern type").
				Value(&pattern),
			huh.NewInput().
				Title("Criteria").
				Description("Comma-separated criteria, used for the criteria type").
				Value(&criteriaRaw),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	c := &models.Case{
		ID:         caseID,
		Name:       strings.TrimSpace(name),
		Category:   strings.TrimSpace(category),
		Difficulty: models.Difficulty(difficulty),
		Scenario: models.Scenario{
			Context: strings.TrimSpace(contextText),
			Task:    strings.TrimSpace(task),
		},
		Expected: models.Expected{
			Type:     models.ExpectedType(expectedType),
			Content:  strings.TrimSpace(content),
			Pattern:  strings.TrimSpace(pattern),
			Criteria: splitAndTrim(criteriaRaw),
		},
		Scoring: defaultScoring(),
	}
	return c, c.Validate()
}

// templateCase is the non-interactive starting point.
func templateCase(caseID string) *models.Case {
	return &models.Case{
		ID:         caseID,
		Name:       titleCase(caseID),
		Category:   "general",
		Difficulty: models.DifficultyBeginner,
		Scenario: models.Scenario{
			Task: "Describe the task for the tool here",
		},
		Expected: models.Expected{
			Type: models.ExpectedCreative,
		},
		Scoring: defaultScoring(),
	}
}

func defaultScoring() models.Scoring {
	return models.Scoring{Accuracy: 40, Completeness: 30, Creativity: 20, Efficiency: 10}
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// titleCase converts a kebab-case id to Title Case.
func titleCase(s string) string {
	words := strings.Split(s, "-")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
