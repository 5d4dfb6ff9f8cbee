package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nice-copacabana/meteor-shower/internal/casestore"
	"github.com/nice-copacabana/meteor-shower/internal/comparison"
	"github.com/nice-copacabana/meteor-shower/internal/history"
	"github.com/nice-copacabana/meteor-shower/internal/models"
)

var (
	compareCasesDir   string
	compareHistoryDir string
	compareTools      []string
	compareOutputPath string
)

func newCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <case-id>",
		Short: "Compare tools on a case from stored history",
		Long: `Build a comparison report for one case from previously recorded
executions. Each tool contributes its most recent execution of the case.`,
		Args: cobra.ExactArgs(1),
		RunE: compareCommandE,
	}

	cmd.Flags().StringVar(&compareCasesDir, "cases", "cases", "Directory containing case YAML files")
	cmd.Flags().StringVar(&compareHistoryDir, "history-dir", ".meteor-history", "Directory for execution history")
	cmd.Flags().StringArrayVar(&compareTools, "tool", nil, "Limit the comparison to these tools (can be repeated)")
	cmd.Flags().StringVarP(&compareOutputPath, "output", "o", "", "Write the report as Markdown to this file")

	return cmd
}

func compareCommandE(cmd *cobra.Command, args []string) error {
	caseID := args[0]

	casesDir, err := resolveDir(compareCasesDir)
	if err != nil {
		return fmt.Errorf("cases directory: %w", err)
	}

	store := casestore.NewStore()
	if _, err := store.LoadDir(casesDir); err != nil {
		return fmt.Errorf("loading cases: %w", err)
	}
	c, err := store.GetCase(caseID)
	if err != nil {
		return err
	}

	historyStore := history.New(compareHistoryDir)

	tools := compareTools
	if len(tools) == 0 {
		tools, err = historyStore.Tools()
		if err != nil {
			return err
		}
	}
	if len(tools) == 0 {
		return fmt.Errorf("no execution history found in %s", compareHistoryDir)
	}

	// Most recent execution of this case per tool.
	var executions []*models.Execution
	for _, tool := range tools {
		stored, err := historyStore.List(tool)
		if err != nil {
			return err
		}
		var latest *models.Execution
		for _, exec := range stored {
			if exec.CaseID == caseID && exec.Status == models.StatusCompleted {
				latest = exec
			}
		}
		if latest != nil {
			executions = append(executions, latest)
		}
	}
	if len(executions) == 0 {
		return fmt.Errorf("no stored executions of case %q", caseID)
	}

	analyzer := comparison.NewAnalyzer(historyStore, store)
	report, err := analyzer.GenerateReport(c, executions)
	if err != nil {
		return err
	}

	printReport(report)

	if compareOutputPath != "" {
		if err := os.WriteFile(compareOutputPath, []byte(comparison.ExportMarkdown(report)), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("\nReport saved to: %s\n", compareOutputPath)
	}
	return nil
}
