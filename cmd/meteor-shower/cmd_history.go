package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nice-copacabana/meteor-shower/internal/casestore"
	"github.com/nice-copacabana/meteor-shower/internal/comparison"
	"github.com/nice-copacabana/meteor-shower/internal/history"
)

var (
	historyCasesDir string
	historyDir      string
	historyCategory string
	historyLimit    int
)

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <tool>",
		Short: "Show a tool's performance history",
		Long: `Aggregate a tool's stored executions into average score, pass rate,
score distribution, and a daily trend.`,
		Args: cobra.ExactArgs(1),
		RunE: historyCommandE,
	}

	cmd.Flags().StringVar(&historyCasesDir, "cases", "", "Case directory, required when filtering by --category")
	cmd.Flags().StringVar(&historyDir, "history-dir", ".meteor-history", "Directory for execution history")
	cmd.Flags().StringVar(&historyCategory, "category", "", "Only include executions of cases in this category")
	cmd.Flags().IntVar(&historyLimit, "limit", 0, "Only include the most recent N executions")

	return cmd
}

func historyCommandE(cmd *cobra.Command, args []string) error {
	tool := args[0]

	var cases comparison.CaseLookup
	if historyCategory != "" {
		if historyCasesDir == "" {
			return fmt.Errorf("--category requires --cases")
		}
		dir, err := resolveDir(historyCasesDir)
		if err != nil {
			return fmt.Errorf("cases directory: %w", err)
		}
		store := casestore.NewStore()
		if _, err := store.LoadDir(dir); err != nil {
			return fmt.Errorf("loading cases: %w", err)
		}
		cases = store
	}

	analyzer := comparison.NewAnalyzer(history.New(historyDir), cases)
	perf, err := analyzer.ToolPerformanceHistory(tool, historyCategory, historyLimit)
	if err != nil {
		return err
	}

	printHistory(perf)
	return nil
}
