package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nice-copacabana/meteor-shower/internal/adapters"
	"github.com/nice-copacabana/meteor-shower/internal/casestore"
	"github.com/nice-copacabana/meteor-shower/internal/comparison"
	"github.com/nice-copacabana/meteor-shower/internal/evaluation"
	"github.com/nice-copacabana/meteor-shower/internal/execution"
	"github.com/nice-copacabana/meteor-shower/internal/history"
	"github.com/nice-copacabana/meteor-shower/internal/models"
)

var (
	runTools          []string
	runModel          string
	runCaseFilters    []string
	runTimeout        time.Duration
	runMaxConcurrency int
	runHistoryDir     string
	runNoHistory      bool
	runOutputPath     string
	runDryRun         bool
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <cases-dir>",
		Short: "Run capability cases against one or more tools",
		Long: `Run every case in a directory against the given tools, score the
outputs, and rank the tools per case.

Each --tool value is either a bare name (the adapter shells out to a command
of the same name) or "name=command", e.g. --tool copilot=gh-copilot. The
prompt is written to the command's stdin; stdout becomes the tool's output.`,
		Args: cobra.ExactArgs(1),
		RunE: runCommandE,
	}

	cmd.Flags().StringArrayVar(&runTools, "tool", nil, "Tool to evaluate, name or name=command (can be repeated)")
	cmd.Flags().StringVar(&runModel, "model", "", "Model identifier recorded with each execution")
	cmd.Flags().StringArrayVar(&runCaseFilters, "case", nil, "Run only the named case ids (can be repeated)")
	cmd.Flags().DurationVar(&runTimeout, "timeout", 0, "Per-execution timeout (default 300s)")
	cmd.Flags().IntVar(&runMaxConcurrency, "max-concurrency", 0, "Maximum in-flight executions (default 3)")
	cmd.Flags().StringVar(&runHistoryDir, "history-dir", ".meteor-history", "Directory for execution history")
	cmd.Flags().BoolVar(&runNoHistory, "no-history", false, "Do not persist executions to history")
	cmd.Flags().StringVarP(&runOutputPath, "output", "o", "", "Write the comparison reports as Markdown to this file")
	cmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Use built-in stub adapters instead of real commands")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	if len(runTools) == 0 {
		return fmt.Errorf("at least one --tool is required")
	}

	store := casestore.NewStore()
	loaded, err := store.LoadDir(args[0])
	if err != nil {
		return fmt.Errorf("loading cases: %w", err)
	}
	if loaded == 0 {
		return fmt.Errorf("no cases found in %s", args[0])
	}

	caseIDs, err := selectCaseIDs(store, runCaseFilters)
	if err != nil {
		return err
	}

	registry := adapters.NewRegistry()
	toolNames, err := registerTools(registry, runTools, runDryRun)
	if err != nil {
		return err
	}

	engineOpts := []execution.Option{}
	if runTimeout > 0 {
		engineOpts = append(engineOpts, execution.WithDefaultTimeout(runTimeout))
	}
	if runMaxConcurrency > 0 {
		engineOpts = append(engineOpts, execution.WithMaxConcurrency(runMaxConcurrency))
	}
	engine := execution.NewEngine(store, registry, engineOpts...)

	for _, tool := range toolNames {
		if !engine.IsToolAvailable(tool) {
			return fmt.Errorf("tool %q is not available on this system", tool)
		}
	}

	historyDir := runHistoryDir
	if runNoHistory {
		historyDir = ""
	}
	historyStore := history.New(historyDir)

	fmt.Printf("Running %d case(s) against %s\n\n", len(caseIDs), strings.Join(toolNames, ", "))

	result := engine.BatchExecute(context.Background(), caseIDs, toolNames, nil)

	evaluator := evaluation.NewEvaluator()
	analyzer := comparison.NewAnalyzer(historyStore, store)

	byCase := make(map[string][]*models.Execution)
	failedVerdicts := 0

	for _, exec := range result.Executions {
		c, err := store.GetCase(exec.CaseID)
		if err != nil {
			return err
		}
		if err := evaluator.EvaluateResult(c, exec); err != nil {
			return fmt.Errorf("scoring %s/%s: %w", exec.CaseID, exec.Tool, err)
		}
		exec.Model = runModel

		analysis := evaluator.AnalyzeResult(c, exec)
		printAnalysis(c, exec, analysis)
		if !analysis.Passed {
			failedVerdicts++
		}

		if err := historyStore.Put(exec); err != nil {
			return fmt.Errorf("recording history: %w", err)
		}
		byCase[exec.CaseID] = append(byCase[exec.CaseID], exec)
	}

	for _, failure := range result.Failures {
		printFailure(failure)
	}

	var markdown strings.Builder
	for _, caseID := range caseIDs {
		executions := byCase[caseID]
		if len(executions) < 2 {
			continue // nothing to compare
		}
		c, err := store.GetCase(caseID)
		if err != nil {
			return err
		}
		report, err := analyzer.GenerateReport(c, executions)
		if err != nil {
			return err
		}
		printReport(report)
		if runOutputPath != "" {
			markdown.WriteString(comparison.ExportMarkdown(report))
			markdown.WriteString("\n")
		}
	}

	if runOutputPath != "" && markdown.Len() > 0 {
		if err := os.WriteFile(runOutputPath, []byte(markdown.String()), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("\nReports saved to: %s\n", runOutputPath)
	}

	if len(result.Failures) > 0 {
		return fmt.Errorf("%d of %d executions failed to run", len(result.Failures), len(result.Failures)+len(result.Executions))
	}
	if failedVerdicts > 0 {
		return &CaseFailureError{
			Message: fmt.Sprintf("%d execution(s) scored below their pass threshold", failedVerdicts),
		}
	}
	return nil
}

// selectCaseIDs applies --case filters to the loaded library.
func selectCaseIDs(store *casestore.Store, filters []string) ([]string, error) {
	if len(filters) == 0 {
		return store.IDs(), nil
	}
	ids := make([]string, 0, len(filters))
	for _, id := range filters {
		if _, err := store.GetCase(id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// registerTools parses --tool values and installs an adapter per tool.
// A value is "name" or "name=command"; with --dry-run every tool gets a
// stub adapter instead.
func registerTools(registry *adapters.Registry, specs []string, dryRun bool) ([]string, error) {
	names := make([]string, 0, len(specs))
	for _, spec := range specs {
		name := spec
		command := spec
		if i := strings.Index(spec, "="); i >= 0 {
			name = spec[:i]
			command = spec[i+1:]
		}
		if name == "" || command == "" {
			return nil, fmt.Errorf("invalid --tool value %q", spec)
		}

		if dryRun {
			stub := adapters.NewStubAdapter(name, fmt.Sprintf("dry-run output from %s", name))
			registry.Register(stub)
		} else {
			fields := strings.Fields(command)
			params := map[string]any{"command": fields[0]}
			if len(fields) > 1 {
				params["args"] = fields[1:]
			}
			adapter, err := adapters.NewCommandAdapter(name, params)
			if err != nil {
				return nil, err
			}
			registry.Register(adapter)
		}
		names = append(names, name)
	}
	return names, nil
}

// resolveDir keeps error messages consistent when a flag points nowhere.
func resolveDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", err
	}
	return abs, nil
}
