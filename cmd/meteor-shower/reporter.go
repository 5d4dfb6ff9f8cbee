package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/nice-copacabana/meteor-shower/internal/execution"
	"github.com/nice-copacabana/meteor-shower/internal/models"
)

var (
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
	bold   = color.New(color.Bold)
)

// printAnalysis renders one scored execution with its verdict.
func printAnalysis(c *models.Case, exec *models.Execution, analysis *models.ResultAnalysis) {
	verdict := green.Sprint("PASS")
	if !analysis.Passed {
		verdict = red.Sprint("FAIL")
	}

	fmt.Printf("%s %s %s  overall=%.1f (threshold %.0f, %s)\n",
		verdict,
		bold.Sprint(c.Name),
		cyan.Sprintf("[%s]", exec.Tool),
		exec.Scores.Overall,
		analysis.Threshold,
		c.Difficulty,
	)
	fmt.Printf("     accuracy=%.0f completeness=%.0f creativity=%.0f efficiency=%.0f (%dms)\n",
		exec.Scores.Accuracy,
		exec.Scores.Completeness,
		exec.Scores.Creativity,
		exec.Scores.Efficiency,
		exec.DurationMs,
	)

	for _, s := range analysis.Strengths {
		fmt.Printf("     %s %s\n", green.Sprint("+"), s)
	}
	for _, w := range analysis.Weaknesses {
		fmt.Printf("     %s %s\n", red.Sprint("-"), w)
	}
	for _, s := range analysis.Suggestions {
		fmt.Printf("     %s %s\n", yellow.Sprint("→"), s)
	}
	fmt.Println()
}

// printFailure renders one batch task that never produced output.
func printFailure(failure execution.BatchFailure) {
	fmt.Printf("%s %s %s  %s\n",
		red.Sprint("ERR "),
		bold.Sprint(failure.CaseID),
		cyan.Sprintf("[%s]", failure.Tool),
		failure.Err,
	)
}

// printReport renders a comparison report as a terminal table.
func printReport(report *models.ComparisonReport) {
	fmt.Println(bold.Sprintf("═══ %s ═══", report.CaseName))
	fmt.Println()

	for _, entry := range report.Ranking {
		marker := "  "
		if entry.Rank == 1 {
			marker = green.Sprint("★ ")
		}
		line := fmt.Sprintf("%s%d. %-16s overall=%-6.1f acc=%-4.0f comp=%-4.0f crea=%-4.0f eff=%-4.0f",
			marker, entry.Rank, entry.Tool,
			entry.Scores.Overall, entry.Scores.Accuracy, entry.Scores.Completeness,
			entry.Scores.Creativity, entry.Scores.Efficiency)
		if len(entry.LeadsIn) > 0 {
			line += cyan.Sprintf("  leads: %s", strings.Join(entry.LeadsIn, ", "))
		}
		fmt.Println(line)
	}

	fmt.Println()
	fmt.Printf("Best tool: %s  avg=%.1f  variance=%.1f\n",
		bold.Sprint(report.Insights.BestTool),
		report.Insights.AverageScore,
		report.Insights.ScoreVariance,
	)
	fmt.Println(report.Insights.ConsistencyAnalysis)
	for _, rec := range report.Insights.Recommendations {
		fmt.Printf("  %s %s\n", yellow.Sprint("→"), rec)
	}
	fmt.Println()
}

// printHistory renders a tool's aggregated performance.
func printHistory(perf *models.PerformanceHistory) {
	title := perf.Tool
	if perf.Category != "" {
		title = fmt.Sprintf("%s (%s)", perf.Tool, perf.Category)
	}
	fmt.Println(bold.Sprintf("═══ %s ═══", title))
	fmt.Println()

	if perf.SampleCount == 0 {
		fmt.Println("No recorded executions.")
		return
	}

	fmt.Printf("Executions: %d\n", perf.SampleCount)
	fmt.Printf("Average:    %.1f\n", perf.AverageScore)
	fmt.Printf("Pass rate:  %.1f%%\n", perf.PassRate*100)
	fmt.Println()

	fmt.Println("Score distribution:")
	for _, band := range perf.Distribution {
		fmt.Printf("  %-7s %s %d\n", band.Label, strings.Repeat("█", band.Count), band.Count)
	}

	if len(perf.Trend) > 0 {
		fmt.Println()
		fmt.Println("Trend:")
		for _, point := range perf.Trend {
			fmt.Printf("  %s  avg=%.1f  (%d execution(s))\n", point.Day, point.AverageScore, point.Count)
		}
	}
}
