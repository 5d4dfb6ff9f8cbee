package comparison

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/nice-copacabana/meteor-shower/internal/models"
)

// ExportMarkdown renders a comparison report as a Markdown document: a
// ranking table followed by the insights. Pure formatting.
func ExportMarkdown(report *models.ComparisonReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Comparison Report: %s\n\n", report.CaseName)
	fmt.Fprintf(&b, "Case: `%s`  \n", report.CaseID)
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("## Ranking\n\n")
	writeRankingTable(&b, report.Ranking)

	b.WriteString("\n## Insights\n\n")
	fmt.Fprintf(&b, "- **Best tool**: %s\n", report.Insights.BestTool)
	fmt.Fprintf(&b, "- **Average score**: %.1f\n", report.Insights.AverageScore)
	fmt.Fprintf(&b, "- **Score variance**: %.1f\n", report.Insights.ScoreVariance)
	fmt.Fprintf(&b, "- **Consistency**: %s\n", report.Insights.ConsistencyAnalysis)

	if len(report.Insights.DimensionLeaders) > 0 {
		b.WriteString("\n### Dimension leaders\n\n")
		for _, dim := range models.Dimensions {
			if leader, ok := report.Insights.DimensionLeaders[dim]; ok {
				fmt.Fprintf(&b, "- %s: %s\n", dim, leader)
			}
		}
	}

	if len(report.Insights.Recommendations) > 0 {
		b.WriteString("\n### Recommendations\n\n")
		for _, rec := range report.Insights.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}

	return b.String()
}

func writeRankingTable(b *strings.Builder, ranking []models.RankingEntry) {
	headers := []string{"Rank", "Tool", "Overall", "Accuracy", "Completeness", "Creativity", "Efficiency", "Leads in"}

	rows := make([][]string, len(ranking))
	for i, entry := range ranking {
		tool := entry.Tool
		if entry.Model != "" {
			tool = fmt.Sprintf("%s (%s)", entry.Tool, entry.Model)
		}
		rows[i] = []string{
			fmt.Sprintf("%d", entry.Rank),
			tool,
			fmt.Sprintf("%.1f", entry.Scores.Overall),
			fmt.Sprintf("%.0f", entry.Scores.Accuracy),
			fmt.Sprintf("%.0f", entry.Scores.Completeness),
			fmt.Sprintf("%.0f", entry.Scores.Creativity),
			fmt.Sprintf("%.0f", entry.Scores.Efficiency),
			strings.Join(entry.LeadsIn, ", "),
		}
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	writeRow := func(cells []string) {
		b.WriteString("|")
		for i, cell := range cells {
			b.WriteString(" ")
			b.WriteString(padRight(cell, widths[i]))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	writeRow(headers)
	b.WriteString("|")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("|")
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
