// Package comparison turns a set of scored executions for one case into a
// ranked report with aggregate insights, aggregates per-tool performance
// history, and renders reports as Markdown.
package comparison

import (
	"fmt"
	"sort"
	"time"

	"github.com/nice-copacabana/meteor-shower/internal/metrics"
	"github.com/nice-copacabana/meteor-shower/internal/models"
)

// ErrNoExecutions reports a report request over an empty execution set.
var ErrNoExecutions = fmt.Errorf("no executions to compare")

// passingScore is the overall score at or above which a historical
// execution counts as a pass.
const passingScore = 60

// HistoryLister supplies the stored executions for a tool.
type HistoryLister interface {
	List(tool string) ([]*models.Execution, error)
}

// CaseLookup resolves case ids, used to filter history by category.
type CaseLookup interface {
	GetCase(id string) (*models.Case, error)
}

// Analyzer builds comparison reports and performance histories.
type Analyzer struct {
	history HistoryLister
	cases   CaseLookup
}

// NewAnalyzer creates an analyzer. history may be nil when only
// GenerateReport is needed; cases may be nil when category filtering is not.
func NewAnalyzer(history HistoryLister, cases CaseLookup) *Analyzer {
	return &Analyzer{history: history, cases: cases}
}

// GenerateReport ranks the executions of one case by overall score and
// derives aggregate insights. Ties keep their input order.
func (a *Analyzer) GenerateReport(c *models.Case, executions []*models.Execution) (*models.ComparisonReport, error) {
	if len(executions) == 0 {
		return nil, ErrNoExecutions
	}

	ranked := make([]*models.Execution, len(executions))
	copy(ranked, executions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Scores.Overall > ranked[j].Scores.Overall
	})

	report := &models.ComparisonReport{
		CaseID:      c.ID,
		CaseName:    c.Name,
		GeneratedAt: time.Now(),
		Ranking:     make([]models.RankingEntry, len(ranked)),
	}

	maxByDim, minByDim := dimensionExtremes(ranked)

	for i, exec := range ranked {
		entry := models.RankingEntry{
			Rank:        i + 1,
			ExecutionID: exec.ID,
			Tool:        exec.Tool,
			Model:       exec.Model,
			Scores:      exec.Scores,
		}
		for _, dim := range models.Dimensions {
			score := exec.Scores.Dimension(dim)
			if score == maxByDim[dim] {
				entry.LeadsIn = append(entry.LeadsIn, dim)
			}
			if score == minByDim[dim] {
				entry.TrailsIn = append(entry.TrailsIn, dim)
			}
		}
		report.Ranking[i] = entry
	}

	report.Insights = a.buildInsights(ranked)
	return report, nil
}

func dimensionExtremes(executions []*models.Execution) (maxByDim, minByDim map[string]float64) {
	maxByDim = make(map[string]float64, len(models.Dimensions))
	minByDim = make(map[string]float64, len(models.Dimensions))
	for _, dim := range models.Dimensions {
		for i, exec := range executions {
			score := exec.Scores.Dimension(dim)
			if i == 0 || score > maxByDim[dim] {
				maxByDim[dim] = score
			}
			if i == 0 || score < minByDim[dim] {
				minByDim[dim] = score
			}
		}
	}
	return maxByDim, minByDim
}

func (a *Analyzer) buildInsights(ranked []*models.Execution) models.ReportInsights {
	overalls := make([]float64, len(ranked))
	for i, exec := range ranked {
		overalls[i] = exec.Scores.Overall
	}

	insights := models.ReportInsights{
		BestTool:         ranked[0].Tool,
		AverageScore:     metrics.Mean(overalls),
		ScoreVariance:    metrics.Variance(overalls),
		DimensionLeaders: make(map[string]string, len(models.Dimensions)),
	}

	for _, dim := range models.Dimensions {
		leader := ranked[0]
		for _, exec := range ranked[1:] {
			if exec.Scores.Dimension(dim) > leader.Scores.Dimension(dim) {
				leader = exec
			}
		}
		insights.DimensionLeaders[dim] = leader.Tool
	}

	insights.ConsistencyAnalysis = consistencyLabel(insights.ScoreVariance)
	insights.Recommendations = generateRecommendations(insights)
	return insights
}

// consistencyLabel buckets the overall-score variance into a qualitative
// judgement.
func consistencyLabel(variance float64) string {
	switch {
	case variance < 50:
		return "Tools performed very close to each other on this case."
	case variance <= 200:
		return "There is some difference between the tools on this case."
	default:
		return "There is a marked difference between the tools on this case."
	}
}

// generateRecommendations combines the best overall tool with any dimension
// where a different tool leads.
func generateRecommendations(insights models.ReportInsights) []string {
	recs := []string{
		fmt.Sprintf("Use %s for the best overall result on this case.", insights.BestTool),
	}
	for _, dim := range models.Dimensions {
		leader := insights.DimensionLeaders[dim]
		if leader != "" && leader != insights.BestTool {
			recs = append(recs, fmt.Sprintf("Consider %s when %s matters most.", leader, dim))
		}
	}
	return recs
}

// ToolPerformanceHistory aggregates a tool's stored executions into average
// score, pass rate, a five-bucket distribution, and a daily trend. An empty
// category keeps everything; limit > 0 keeps only the most recent
// executions.
func (a *Analyzer) ToolPerformanceHistory(tool, category string, limit int) (*models.PerformanceHistory, error) {
	if a.history == nil {
		return nil, fmt.Errorf("no history store configured")
	}

	executions, err := a.history.List(tool)
	if err != nil {
		return nil, err
	}

	if category != "" {
		if a.cases == nil {
			return nil, fmt.Errorf("category filtering requires a case store")
		}
		filtered := executions[:0]
		for _, exec := range executions {
			c, err := a.cases.GetCase(exec.CaseID)
			if err != nil {
				continue // case no longer in the library
			}
			if c.Category == category {
				filtered = append(filtered, exec)
			}
		}
		executions = filtered
	}

	if limit > 0 && len(executions) > limit {
		executions = executions[len(executions)-limit:]
	}

	perf := &models.PerformanceHistory{
		Tool:        tool,
		Category:    category,
		SampleCount: len(executions),
	}
	if len(executions) == 0 {
		return perf, nil
	}

	overalls := make([]float64, len(executions))
	passed := 0
	for i, exec := range executions {
		overalls[i] = exec.Scores.Overall
		if exec.Scores.Overall >= passingScore {
			passed++
		}
	}

	perf.AverageScore = metrics.Mean(overalls)
	perf.PassRate = float64(passed) / float64(len(executions))
	perf.Distribution = scoreDistribution(overalls)
	perf.Trend = dailyTrend(executions)
	return perf, nil
}

// scoreDistribution buckets overall scores into five fixed bands.
func scoreDistribution(overalls []float64) []models.ScoreBand {
	bands := []models.ScoreBand{
		{Label: "0-19"}, {Label: "20-39"}, {Label: "40-59"}, {Label: "60-79"}, {Label: "80-100"},
	}
	for _, score := range overalls {
		idx := int(score) / 20
		if idx > 4 {
			idx = 4
		}
		if idx < 0 {
			idx = 0
		}
		bands[idx].Count++
	}
	return bands
}

// dailyTrend buckets executions by UTC day and averages each day's overall
// scores, ordered by day.
func dailyTrend(executions []*models.Execution) []models.TrendPoint {
	byDay := make(map[string][]float64)
	for _, exec := range executions {
		day := exec.StartedAt.UTC().Format("2006-01-02")
		byDay[day] = append(byDay[day], exec.Scores.Overall)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	trend := make([]models.TrendPoint, len(days))
	for i, day := range days {
		trend[i] = models.TrendPoint{
			Day:          day,
			AverageScore: metrics.Mean(byDay[day]),
			Count:        len(byDay[day]),
		}
	}
	return trend
}
