package models

import "time"

// ComparisonReport ranks the executions of a single case across tools. It is
// derived and never persisted.
type ComparisonReport struct {
	CaseID      string         `json:"case_id"`
	CaseName    string         `json:"case_name"`
	GeneratedAt time.Time      `json:"generated_at"`
	Ranking     []RankingEntry `json:"ranking"`
	Insights    ReportInsights `json:"insights"`
}

// RankingEntry is one tool's position in a comparison report.
type RankingEntry struct {
	Rank        int    `json:"rank"`
	ExecutionID string `json:"execution_id"`
	Tool        string `json:"tool"`
	Model       string `json:"model,omitempty"`
	Scores      Scores `json:"scores"`
	// LeadsIn lists dimensions where this execution's score equals the
	// maximum across all compared executions; TrailsIn the minimum.
	LeadsIn  []string `json:"leads_in,omitempty"`
	TrailsIn []string `json:"trails_in,omitempty"`
}

// ReportInsights holds aggregate observations for a comparison report.
type ReportInsights struct {
	BestTool            string            `json:"best_tool"`
	AverageScore        float64           `json:"average_score"`
	ScoreVariance       float64           `json:"score_variance"`
	DimensionLeaders    map[string]string `json:"dimension_leaders"`
	ConsistencyAnalysis string            `json:"consistency_analysis"`
	Recommendations     []string          `json:"recommendations"`
}

// ResultAnalysis is the qualitative read of one scored execution.
type ResultAnalysis struct {
	ExecutionID string   `json:"execution_id"`
	Passed      bool     `json:"passed"`
	Threshold   float64  `json:"threshold"`
	Strengths   []string `json:"strengths,omitempty"`
	Weaknesses  []string `json:"weaknesses,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// PerformanceHistory aggregates a tool's historical executions.
type PerformanceHistory struct {
	Tool         string       `json:"tool"`
	Category     string       `json:"category,omitempty"`
	SampleCount  int          `json:"sample_count"`
	AverageScore float64      `json:"average_score"`
	// PassRate is the fraction of executions with overall >= 60.
	PassRate     float64      `json:"pass_rate"`
	Distribution []ScoreBand  `json:"distribution"`
	Trend        []TrendPoint `json:"trend"`
}

// ScoreBand is one bucket of a five-bucket score distribution.
type ScoreBand struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TrendPoint is a day-bucketed average score.
type TrendPoint struct {
	Day          string  `json:"day"`
	AverageScore float64 `json:"average_score"`
	Count        int     `json:"count"`
}
