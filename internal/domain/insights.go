package domain

// StatsSummary holds aggregate statistics for a window of sleep records.
// It is derived per request and never persisted.
// @Description Aggregate sleep statistics for a date window.
type StatsSummary struct {
	// Mean sleep duration in hours
	AvgHours float64 `json:"avg_hours" example:"7.2"`
	// Mean sleep quality (1-5 scale)
	AvgQuality float64 `json:"avg_quality" example:"3.8"`
	// Max minus min bedtime-of-day across the window, in clock minutes
	ConsistencyRange int `json:"consistency_range" example:"45"`
	// Mean duration on Saturdays and Sundays
	WeekendAvg float64 `json:"weekend_avg" example:"8.1"`
	// Mean duration on weekdays
	WeekdayAvg float64 `json:"weekday_avg" example:"6.9"`
}

// PatternResult carries detected patterns and their paired recommendations.
// Both lists are ordered by rule evaluation order.
// @Description Detected sleep patterns with matching recommendations.
type PatternResult struct {
	Patterns        []string `json:"patterns"`
	Recommendations []string `json:"recommendations"`
}

// ScoreWeights is the fixed weight vector used by the score calculator.
// @Description Weights applied to each score factor.
type ScoreWeights struct {
	Duration    float64 `json:"duration" example:"0.4"`
	Quality     float64 `json:"quality" example:"0.3"`
	Consistency float64 `json:"consistency" example:"0.2"`
	Lifestyle   float64 `json:"lifestyle" example:"0.1"`
}

// ScoreBreakdown exposes the per-factor sub-scores behind a composite score.
// @Description Per-factor sub-scores (each 0-100) and the weights used.
type ScoreBreakdown struct {
	DurationScore    int          `json:"duration_score" example:"80"`
	QualityScore     int          `json:"quality_score" example:"70"`
	ConsistencyScore int          `json:"consistency_score" example:"90"`
	LifestyleScore   int          `json:"lifestyle_score" example:"100"`
	Weights          ScoreWeights `json:"weights"`
}

// SleepScore is the 0-100 composite sleep score with its breakdown.
// @Description Composite sleep score.
type SleepScore struct {
	Score     int            `json:"score" example:"82"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// PrimaryConcern is the coarse category derived from detected pattern text.
type PrimaryConcern string

const (
	ConcernStress    PrimaryConcern = "stress"
	ConcernPoorSleep PrimaryConcern = "poor sleep"
	ConcernRoutine   PrimaryConcern = "routine"
	ConcernInsomnia  PrimaryConcern = "insomnia"
)

// WeeklyInsight is the full output of the weekly insight pipeline.
// @Description Weekly sleep insight: summary, patterns, score and source records.
type WeeklyInsight struct {
	Summary         StatsSummary          `json:"summary"`
	Patterns        []string              `json:"patterns"`
	Recommendations []string              `json:"recommendations"`
	// Derived concern tag, null when no pattern matched a known marker
	PrimaryConcern *PrimaryConcern `json:"primary_concern"`
	Logs            []SleepRecordResponse `json:"logs"`
	SleepScore      int                   `json:"sleep_score" example:"82"`
	ScoreBreakdown  ScoreBreakdown        `json:"score_breakdown"`
}

// WeeklyInsightResponse wraps the weekly insight; Insight is null when the
// window holds no records, which is an empty state rather than an error.
// @Description Weekly insight envelope; insight is null when no data exists.
type WeeklyInsightResponse struct {
	Insight *WeeklyInsight `json:"insight"`
}

// TodayInsightResponse is a one-line message about last night's sleep.
// @Description Short message about the most recent night.
type TodayInsightResponse struct {
	Message string `json:"message" example:"Nice! You slept fairly well. Keep maintaining this routine."`
}

// TrendPoint is one day in a duration/quality trend series. Duration and
// Quality are null for days without a record.
// @Description One day of trend data; nulls mark missing days.
type TrendPoint struct {
	Date     string   `json:"date" example:"2024-01-15"`
	Duration *float64 `json:"duration" example:"7.5"`
	Quality  *int     `json:"quality" example:"4"`
}

// TrendResponse is the per-day duration/quality series for a range.
// @Description Trend series over a week or month.
type TrendResponse struct {
	Series []TrendPoint `json:"series"`
}

// ScorePoint is one day in a score trend series.
// @Description One day of score data.
type ScorePoint struct {
	Date      string         `json:"date" example:"2024-01-15"`
	Score     int            `json:"score" example:"82"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// ScoreSeriesResponse is the per-day score series for a range.
// @Description Score trend series.
type ScoreSeriesResponse struct {
	Series []ScorePoint `json:"series"`
}
