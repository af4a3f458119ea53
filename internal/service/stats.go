package service

import (
	"time"

	"github.com/dimlight/dimlight-api/internal/domain"
)

// CalculateStats reduces a window of sleep records into summary statistics.
// An empty window yields all-zero fields, never NaN.
func CalculateStats(records []domain.SleepRecord) domain.StatsSummary {
	if len(records) == 0 {
		return domain.StatsSummary{}
	}

	var durationSum, qualitySum float64
	for _, r := range records {
		durationSum += r.DurationHours
		qualitySum += float64(r.SleepQuality)
	}

	// Bedtime consistency is max minus min of clock minutes after local
	// midnight. The range is not circular: bedtimes straddling midnight
	// (e.g. {23:50, 00:10}) read as ~1430 minutes, not 20.
	minBed := records[0].BedtimeMinutes()
	maxBed := minBed
	for _, r := range records[1:] {
		m := r.BedtimeMinutes()
		if m < minBed {
			minBed = m
		}
		if m > maxBed {
			maxBed = m
		}
	}

	var weekendSum, weekdaySum float64
	var weekendCount, weekdayCount int
	for _, r := range records {
		if isWeekend(r.DateKey) {
			weekendSum += r.DurationHours
			weekendCount++
		} else {
			weekdaySum += r.DurationHours
			weekdayCount++
		}
	}

	summary := domain.StatsSummary{
		AvgHours:         durationSum / float64(len(records)),
		AvgQuality:       qualitySum / float64(len(records)),
		ConsistencyRange: maxBed - minBed,
	}
	if weekendCount > 0 {
		summary.WeekendAvg = weekendSum / float64(weekendCount)
	}
	if weekdayCount > 0 {
		summary.WeekdayAvg = weekdaySum / float64(weekdayCount)
	}

	return summary
}

// isWeekend reports whether a date key falls on Saturday or Sunday.
func isWeekend(dateKey string) bool {
	t, err := time.Parse("2006-01-02", dateKey)
	if err != nil {
		return false
	}
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
