package service

import (
	"github.com/dimlight/dimlight-api/internal/domain"
)

// patternRule pairs a predicate with the pattern and recommendation it emits.
// Rules are independent: no rule reads another rule's output.
type patternRule struct {
	when           func(records []domain.SleepRecord, summary domain.StatsSummary) bool
	pattern        string
	recommendation string
}

// patternRules is evaluated in order; emission order follows rule order.
var patternRules = []patternRule{
	{
		// Rule 1: low sleep duration
		when: func(_ []domain.SleepRecord, s domain.StatsSummary) bool {
			return s.AvgHours < 6
		},
		pattern:        "You are consistently sleeping less than 6 hours on average.",
		recommendation: "Aim for at least 7 hours of sleep by going to bed earlier or cutting late-night screen time.",
	},
	{
		// Rule 2: bedtime inconsistency (> 1.5 hours)
		when: func(_ []domain.SleepRecord, s domain.StatsSummary) bool {
			return s.ConsistencyRange > 90
		},
		pattern:        "Your bedtime varies by more than 1.5 hours across the week.",
		recommendation: "Try keeping your bedtime within a 30-45 minute window each night for more stable sleep.",
	},
	{
		// Rule 3: low sleep quality
		when: func(_ []domain.SleepRecord, s domain.StatsSummary) bool {
			return s.AvgQuality < 3
		},
		pattern:        "Your sleep quality has been generally low this week.",
		recommendation: "Consider adding a pre-sleep wind-down routine like breathing exercises or avoiding heavy meals late at night.",
	},
	{
		// Rule 4: weekend vs weekday difference
		when: func(_ []domain.SleepRecord, s domain.StatsSummary) bool {
			return s.WeekendAvg-s.WeekdayAvg > 1
		},
		pattern:        "You sleep significantly more on weekends than weekdays.",
		recommendation: "Try to keep your sleep and wake times more consistent across the whole week to avoid 'social jetlag'.",
	},
	{
		// Rule 5: high stress paired with poor quality on 2+ nights
		when: func(records []domain.SleepRecord, _ domain.StatsSummary) bool {
			count := 0
			for _, r := range records {
				if r.StressLevel != nil && *r.StressLevel >= 4 && r.SleepQuality <= 2 {
					count++
				}
			}
			return count >= 2
		},
		pattern:        "High stress levels appear to be linked to poor sleep quality.",
		recommendation: "Try a short relaxation technique (like body-scan or 4-7-8 breathing) before bed on stressful days.",
	},
	{
		// Rule 6: caffeine nights measurably worse than caffeine-free nights
		when: func(records []domain.SleepRecord, _ domain.StatsSummary) bool {
			var caffeineSum, plainSum float64
			var caffeineCount, plainCount int
			for _, r := range records {
				if r.CaffeineIntake {
					caffeineSum += float64(r.SleepQuality)
					caffeineCount++
				} else {
					plainSum += float64(r.SleepQuality)
					plainCount++
				}
			}
			if caffeineCount < 2 || plainCount < 2 {
				return false
			}
			return caffeineSum/float64(caffeineCount) < plainSum/float64(plainCount)
		},
		pattern:        "Caffeine appears to be reducing your sleep quality.",
		recommendation: "Try avoiding caffeine later in the day (e.g., after 5-6 PM) and see if sleep improves.",
	},
	{
		// Rule 7: negative mood on 2+ poor-quality nights
		when: func(records []domain.SleepRecord, _ domain.StatsSummary) bool {
			count := 0
			for _, r := range records {
				if r.SleepQuality <= 2 && isNegativeMood(r.Mood) {
					count++
				}
			}
			return count >= 2
		},
		pattern:        "Poor sleep seems to be affecting your mood on the next day.",
		recommendation: "Improving sleep consistency and quality may help stabilize your mood and energy.",
	},
}

// DetectPatterns applies the fixed rule set over a window of records and its
// summary. Every rule is evaluated; none short-circuits another.
func DetectPatterns(records []domain.SleepRecord, summary domain.StatsSummary) domain.PatternResult {
	result := domain.PatternResult{
		Patterns:        []string{},
		Recommendations: []string{},
	}

	if len(records) == 0 {
		return result
	}

	for _, rule := range patternRules {
		if rule.when(records, summary) {
			result.Patterns = append(result.Patterns, rule.pattern)
			result.Recommendations = append(result.Recommendations, rule.recommendation)
		}
	}

	return result
}

func isNegativeMood(mood string) bool {
	for _, m := range domain.NegativeMoods {
		if mood == m {
			return true
		}
	}
	return false
}
