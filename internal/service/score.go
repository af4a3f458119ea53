package service

import (
	"math"

	"github.com/dimlight/dimlight-api/internal/domain"
)

// scoreWeights is the fixed factor weighting used by the composite score.
var scoreWeights = domain.ScoreWeights{
	Duration:    0.4,
	Quality:     0.3,
	Consistency: 0.2,
	Lifestyle:   0.1,
}

// normalize linearly maps v into [0,1], clamping outside [min,max].
func normalize(v, min, max float64) float64 {
	if v <= min {
		return 0
	}
	if v >= max {
		return 1
	}
	return (v - min) / (max - min)
}

// CalculateSleepScore combines summary statistics and the most recent record
// into a 0-100 composite score with a per-factor breakdown. The latest record
// supplies the lifestyle penalties and may be nil.
func CalculateSleepScore(summary domain.StatsSummary, latest *domain.SleepRecord) domain.SleepScore {
	// Duration: target 7-9h, floor at 4h
	durationScore := normalize(summary.AvgHours, 4, 9) * 100

	// Quality: 1-5 scale
	qualityScore := normalize(summary.AvgQuality, 1, 5) * 100

	// Consistency: lower variation scores higher
	consistencyScore := (1 - normalize(float64(summary.ConsistencyRange), 0, 150)) * 100

	// Lifestyle penalties from the latest record (stress, caffeine)
	lifestyleScore := 100.0
	if latest != nil {
		if latest.StressLevel != nil && *latest.StressLevel >= 4 {
			lifestyleScore -= 10
		}
		if latest.CaffeineIntake {
			lifestyleScore -= 8
		}
	}

	rawScore := durationScore*scoreWeights.Duration +
		qualityScore*scoreWeights.Quality +
		consistencyScore*scoreWeights.Consistency +
		lifestyleScore*scoreWeights.Lifestyle

	final := int(math.Round(math.Min(100, math.Max(0, rawScore))))

	return domain.SleepScore{
		Score: final,
		Breakdown: domain.ScoreBreakdown{
			DurationScore:    int(math.Round(durationScore)),
			QualityScore:     int(math.Round(qualityScore)),
			ConsistencyScore: int(math.Round(consistencyScore)),
			LifestyleScore:   int(math.Round(lifestyleScore)),
			Weights:          scoreWeights,
		},
	}
}
