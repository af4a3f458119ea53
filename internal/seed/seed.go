package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const seededDays = 40

var moods = []string{"😊", "🙂", "😐", "😞"}

// Run seeds the database with sample users, sleep records and the technique
// catalog. Safe to call multiple times.
func Run(db *gorm.DB) error {
	users := []domain.User{
		{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Timezone: "Europe/Amsterdam"},
		{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Timezone: "America/New_York"},
		{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Timezone: "Asia/Tokyo"},
		{ID: uuid.MustParse("44444444-4444-4444-4444-444444444444"), Timezone: "Australia/Sydney"},
	}

	for _, user := range users {
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, user := range users {
		if err := seedSleepRecordsForUser(db, user, rng); err != nil {
			return err
		}
	}

	if err := seedTechniques(db); err != nil {
		return err
	}

	log.Println("Seed completed")
	return nil
}

func seedSleepRecordsForUser(db *gorm.DB, user domain.User, rng *rand.Rand) error {
	now := time.Now().UTC()
	for i := 0; i < seededDays; i++ {
		date := now.AddDate(0, 0, -i)
		bedTime := time.Date(date.Year(), date.Month(), date.Day(), 22+rng.Intn(2), rng.Intn(60), 0, 0, time.UTC)
		wakeTime := bedTime.Add(time.Duration(6+rng.Intn(3)) * time.Hour)

		stress := 1 + rng.Intn(5)
		record := domain.SleepRecord{
			UserID:         user.ID,
			BedTime:        bedTime,
			WakeTime:       wakeTime,
			SleepQuality:   1 + rng.Intn(5),
			StressLevel:    &stress,
			CaffeineIntake: rng.Float32() < 0.4,
			Mood:           moods[rng.Intn(len(moods))],
			Timezone:       "UTC",
			Source:         domain.SourceManual,
		}
		record.RecomputeDerived()

		err := db.Where("user_id = ? AND date_key = ?", user.ID, record.DateKey).
			FirstOrCreate(&record).Error
		if err != nil {
			return fmt.Errorf("failed to create sleep record: %w", err)
		}
	}
	return nil
}

func seedTechniques(db *gorm.DB) error {
	techniques := []domain.Technique{
		{
			Title:           "4-7-8 Breathing",
			Type:            domain.TechniqueBreathing,
			DurationMinutes: 4,
			Steps: []string{
				"Inhale through nose for 4 seconds",
				"Hold breath for 7 seconds",
				"Exhale slowly through mouth for 8 seconds",
				"Repeat 4 times",
			},
			Benefits:       []string{"Reduces stress", "Improves sleep quality"},
			RecommendedFor: []string{"stress", "anxiety", "poor sleep"},
		},
		{
			Title:           "Body Scan Relaxation",
			Type:            domain.TechniqueMeditation,
			DurationMinutes: 6,
			Steps: []string{
				"Lie down comfortably",
				"Focus on your toes and relax them",
				"Slowly move your attention upward through your body",
				"Breathe slowly and release tension",
			},
			Benefits:       []string{"Relieves tension", "Improves mindfulness"},
			RecommendedFor: []string{"stress", "insomnia"},
		},
		{
			Title:           "Neck & Shoulder Stretch",
			Type:            domain.TechniqueStretching,
			DurationMinutes: 5,
			Steps: []string{
				"Roll your shoulders slowly",
				"Tilt your neck side to side",
				"Hold each stretch for 10 seconds",
			},
			Benefits:       []string{"Relieves stiffness", "Improves circulation"},
			RecommendedFor: []string{"fatigue", "screen strain"},
		},
		{
			Title:           "5-Minute Mindful Breathing",
			Type:            domain.TechniqueMindfulness,
			DurationMinutes: 5,
			Steps: []string{
				"Sit quietly",
				"Focus only on your breath",
				"If the mind wanders, gently bring it back",
			},
			Benefits:       []string{"Calms the mind", "Improves focus"},
			RecommendedFor: []string{"anxiety", "restlessness"},
		},
	}

	for _, technique := range techniques {
		err := db.Where("title = ?", technique.Title).FirstOrCreate(&technique).Error
		if err != nil {
			return fmt.Errorf("failed to create technique %q: %w", technique.Title, err)
		}
	}
	return nil
}
