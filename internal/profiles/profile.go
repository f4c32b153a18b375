package profiles

import (
	"errors"
	"math"
	"time"

	"github.com/2beens/challenge45/internal/plan"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound       = errors.New("profile not found")
	ErrEmailTaken            = errors.New("email already registered")
	ErrAlreadyCompletedToday = errors.New("day already completed today")
	ErrStreakAtMax           = errors.New("streak already at the final day")
)

// MinWeightKg is the lowest weight accepted as a real measurement.
const MinWeightKg = 30.0

type Profile struct {
	ID               uuid.UUID    `json:"id"`
	Email            string       `json:"email"`
	Name             string       `json:"name"`
	PasswordHash     string       `json:"-"`
	CurrentStreak    int          `json:"currentStreak"`
	LastCompletedDay *time.Time   `json:"lastCompletedDay"`
	Routine          plan.Routine `json:"routine"`
	Timezone         string       `json:"timezone"`
	Age              *int         `json:"age"`
	HeightCm         *float64     `json:"heightCm"`
	CurrentWeight    *float64     `json:"currentWeight"`
	LastWeightUpdate *time.Time   `json:"lastWeightUpdate"`
	CreatedAt        time.Time    `json:"createdAt"`
}

// DisplayName falls back to a generic name when none was given at signup.
func (p *Profile) DisplayName() string {
	if p.Name == "" {
		return "User"
	}
	return p.Name
}

// BMI is weight / height(m)^2 rounded to one decimal, nil when either is unknown.
func (p *Profile) BMI() *float64 {
	if p.HeightCm == nil || p.CurrentWeight == nil || *p.HeightCm <= 0 {
		return nil
	}
	heightM := *p.HeightCm / 100
	bmi := math.Round(*p.CurrentWeight/(heightM*heightM)*10) / 10
	return &bmi
}

func (p *Profile) ChallengeCompleted() bool {
	return p.CurrentStreak >= plan.ChallengeDays
}

// Location is the stored IANA zone of the user, UTC when unset or invalid.
func (p *Profile) Location() *time.Location {
	if p.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type NewProfile struct {
	Email        string
	Name         string
	PasswordHash string
	Routine      plan.Routine
	Timezone     string
	Age          *int
	HeightCm     *float64
	Weight       *float64
}

// SetRecord is the submitted state of one set slot, kept in the daily progress log.
type SetRecord struct {
	Exercise  string `json:"exercise"`
	Set       int    `json:"set"`
	Reps      string `json:"reps,omitempty"`
	Weight    string `json:"weight,omitempty"`
	Completed bool   `json:"completed"`
}

type DailyProgress struct {
	UserID      uuid.UUID   `json:"userId"`
	WorkoutDate time.Time   `json:"workoutDate"`
	DayNumber   int         `json:"dayNumber"`
	IsCompleted bool        `json:"isCompleted"`
	Sets        []SetRecord `json:"sets"`
}

type WeightEntry struct {
	Weight     float64   `json:"weight"`
	RecordedAt time.Time `json:"recordedAt"`
}
