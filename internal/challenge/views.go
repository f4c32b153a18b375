package challenge

import (
	"time"

	"github.com/2beens/challenge45/internal/plan"
	"github.com/2beens/challenge45/internal/profiles"

	"github.com/google/uuid"
)

type Dashboard struct {
	Name           string          `json:"name"`
	Streak         int             `json:"streak"`
	DayLabel       string          `json:"dayLabel"`
	CompletedToday bool            `json:"completedToday"`
	Completable    bool            `json:"completable"`
	Today          *plan.TodayView `json:"today"`
}

// SetState is the submitted tracking state of one set slot.
// Exercise and Set are zero based indexes into today's view.
type SetState struct {
	Exercise  int    `json:"exercise"`
	Set       int    `json:"set"`
	Completed bool   `json:"completed"`
	Weight    string `json:"weight,omitempty"`
}

type CompleteRequest struct {
	Sets []SetState `json:"sets"`
}

type CompleteResult struct {
	CompletedDay      int  `json:"completedDay"`
	Streak            int  `json:"streak"`
	ChallengeFinished bool `json:"challengeFinished"`
}

type ProfileView struct {
	ID                  uuid.UUID    `json:"id"`
	Email               string       `json:"email"`
	Name                string       `json:"name"`
	Routine             plan.Routine `json:"routine"`
	Timezone            string       `json:"timezone"`
	Age                 *int         `json:"age"`
	HeightCm            *float64     `json:"heightCm"`
	CurrentWeight       *float64     `json:"currentWeight"`
	LastWeightUpdate    *time.Time   `json:"lastWeightUpdate"`
	BMI                 *float64     `json:"bmi"`
	CurrentStreak       int          `json:"currentStreak"`
	LastCompletedDay    *time.Time   `json:"lastCompletedDay"`
	CertificateUnlocked bool         `json:"certificateUnlocked"`
}

func newProfileView(p *profiles.Profile) *ProfileView {
	return &ProfileView{
		ID:                  p.ID,
		Email:               p.Email,
		Name:                p.DisplayName(),
		Routine:             p.Routine,
		Timezone:            p.Timezone,
		Age:                 p.Age,
		HeightCm:            p.HeightCm,
		CurrentWeight:       p.CurrentWeight,
		LastWeightUpdate:    p.LastWeightUpdate,
		BMI:                 p.BMI(),
		CurrentStreak:       p.CurrentStreak,
		LastCompletedDay:    p.LastCompletedDay,
		CertificateUnlocked: p.ChallengeCompleted(),
	}
}
