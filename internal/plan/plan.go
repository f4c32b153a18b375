package plan

import (
	"errors"
	"fmt"
	"strings"
)

// ChallengeDays is the length of the challenge, the final day number.
const ChallengeDays = 45

var (
	ErrPlanUnavailable = errors.New("plan unavailable")
	ErrUnknownRoutine  = errors.New("unknown workout routine")
)

type Routine string

const (
	RoutineHome Routine = "Home"
	RoutineGym  Routine = "Gym"
)

func ParseRoutine(s string) (Routine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "home":
		return RoutineHome, nil
	case "gym":
		return RoutineGym, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRoutine, s)
	}
}

// TracksWeight reports whether set slots of the routine carry a weight value.
func (r Routine) TracksWeight() bool {
	return r == RoutineGym
}

// WorkoutRow is a single row of the spreadsheet export, every cell as authored.
type WorkoutRow struct {
	Day          string
	DayTitle     string
	DayFocus     string
	Category     string
	ExerciseName string
	Sets         string
	Reps         string
	Notes        string
}

type ExerciseSpec struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	SetCount int    `json:"setCount"`
	RepSpec  string `json:"repSpec"`
	Notes    string `json:"notes,omitempty"`
}

type NormalizedDay struct {
	DayNumber int            `json:"dayNumber"`
	Title     string         `json:"title"`
	Focus     string         `json:"focus"`
	Exercises []ExerciseSpec `json:"exercises"`
	Notes     []string       `json:"notes,omitempty"`
}

func (d NormalizedDay) IsRest() bool {
	return len(d.Exercises) == 0
}

// Plan is the normalized plan of one routine.
type Plan struct {
	Routine Routine
	Days    []NormalizedDay
}

func NewPlan(routine Routine, rows []WorkoutRow) *Plan {
	return &Plan{
		Routine: routine,
		Days:    Normalize(rows),
	}
}

func (p *Plan) Day(dayNumber int) (NormalizedDay, bool) {
	if p == nil {
		return NormalizedDay{}, false
	}
	for _, d := range p.Days {
		if d.DayNumber == dayNumber {
			return d, true
		}
	}
	return NormalizedDay{}, false
}
