package plan

import (
	"errors"
)

var (
	ErrSlotNotFound     = errors.New("set slot not found")
	ErrWeightNotTracked = errors.New("weight is not tracked for this routine")
)

type ViewKind string

const (
	KindWorkout  ViewKind = "workout"
	KindRest     ViewKind = "rest"
	KindComplete ViewKind = "complete"
)

type SetSlot struct {
	Number    int    `json:"number"`
	Reps      string `json:"reps"`
	Weight    string `json:"weight,omitempty"`
	Completed bool   `json:"completed"`
}

type ExerciseView struct {
	Name     string    `json:"name"`
	Category string    `json:"category,omitempty"`
	RepSpec  string    `json:"repSpec"`
	Notes    string    `json:"notes,omitempty"`
	Sets     []SetSlot `json:"sets"`
}

// TodayView is what a user has to do today, along with the in-memory
// tracking state of every set.
type TodayView struct {
	Kind          ViewKind       `json:"kind"`
	DayNumber     int            `json:"dayNumber"`
	TotalDays     int            `json:"totalDays"`
	Routine       Routine        `json:"routine"`
	Title         string         `json:"title,omitempty"`
	Focus         string         `json:"focus,omitempty"`
	Notes         []string       `json:"notes,omitempty"`
	WeightTracked bool           `json:"weightTracked"`
	Exercises     []ExerciseView `json:"exercises"`
}

// ResolveToday resolves the view for day streak+1 of the plan.
// Past the final day, or when the plan has no such day, the challenge is complete.
func ResolveToday(plan *Plan, streak int) *TodayView {
	if streak < 0 {
		streak = 0
	}
	dayNumber := streak + 1

	view := &TodayView{
		DayNumber: dayNumber,
		TotalDays: ChallengeDays,
		Exercises: []ExerciseView{},
	}
	if plan != nil {
		view.Routine = plan.Routine
	}

	day, found := plan.Day(dayNumber)
	if dayNumber > ChallengeDays || !found {
		view.Kind = KindComplete
		return view
	}

	view.Title = day.Title
	view.Focus = day.Focus
	if len(day.Notes) > 0 {
		view.Notes = append([]string(nil), day.Notes...)
	}

	if day.IsRest() {
		view.Kind = KindRest
		return view
	}

	view.Kind = KindWorkout
	view.WeightTracked = plan.Routine.TracksWeight()
	for _, ex := range day.Exercises {
		slots := make([]SetSlot, ex.SetCount)
		for i := range slots {
			slots[i] = SetSlot{
				Number: i + 1,
				Reps:   ex.RepSpec,
			}
		}
		view.Exercises = append(view.Exercises, ExerciseView{
			Name:     ex.Name,
			Category: ex.Category,
			RepSpec:  ex.RepSpec,
			Notes:    ex.Notes,
			Sets:     slots,
		})
	}

	return view
}

func (v *TodayView) slot(exercise, set int) (*SetSlot, error) {
	if v.Kind != KindWorkout || exercise < 0 || exercise >= len(v.Exercises) {
		return nil, ErrSlotNotFound
	}
	sets := v.Exercises[exercise].Sets
	if set < 0 || set >= len(sets) {
		return nil, ErrSlotNotFound
	}
	return &sets[set], nil
}

// MarkSet flags a set slot, exercise and set are zero based indexes.
func (v *TodayView) MarkSet(exercise, set int, completed bool) error {
	s, err := v.slot(exercise, set)
	if err != nil {
		return err
	}
	s.Completed = completed
	return nil
}

func (v *TodayView) SetWeight(exercise, set int, weight string) error {
	if !v.WeightTracked {
		return ErrWeightNotTracked
	}
	s, err := v.slot(exercise, set)
	if err != nil {
		return err
	}
	s.Weight = weight
	return nil
}

// IsCompletable reports whether today can be marked as done:
// a rest day always is, a workout day once every set is completed.
func (v *TodayView) IsCompletable() bool {
	switch v.Kind {
	case KindRest:
		return true
	case KindWorkout:
		for _, ex := range v.Exercises {
			for _, s := range ex.Sets {
				if !s.Completed {
					return false
				}
			}
		}
		return len(v.Exercises) > 0
	default:
		return false
	}
}

func (v *TodayView) SetsTotal() int {
	total := 0
	for _, ex := range v.Exercises {
		total += len(ex.Sets)
	}
	return total
}
