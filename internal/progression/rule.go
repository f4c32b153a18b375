package progression

import (
	"time"

	"github.com/2beens/challenge45/internal/plan"
	"github.com/2beens/challenge45/pkg"
)

const (
	DefaultReminderHour = 18
	milestoneEvery      = 7
)

// State is the part of a user record the nightly rule looks at.
type State struct {
	Streak           int
	LastCompletedDay *time.Time
	Location         *time.Location
}

type Decision struct {
	Reset     bool
	Milestone bool
}

// Evaluate decides the nightly outcome for one user. Yesterday is the UTC
// date of now minus 24h. Only a last completed day before yesterday (or none)
// is a missed day, a completion already stamped today keeps the streak.
// A finished challenge is never touched. Reset and Milestone are never both set.
func Evaluate(state State, now time.Time) Decision {
	if state.Streak <= 0 || state.Streak >= plan.ChallengeDays {
		return Decision{}
	}

	yesterday := pkg.UTCDate(now.Add(-24 * time.Hour))
	if state.LastCompletedDay == nil || pkg.UTCDate(*state.LastCompletedDay).Before(yesterday) {
		return Decision{Reset: true}
	}

	return Decision{
		Milestone: pkg.SameDate(state.LastCompletedDay, yesterday) && state.Streak%milestoneEvery == 0,
	}
}

// ShouldRemind reports whether a user still owes today's workout and it is
// reminderHour in their own time zone (UTC when unknown).
func ShouldRemind(state State, now time.Time, reminderHour int) bool {
	if state.Streak <= 0 || state.Streak >= plan.ChallengeDays || pkg.SameDate(state.LastCompletedDay, now) {
		return false
	}

	loc := state.Location
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Hour() == reminderHour
}
