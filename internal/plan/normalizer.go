package plan

import (
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Normalize groups spreadsheet rows into per-day workout specs.
//
// Day, DayTitle and DayFocus are carried forward independently from the
// nearest preceding non-blank cell. Rows without an exercise name keep their
// day in the plan but add no exercise, so a day made only of such rows is a
// rest day. Rows that cannot be placed on a day in 1..ChallengeDays are skipped.
func Normalize(rows []WorkoutRow) []NormalizedDay {
	var (
		lastDay, lastTitle, lastFocus string
		days                          []NormalizedDay
	)
	dayIndex := make(map[int]int)
	usedNames := make(map[int]map[string]bool)

	for i, row := range rows {
		if v := strings.TrimSpace(row.Day); v != "" {
			lastDay = v
		}
		if v := strings.TrimSpace(row.DayTitle); v != "" {
			lastTitle = v
		}
		if v := strings.TrimSpace(row.DayFocus); v != "" {
			lastFocus = v
		}

		if lastDay == "" {
			log.Debugf("plan row %d: no day seen yet, skipping", i+1)
			continue
		}
		dayNumber, err := strconv.Atoi(lastDay)
		if err != nil || dayNumber < 1 || dayNumber > ChallengeDays {
			log.Debugf("plan row %d: invalid day [%s], skipping", i+1, lastDay)
			continue
		}

		idx, ok := dayIndex[dayNumber]
		if !ok {
			days = append(days, NormalizedDay{
				DayNumber: dayNumber,
				Title:     lastTitle,
				Focus:     lastFocus,
				Exercises: []ExerciseSpec{},
			})
			idx = len(days) - 1
			dayIndex[dayNumber] = idx
			usedNames[dayNumber] = make(map[string]bool)
		}
		day := &days[idx]

		notes := strings.TrimSpace(row.Notes)
		if notes != "" {
			day.Notes = append(day.Notes, notes)
		}

		name := strings.TrimSpace(row.ExerciseName)
		if name == "" {
			continue
		}

		// names stay unique within a day, repeated ones get a counter suffix
		used := usedNames[dayNumber]
		base := name
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s (%d)", base, n)
		}
		used[name] = true

		day.Exercises = append(day.Exercises, ExerciseSpec{
			Name:     name,
			Category: strings.TrimSpace(row.Category),
			SetCount: parseSetCount(row.Sets),
			RepSpec:  strings.TrimSpace(row.Reps),
			Notes:    notes,
		})
	}

	return days
}

func parseSetCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
