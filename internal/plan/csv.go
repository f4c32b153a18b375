package plan

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// header cell (lowercased, trimmed) -> row field
var columnAliases = map[string]string{
	"day":            "Day",
	"daytitle":       "DayTitle",
	"day title":      "DayTitle",
	"dayfocus":       "DayFocus",
	"day focus":      "DayFocus",
	"category":       "Category",
	"exercisename":   "ExerciseName",
	"exercise name":  "ExerciseName",
	"exercise":       "ExerciseName",
	"sets":           "Sets",
	"reps":           "Reps",
	"notes":          "Notes",
	"cardio / notes": "Notes",
	"cardio/notes":   "Notes",
}

// ParseCSV reads a plan export with a header row. Header cells are literal
// column keys, "Cardio / Notes" is a single column.
func ParseCSV(r io.Reader) ([]WorkoutRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return ParseTable(records)
}

// ParseTable maps a header-first table of cells to workout rows.
func ParseTable(table [][]string) ([]WorkoutRow, error) {
	if len(table) == 0 {
		return nil, errors.New("empty plan table")
	}

	columns := make(map[string]int)
	for i, cell := range table[0] {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff")))
		if field, ok := columnAliases[key]; ok {
			if _, seen := columns[field]; !seen {
				columns[field] = i
			}
		}
	}
	if _, ok := columns["Day"]; !ok {
		return nil, errors.New("plan table has no Day column")
	}
	if _, ok := columns["ExerciseName"]; !ok {
		return nil, errors.New("plan table has no ExerciseName column")
	}

	cell := func(record []string, field string) string {
		i, ok := columns[field]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	rows := make([]WorkoutRow, 0, len(table)-1)
	for _, record := range table[1:] {
		if isBlankRecord(record) {
			continue
		}
		rows = append(rows, WorkoutRow{
			Day:          cell(record, "Day"),
			DayTitle:     cell(record, "DayTitle"),
			DayFocus:     cell(record, "DayFocus"),
			Category:     cell(record, "Category"),
			ExerciseName: cell(record, "ExerciseName"),
			Sets:         cell(record, "Sets"),
			Reps:         cell(record, "Reps"),
			Notes:        cell(record, "Notes"),
		})
	}

	return rows, nil
}

func isBlankRecord(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
