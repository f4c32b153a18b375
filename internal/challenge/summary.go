package challenge

import (
	"math"
	"time"

	"github.com/2beens/challenge45/internal/profiles"
	"github.com/2beens/challenge45/pkg"
)

const summaryDays = 7

var weeklyQuotes = []string{
	"A week of effort is a week of progress.",
	"Look back at your week with pride, and forward with hope.",
	"Consistency over one week is the blueprint for success over a year.",
	"Don't let one bad day spoil a week of good work.",
}

type SummaryDay struct {
	Date      string   `json:"date"`
	Weekday   string   `json:"weekday"`
	Weight    *float64 `json:"weight"`
	Completed bool     `json:"completed"`
}

type WeeklySummary struct {
	Days           []SummaryDay `json:"days"`
	DaysCompleted  int          `json:"daysCompleted"`
	CompletionRate int          `json:"completionRate"`
	Quote          string       `json:"quote"`
}

// buildWeeklySummary lays weights and completions over the seven UTC days
// ending on the date of now. The last weight logged on a day wins.
func buildWeeklySummary(now time.Time, weights []profiles.WeightEntry, progress []profiles.DailyProgress) *WeeklySummary {
	today := pkg.UTCDate(now)

	weightByDate := make(map[string]float64, len(weights))
	for _, w := range weights {
		weightByDate[w.RecordedAt.UTC().Format(pkg.DateLayout)] = w.Weight
	}
	completedByDate := make(map[string]bool, len(progress))
	for _, p := range progress {
		if p.IsCompleted {
			completedByDate[p.WorkoutDate.UTC().Format(pkg.DateLayout)] = true
		}
	}

	summary := &WeeklySummary{
		Days:  make([]SummaryDay, 0, summaryDays),
		Quote: weeklyQuotes[int(today.Weekday())%len(weeklyQuotes)],
	}
	for i := summaryDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		key := date.Format(pkg.DateLayout)
		day := SummaryDay{
			Date:      key,
			Weekday:   date.Weekday().String()[:3],
			Completed: completedByDate[key],
		}
		if w, ok := weightByDate[key]; ok {
			day.Weight = &w
		}
		if day.Completed {
			summary.DaysCompleted++
		}
		summary.Days = append(summary.Days, day)
	}
	summary.CompletionRate = int(math.Round(float64(summary.DaysCompleted) / summaryDays * 100))

	return summary
}
