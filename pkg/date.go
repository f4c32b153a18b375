package pkg

import "time"

const DateLayout = "2006-01-02"

// UTCDate truncates t to midnight of its UTC calendar day.
func UTCDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a is set and falls on the UTC calendar day of b.
func SameDate(a *time.Time, b time.Time) bool {
	return a != nil && UTCDate(*a).Equal(UTCDate(b))
}
