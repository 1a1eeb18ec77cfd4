package services

import "time"

// AdvanceStreak applies the daily streak rule for a page load. Dates are
// compared as UTC calendar days:
//
//	last active today      -> unchanged
//	last active yesterday  -> streak + 1
//	any gap, or never      -> reset to 1
//
// The changed flag tells the caller whether a write is needed.
func AdvanceStreak(streak int, lastActive, today time.Time) (newStreak int, newLastActive time.Time, changed bool) {
	day := dateOf(today)

	if lastActive.IsZero() {
		return 1, day, true
	}

	last := dateOf(lastActive)
	if !last.Before(day) {
		return streak, last, false
	}

	if last.Equal(day.AddDate(0, 0, -1)) {
		return streak + 1, day, true
	}
	return 1, day, true
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
