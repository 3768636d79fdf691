package domain

import "time"

// WeekStart returns Monday 00:00:00 of the week containing t, in t's
// location. Sunday maps to the previous Monday (six days back), matching the
// weekly working-hours window that gates tour assignment.
func WeekStart(t time.Time) time.Time {
	diffToMonday := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		diffToMonday = 6
	}

	monday := t.AddDate(0, 0, -diffToMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
