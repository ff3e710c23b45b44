// Package generator produces candidate availability slots from a time-range
// specification. It is purely computational: deduplication against existing
// slots and persistence are the slot service's concern.
package generator

import (
	"time"
)

// Candidate is a prospective availability slot before validation and storage.
type Candidate struct {
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
}

// DailySlots returns the maximal sequence of non-overlapping slots of
// durationHours covering [startHour, endHour) on the given date.
func DailySlots(date time.Time, startHour, endHour, durationHours int) []Candidate {
	if durationHours <= 0 {
		return nil
	}

	candidates := []Candidate{}

	for hour := startHour; hour+durationHours <= endHour; hour += durationHours {
		candidates = append(candidates, Candidate{
			Date:      date,
			StartTime: time.Date(0, time.January, 1, hour, 0, 0, 0, time.UTC),
			EndTime:   time.Date(0, time.January, 1, hour+durationHours, 0, 0, 0, time.UTC),
		})
	}

	return candidates
}

// WeeklySlots generates daily candidates per (week, weekday) combination.
// Dates are computed as baseDate + week*7 + weekday days.
func WeeklySlots(baseDate time.Time, startHour, endHour, durationHours int, weekdays []int, weeks int) []Candidate {
	candidates := []Candidate{}

	for week := range weeks {
		for _, day := range weekdays {
			date := baseDate.AddDate(0, 0, week*7+day)
			candidates = append(candidates, DailySlots(date, startHour, endHour, durationHours)...)
		}
	}

	return candidates
}
