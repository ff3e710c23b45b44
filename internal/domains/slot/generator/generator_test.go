package generator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"quickgig/internal/domains/slot/generator"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestDailySlots(t *testing.T) {
	base := date(2026, time.September, 7)

	tests := []struct {
		name          string
		startHour     int
		endHour       int
		durationHours int
		wantRanges    [][2]int
	}{
		{
			name:          "one hour slots across a work day",
			startHour:     9,
			endHour:       12,
			durationHours: 1,
			wantRanges:    [][2]int{{9, 10}, {10, 11}, {11, 12}},
		},
		{
			name:          "two hour slots",
			startHour:     9,
			endHour:       17,
			durationHours: 2,
			wantRanges:    [][2]int{{9, 11}, {11, 13}, {13, 15}, {15, 17}},
		},
		{
			name:          "trailing remainder is dropped",
			startHour:     9,
			endHour:       12,
			durationHours: 2,
			wantRanges:    [][2]int{{9, 11}},
		},
		{
			name:          "duration longer than window yields nothing",
			startHour:     9,
			endHour:       10,
			durationHours: 3,
			wantRanges:    [][2]int{},
		},
		{
			name:          "zero duration yields nothing",
			startHour:     9,
			endHour:       17,
			durationHours: 0,
			wantRanges:    [][2]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := generator.DailySlots(base, tt.startHour, tt.endHour, tt.durationHours)

			assert.Len(t, candidates, len(tt.wantRanges))

			for i, want := range tt.wantRanges {
				assert.Equal(t, base, candidates[i].Date)
				assert.Equal(t, want[0], candidates[i].StartTime.Hour())
				assert.Equal(t, want[1]%24, candidates[i].EndTime.Hour())
			}
		})
	}
}

func TestWeeklySlots(t *testing.T) {
	base := date(2026, time.September, 7) // a Monday

	t.Run("single weekday single week", func(t *testing.T) {
		candidates := generator.WeeklySlots(base, 9, 11, 1, []int{0}, 1)

		assert.Len(t, candidates, 2)
		assert.Equal(t, base, candidates[0].Date)
		assert.Equal(t, base, candidates[1].Date)
	})

	t.Run("weekday offsets shift the date", func(t *testing.T) {
		candidates := generator.WeeklySlots(base, 9, 10, 1, []int{0, 2, 4}, 1)

		assert.Len(t, candidates, 3)
		assert.Equal(t, base, candidates[0].Date)
		assert.Equal(t, base.AddDate(0, 0, 2), candidates[1].Date)
		assert.Equal(t, base.AddDate(0, 0, 4), candidates[2].Date)
	})

	t.Run("weeks repeat the pattern seven days apart", func(t *testing.T) {
		candidates := generator.WeeklySlots(base, 9, 10, 1, []int{1}, 3)

		assert.Len(t, candidates, 3)
		assert.Equal(t, base.AddDate(0, 0, 1), candidates[0].Date)
		assert.Equal(t, base.AddDate(0, 0, 8), candidates[1].Date)
		assert.Equal(t, base.AddDate(0, 0, 15), candidates[2].Date)
	})

	t.Run("no weekdays yields nothing", func(t *testing.T) {
		candidates := generator.WeeklySlots(base, 9, 10, 1, nil, 2)

		assert.Empty(t, candidates)
	})
}
