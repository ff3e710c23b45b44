package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quickgig/internal/domains/booking/model"
	"quickgig/shared/constant"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"confirmed to in_progress", constant.BookingStatusConfirmed, constant.BookingStatusInProgress, true},
		{"in_progress to completed", constant.BookingStatusInProgress, constant.BookingStatusCompleted, true},
		{"confirmed cannot skip to completed", constant.BookingStatusConfirmed, constant.BookingStatusCompleted, false},
		{"confirmed cannot cancel via transition", constant.BookingStatusConfirmed, constant.BookingStatusCancelled, false},
		{"completed is terminal", constant.BookingStatusCompleted, constant.BookingStatusInProgress, false},
		{"cancelled is terminal", constant.BookingStatusCancelled, constant.BookingStatusConfirmed, false},
		{"no backwards moves", constant.BookingStatusInProgress, constant.BookingStatusConfirmed, false},
		{"unknown source", "pending", constant.BookingStatusConfirmed, false},
		{"unknown target", constant.BookingStatusConfirmed, "archived", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.CanTransition(tt.from, tt.to))
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{
		constant.BookingStatusConfirmed,
		constant.BookingStatusInProgress,
		constant.BookingStatusCompleted,
		constant.BookingStatusCancelled,
	} {
		assert.True(t, model.ValidStatus(status), status)
	}

	assert.False(t, model.ValidStatus("pending"))
	assert.False(t, model.ValidStatus(""))
}
