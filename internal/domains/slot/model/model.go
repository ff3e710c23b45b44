package model

import (
	"time"

	"quickgig/shared/model"
)

const (
	TableName  = "availability_slots"
	EntityName = "slot"

	FieldID        = "id"
	FieldTaskerID  = "tasker_id"
	FieldDate      = "date"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldIsBooked  = "is_booked"
)

// AvailabilitySlot is a tasker-declared block of time available for booking.
// IsBooked is owned by the booking service and must only change inside its
// reservation transactions.
type AvailabilitySlot struct {
	ID        string    `db:"id"`
	TaskerID  string    `db:"tasker_id"`
	Date      time.Time `db:"date"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	IsBooked  bool      `db:"is_booked"`
	model.Metadata
}
