package model

import (
	"quickgig/shared/constant"
	"quickgig/shared/model"
)

const (
	EntityName = "booking"
	TableName  = "bookings"

	FieldID       = "id"
	FieldClientID = "client_id"
	FieldTaskerID = "tasker_id"
	FieldTaskID   = "task_id"
	FieldSlotID   = "slot_id"
	FieldStatus   = "status"
)

type Booking struct {
	ID          string `db:"id"          json:"id"`
	ClientID    string `db:"client_id"   json:"client_id"`
	TaskerID    string `db:"tasker_id"   json:"tasker_id"`
	TaskID      string `db:"task_id"     json:"task_id"`
	SlotID      string `db:"slot_id"     json:"slot_id"`
	Description string `db:"description" json:"description"`
	Status      string `db:"status"      json:"status"`
	model.Metadata
}

// transitions is the full lifecycle graph. Cancellation is deliberately absent:
// it is a separate operation with its own slot-release side effect, not a
// status update.
var transitions = map[string][]string{
	constant.BookingStatusConfirmed:  {constant.BookingStatusInProgress},
	constant.BookingStatusInProgress: {constant.BookingStatusCompleted},
	constant.BookingStatusCompleted:  {},
	constant.BookingStatusCancelled:  {},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

// ValidStatus reports whether the value is a known booking status.
func ValidStatus(status string) bool {
	_, ok := transitions[status]

	return ok
}
