package dto

import (
	"github.com/google/uuid"

	"quickgig/internal/domains/booking/model"
	"quickgig/shared"
	"quickgig/shared/constant"
	gDto "quickgig/shared/dto"
	gModel "quickgig/shared/model"
	"quickgig/shared/timezone"
)

type CreateBookingRequest struct {
	TaskerID    string `json:"tasker_id"   validate:"required,uuid4"`
	TaskID      string `json:"task_id"     validate:"required,uuid4"`
	SlotID      string `json:"slot_id"     validate:"required,uuid4"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// ToModel builds a confirmed booking owned by the requesting client.
func (c *CreateBookingRequest) ToModel(clientID string) model.Booking {
	return model.Booking{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		TaskerID:    c.TaskerID,
		TaskID:      c.TaskID,
		SlotID:      c.SlotID,
		Description: c.Description,
		Status:      constant.BookingStatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  clientID,
			ModifiedBy: clientID,
		},
	}
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed in_progress completed cancelled"`
}

type BookingResponse struct {
	ID          string `json:"id"`
	ClientID    string `json:"client_id"`
	TaskerID    string `json:"tasker_id"`
	TaskID      string `json:"task_id"`
	SlotID      string `json:"slot_id"`
	Description string `json:"description"`
	Status      string `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.ClientID = model.ClientID
	r.TaskerID = model.TaskerID
	r.TaskID = model.TaskID
	r.SlotID = model.SlotID
	r.Description = model.Description
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
