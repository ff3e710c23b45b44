package dto

import (
	"time"

	"github.com/google/uuid"

	"quickgig/internal/domains/slot/model"
	"quickgig/shared"
	"quickgig/shared/constant"
	gDto "quickgig/shared/dto"
	gModel "quickgig/shared/model"
	"quickgig/shared/timezone"
)

type CreateSlotRequest struct {
	Date      string `json:"date"       validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time"   validate:"required"`
}

func (c *CreateSlotRequest) ToModel(taskerID string) (model.AvailabilitySlot, error) {
	date, err := time.Parse(constant.DateOnlyFormat, c.Date)
	if err != nil {
		return model.AvailabilitySlot{}, err
	}

	startTime, err := time.Parse(constant.TimeOnlyFormat, c.StartTime)
	if err != nil {
		return model.AvailabilitySlot{}, err
	}

	endTime, err := time.Parse(constant.TimeOnlyFormat, c.EndTime)
	if err != nil {
		return model.AvailabilitySlot{}, err
	}

	return model.AvailabilitySlot{
		ID:        uuid.NewString(),
		TaskerID:  taskerID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		IsBooked:  false,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  taskerID,
			ModifiedBy: taskerID,
		},
	}, nil
}

type BulkCreateSlotsRequest struct {
	Mode          string `json:"mode"           validate:"required,oneof=daily weekly"`
	Date          string `json:"date"           validate:"required"`
	StartHour     int    `json:"start_hour"     validate:"gte=0,lte=23"`
	EndHour       int    `json:"end_hour"       validate:"required,gte=1,lte=24"`
	DurationHours int    `json:"duration_hours" validate:"omitempty,gte=1"`
	Weekdays      []int  `json:"weekdays"       validate:"omitempty,dive,gte=0,lte=6"`
	Weeks         int    `json:"weeks"          validate:"omitempty,gte=1"`
}

type UpdateSlotRequest struct {
	Date      string `db:"date"       json:"date"       validate:"omitempty"`
	StartTime string `db:"start_time" json:"start_time" validate:"omitempty"`
	EndTime   string `db:"end_time"   json:"end_time"   validate:"omitempty"`
}

type SlotResponse struct {
	ID        string `json:"id"`
	TaskerID  string `json:"tasker_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsBooked  bool   `json:"is_booked"`
	gDto.Metadata
}

func (r *SlotResponse) FromModel(model model.AvailabilitySlot) {
	r.ID = model.ID
	r.TaskerID = model.TaskerID
	r.Date = model.Date.Format(constant.DateOnlyFormat)
	r.StartTime = model.StartTime.Format(constant.TimeOnlyFormat)
	r.EndTime = model.EndTime.Format(constant.TimeOnlyFormat)
	r.IsBooked = model.IsBooked
	r.Metadata.FromModel(model.Metadata)
}

type GetSlotsResponse struct {
	Slots     []SlotResponse `json:"slots"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetSlotsResponse) FromModels(models []model.AvailabilitySlot, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Slots = make([]SlotResponse, len(models))
	for i, mod := range models {
		r.Slots[i].FromModel(mod)
	}
}

// BulkCreateSlotsResponse is the partial-success report for bulk generation.
// A failed candidate never aborts the rest of the batch.
type BulkCreateSlotsResponse struct {
	Created []SlotResponse `json:"created"`
	Errors  []string       `json:"errors"`
}
