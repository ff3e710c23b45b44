package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"quickgig/config"
	"quickgig/infras/otel/mocks"
	slotMocks "quickgig/internal/domains/slot/mocks"
	"quickgig/internal/domains/slot/model"
	"quickgig/internal/domains/slot/model/dto"
	"quickgig/internal/domains/slot/service"
	cacheMocks "quickgig/shared/cache/mocks"
	"quickgig/shared/constant"
	"quickgig/shared/failure"
	gModel "quickgig/shared/model"
	"quickgig/shared/timezone"
)

func taskerContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, userID+"@example.com")
	ctx = context.WithValue(ctx, constant.ContextKeyIsTasker, true)

	return ctx
}

func clientContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, userID+"@example.com")
	ctx = context.WithValue(ctx, constant.ContextKeyIsClient, true)

	return ctx
}

func TestSlotService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := slotMocks.NewMockSlot(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateSlotRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			ctx:  taskerContext("tasker-1"),
			req: dto.CreateSlotRequest{
				Date:      "2999-03-10",
				StartTime: "09:00",
				EndTime:   "10:00",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "client cannot create slots",
			ctx:  clientContext("client-1"),
			req: dto.CreateSlotRequest{
				Date:      "2999-03-10",
				StartTime: "09:00",
				EndTime:   "10:00",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusForbidden,
		},
		{
			name: "unauthenticated",
			ctx:  context.Background(),
			req: dto.CreateSlotRequest{
				Date:      "2999-03-10",
				StartTime: "09:00",
				EndTime:   "10:00",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "end time must be after start time",
			ctx:  taskerContext("tasker-1"),
			req: dto.CreateSlotRequest{
				Date:      "2999-03-10",
				StartTime: "10:00",
				EndTime:   "09:00",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "past dates are rejected",
			ctx:  taskerContext("tasker-1"),
			req: dto.CreateSlotRequest{
				Date:      "2020-01-01",
				StartTime: "09:00",
				EndTime:   "10:00",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "duplicate slot",
			ctx:  taskerContext("tasker-1"),
			req: dto.CreateSlotRequest{
				Date:      "2999-03-10",
				StartTime: "09:00",
				EndTime:   "10:00",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "invalid date format",
			ctx:  taskerContext("tasker-1"),
			req: dto.CreateSlotRequest{
				Date:      "10-03-2999",
				StartTime: "09:00",
				EndTime:   "10:00",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(tt.ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "tasker-1", res.TaskerID)
				assert.Equal(t, tt.req.Date, res.Date)
				assert.False(t, res.IsBooked)
			}
		})
	}
}

func TestSlotService_BulkCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := slotMocks.NewMockSlot(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	t.Run("daily mode creates every candidate", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil).
			Times(3)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil).
			Times(3)

		res, err := svc.BulkCreate(taskerContext("tasker-1"), dto.BulkCreateSlotsRequest{
			Mode:      constant.BulkSlotModeDaily,
			Date:      "2999-03-10",
			StartHour: 9,
			EndHour:   12,
		})

		assert.NoError(t, err)
		assert.Len(t, res.Created, 3)
		assert.Empty(t, res.Errors)
	})

	t.Run("duplicates are reported without aborting the batch", func(t *testing.T) {
		gomock.InOrder(
			mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
			mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil),
		)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.BulkCreate(taskerContext("tasker-1"), dto.BulkCreateSlotsRequest{
			Mode:      constant.BulkSlotModeDaily,
			Date:      "2999-03-10",
			StartHour: 9,
			EndHour:   11,
		})

		assert.NoError(t, err)
		assert.Len(t, res.Created, 1)
		assert.Len(t, res.Errors, 1)
	})

	t.Run("weekly mode expands weekdays and weeks", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil).
			Times(4)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil).
			Times(4)

		res, err := svc.BulkCreate(taskerContext("tasker-1"), dto.BulkCreateSlotsRequest{
			Mode:      constant.BulkSlotModeWeekly,
			Date:      "2999-03-10",
			StartHour: 9,
			EndHour:   10,
			Weekdays:  []int{0, 2},
			Weeks:     2,
		})

		assert.NoError(t, err)
		assert.Len(t, res.Created, 4)
		assert.Empty(t, res.Errors)
	})

	t.Run("client cannot bulk create", func(t *testing.T) {
		_, err := svc.BulkCreate(clientContext("client-1"), dto.BulkCreateSlotsRequest{
			Mode:      constant.BulkSlotModeDaily,
			Date:      "2999-03-10",
			StartHour: 9,
			EndHour:   12,
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("unknown mode is rejected", func(t *testing.T) {
		_, err := svc.BulkCreate(taskerContext("tasker-1"), dto.BulkCreateSlotsRequest{
			Mode:      "monthly",
			Date:      "2999-03-10",
			StartHour: 9,
			EndHour:   12,
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestSlotService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := slotMocks.NewMockSlot(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	t.Run("found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.AvailabilitySlot{
				ID:       "slot-1",
				TaskerID: "tasker-1",
				Date:     timezone.Now(),
				Metadata: gModel.Metadata{CreatedAt: timezone.Now(), ModifiedAt: timezone.Now()},
			}, nil)

		res, err := svc.Get(context.Background(), "slot-1")

		assert.NoError(t, err)
		assert.Equal(t, "slot-1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.AvailabilitySlot{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.AvailabilitySlot{}, errors.New("database error"))

		_, err := svc.Get(context.Background(), "slot-1")

		assert.Error(t, err)
	})
}

func TestSlotService_GetAvailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := slotMocks.NewMockSlot(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	t.Run("lists open slots for a tasker", func(t *testing.T) {
		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.AvailabilitySlot{
				{ID: "slot-1", TaskerID: "tasker-1", Date: timezone.Now()},
				{ID: "slot-2", TaskerID: "tasker-1", Date: timezone.Now()},
			}, nil)

		res, err := svc.GetAvailable(context.Background(), "tasker-1", "")

		assert.NoError(t, err)
		assert.Len(t, res.Slots, 2)
	})

	t.Run("tasker id is required", func(t *testing.T) {
		_, err := svc.GetAvailable(context.Background(), "", "")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("invalid date is rejected", func(t *testing.T) {
		_, err := svc.GetAvailable(context.Background(), "tasker-1", "not-a-date")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestSlotService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := slotMocks.NewMockSlot(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	ownedSlot := model.AvailabilitySlot{ID: "slot-1", TaskerID: "tasker-1"}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.UpdateSlotRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful update",
			ctx:  taskerContext("tasker-1"),
			req:  dto.UpdateSlotRequest{StartTime: "10:00"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedSlot, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:      "empty update request",
			ctx:       taskerContext("tasker-1"),
			req:       dto.UpdateSlotRequest{},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "slot not found",
			ctx:  taskerContext("tasker-1"),
			req:  dto.UpdateSlotRequest{StartTime: "10:00"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.AvailabilitySlot{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "only the owner may update",
			ctx:  taskerContext("tasker-2"),
			req:  dto.UpdateSlotRequest{StartTime: "10:00"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedSlot, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "booked slots are frozen",
			ctx:  taskerContext("tasker-1"),
			req:  dto.UpdateSlotRequest{StartTime: "10:00"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.AvailabilitySlot{ID: "slot-1", TaskerID: "tasker-1", IsBooked: true}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(tt.ctx, tt.req, "slot-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSlotService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := slotMocks.NewMockSlot(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	t.Run("successful deletion", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.AvailabilitySlot{ID: "slot-1", TaskerID: "tasker-1"}, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Delete(taskerContext("tasker-1"), "slot-1")

		assert.NoError(t, err)
	})

	t.Run("only the owner may delete", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.AvailabilitySlot{ID: "slot-1", TaskerID: "tasker-1"}, nil)

		err := svc.Delete(taskerContext("tasker-2"), "slot-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("slot not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.AvailabilitySlot{}, nil)

		err := svc.Delete(taskerContext("tasker-1"), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
