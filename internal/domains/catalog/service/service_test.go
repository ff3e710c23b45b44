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
	catalogMocks "quickgig/internal/domains/catalog/mocks"
	"quickgig/internal/domains/catalog/model"
	"quickgig/internal/domains/catalog/service"
	cacheMocks "quickgig/shared/cache/mocks"
	gDto "quickgig/shared/dto"
	"quickgig/shared/failure"
)

func TestCatalogService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	t.Run("found on a cache miss", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			GetService(gomock.Any(), gomock.Any()).
			Return(model.Service{ID: "service-1", Name: "Plumbing"}, nil)

		res, err := svc.Get(context.Background(), "service-1")

		assert.NoError(t, err)
		assert.Equal(t, "service-1", res.ID)
		assert.Equal(t, "Plumbing", res.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			GetService(gomock.Any(), gomock.Any()).
			Return(model.Service{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestCatalogService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	t.Run("lists services on a cache miss", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			CountServices(gomock.Any(), gomock.Any()).
			Return(2, nil)

		mockRepo.EXPECT().
			GetAllServices(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Service{
				{ID: "service-1", Name: "Plumbing"},
				{ID: "service-2", Name: "Cleaning"},
			}, nil)

		res, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Len(t, res.Services, 2)
		assert.Equal(t, 2, res.TotalData)
	})

	t.Run("count failure aborts", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			CountServices(gomock.Any(), gomock.Any()).
			Return(0, errors.New("database error"))

		_, err := svc.GetAll(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{})

		assert.Error(t, err)
	})
}

func TestCatalogService_TaskerOffers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	t.Run("tasker offers the service", func(t *testing.T) {
		mockRepo.EXPECT().
			TaskerOffers(gomock.Any(), "tasker-1", "service-1").
			Return(true, nil)

		offers, err := svc.TaskerOffers(context.Background(), "tasker-1", "service-1")

		assert.NoError(t, err)
		assert.True(t, offers)
	})

	t.Run("tasker lacks the skill", func(t *testing.T) {
		mockRepo.EXPECT().
			TaskerOffers(gomock.Any(), "tasker-1", "service-2").
			Return(false, nil)

		offers, err := svc.TaskerOffers(context.Background(), "tasker-1", "service-2")

		assert.NoError(t, err)
		assert.False(t, offers)
	})

	t.Run("repository failure surfaces", func(t *testing.T) {
		mockRepo.EXPECT().
			TaskerOffers(gomock.Any(), "tasker-1", "service-1").
			Return(false, errors.New("database error"))

		_, err := svc.TaskerOffers(context.Background(), "tasker-1", "service-1")

		assert.Error(t, err)
	})
}
