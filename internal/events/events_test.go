package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"quickgig/config"
	"quickgig/infras/kafka"
	kafkaMocks "quickgig/infras/kafka/mocks"
	"quickgig/internal/events"
)

func TestPublishBookingEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Kafka.Topic.BookingEvents = "booking-events"

	t.Run("publishes to the booking events topic", func(t *testing.T) {
		mockClient := kafkaMocks.NewMockClient(ctrl)
		publisher := events.NewPublisher(mockClient, cfg)

		var sent kafka.Message

		mockClient.EXPECT().
			SendMessages(gomock.Any(), "booking-events", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				sent = messages[0]

				return nil
			})

		publisher.PublishBookingEvent(context.Background(), events.BookingEvent{
			Type:      events.TypeBookingCreated,
			BookingID: "booking-1",
			SlotID:    "slot-1",
			Status:    "confirmed",
		})

		assert.Equal(t, "booking-1", sent.Key)

		event, ok := sent.Value.(events.BookingEvent)
		assert.True(t, ok)
		assert.Equal(t, events.TypeBookingCreated, event.Type)
		assert.False(t, event.OccurredAt.IsZero())
	})

	t.Run("keeps a caller supplied timestamp", func(t *testing.T) {
		mockClient := kafkaMocks.NewMockClient(ctrl)
		publisher := events.NewPublisher(mockClient, cfg)

		occurredAt := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

		mockClient.EXPECT().
			SendMessages(gomock.Any(), "booking-events", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				event, _ := messages[0].Value.(events.BookingEvent)
				assert.Equal(t, occurredAt, event.OccurredAt)

				return nil
			})

		publisher.PublishBookingEvent(context.Background(), events.BookingEvent{
			Type:       events.TypeBookingCancelled,
			BookingID:  "booking-2",
			OccurredAt: occurredAt,
		})
	})

	t.Run("send failures are swallowed", func(t *testing.T) {
		mockClient := kafkaMocks.NewMockClient(ctrl)
		publisher := events.NewPublisher(mockClient, cfg)

		mockClient.EXPECT().
			SendMessages(gomock.Any(), "booking-events", gomock.Any()).
			Return(errors.New("broker unavailable"))

		assert.NotPanics(t, func() {
			publisher.PublishBookingEvent(context.Background(), events.BookingEvent{
				Type:      events.TypeBookingStatusChanged,
				BookingID: "booking-3",
			})
		})
	})
}
