// Package events publishes booking lifecycle events to Kafka. Consumers
// (notifications, analytics) subscribe out of band; publishing failures are
// logged and never surfaced to the request path.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"quickgig/config"
	"quickgig/infras/kafka"
	"quickgig/shared/timezone"
)

const (
	TypeBookingCreated       = "booking.created"
	TypeBookingCancelled     = "booking.cancelled"
	TypeBookingStatusChanged = "booking.status_changed"
)

type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	SlotID     string    `json:"slot_id"`
	ClientID   string    `json:"client_id"`
	TaskerID   string    `json:"tasker_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishBookingEvent(ctx context.Context, event BookingEvent)
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
}

func NewPublisher(client kafka.Client, cfg *config.Config) Publisher {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
	}
}

func (p *publisherImpl) PublishBookingEvent(ctx context.Context, event BookingEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = timezone.Now()
	}

	message := kafka.Message{
		Key:   event.BookingID,
		Value: event,
	}

	err := p.client.SendMessages(ctx, p.cfg.Kafka.Topic.BookingEvents, message)
	if err != nil {
		log.Error().
			Err(err).
			Str("type", event.Type).
			Str("bookingID", event.BookingID).
			Msg("failed to publish booking event")

		return
	}

	log.Info().
		Str("type", event.Type).
		Str("bookingID", event.BookingID).
		Msg("published booking event")
}
