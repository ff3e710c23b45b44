package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"quickgig/config"
	"quickgig/infras/otel"
	"quickgig/internal/domains/booking/model"
	"quickgig/internal/domains/booking/model/dto"
	"quickgig/internal/domains/booking/repository"
	catalogService "quickgig/internal/domains/catalog/service"
	slotRepository "quickgig/internal/domains/slot/repository"
	"quickgig/internal/events"
	"quickgig/permissions"
	"quickgig/shared"
	"quickgig/shared/cache"
	"quickgig/shared/constant"
	gDto "quickgig/shared/dto"
	"quickgig/shared/failure"
)

const (
	cacheGetAllBooking = "booking:gets"
)

// Transactioner runs a function inside a single database transaction. It is
// satisfied by *postgres.Connection and stubbed in tests.
type Transactioner interface {
	InTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, role string) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateBookingStatusRequest) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	slotRepo  slotRepository.Slot
	catalog   catalogService.Catalog
	tx        Transactioner
	publisher events.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Booking,
	slotRepo slotRepository.Slot,
	catalog catalogService.Catalog,
	tx Transactioner,
	publisher events.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:      repo,
		slotRepo:  slotRepo,
		catalog:   catalog,
		tx:        tx,
		publisher: publisher,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// Create reserves an availability slot for the requesting client. The slot row
// is locked with FOR UPDATE inside a single transaction, so two clients racing
// for the same slot serialize: the first commit flips is_booked and the second
// attempt fails the re-check. The tasker skill check runs before the lock is
// taken to keep the critical section short.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, ok := permissions.ActorFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	if !permissions.CanCreateBooking(actor) {
		return res, failure.Forbidden("only clients can create bookings") // nolint:wrapcheck
	}

	offers, err := s.catalog.TaskerOffers(ctx, req.TaskerID, req.TaskID)
	if err != nil {
		return res, fmt.Errorf("failed to check tasker skills: %w", err)
	}

	if !offers {
		return res, failure.BadRequestFromString("tasker does not offer the requested service") // nolint:wrapcheck
	}

	booking := req.ToModel(actor.ID)

	err = s.tx.InTransaction(ctx, func(tx *sqlx.Tx) error {
		slot, err := s.slotRepo.GetForUpdateTx(ctx, tx, req.SlotID)
		if err != nil {
			return fmt.Errorf("failed to lock slot: %w", err)
		}

		if slot.ID == constant.Empty {
			return failure.NotFound("availability slot not found") // nolint:wrapcheck
		}

		if slot.IsBooked {
			return failure.Conflict("availability slot is already booked") // nolint:wrapcheck
		}

		if slot.TaskerID != req.TaskerID {
			return failure.BadRequestFromString("slot does not belong to the requested tasker") // nolint:wrapcheck
		}

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		if err := s.slotRepo.SetBookedTx(ctx, tx, slot.ID, true, actor.ID); err != nil {
			return fmt.Errorf("failed to mark slot as booked: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("slotID", req.SlotID).Msg("failed to create booking")

		return res, err
	}

	res.FromModel(booking)

	s.afterWrite(ctx, events.BookingEvent{
		Type:      events.TypeBookingCreated,
		BookingID: booking.ID,
		SlotID:    booking.SlotID,
		ClientID:  booking.ClientID,
		TaskerID:  booking.TaskerID,
		Status:    booking.Status,
	})

	return res, nil
}

// GetAll lists the caller's bookings. The role parameter selects which side of
// the booking the caller is on; an actor with both flags set picks explicitly.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, role string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, ok := permissions.ActorFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	ownerField, err := resolveOwnerField(actor, role)
	if err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    ownerField,
				Operator: gDto.FilterOperatorEq,
				Value:    actor.ID,
				Table:    model.TableName,
			},
		},
	}

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetAllBooking, ownerField, actor.ID), req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, ok := permissions.ActorFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if !permissions.CanAccessBooking(actor, booking.ClientID, booking.TaskerID) {
		return res, failure.ResourceRestrictedError // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

// UpdateStatus advances the booking along its lifecycle. Only forward moves
// are allowed (confirmed to in_progress, in_progress to completed); cancelling
// goes through Cancel so the slot is released atomically.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateBookingStatusRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, ok := permissions.ActorFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	var booking model.Booking

	err = s.tx.InTransaction(ctx, func(tx *sqlx.Tx) error {
		var txErr error

		booking, txErr = s.repo.GetForUpdateTx(ctx, tx, id)
		if txErr != nil {
			return fmt.Errorf("failed to lock booking: %w", txErr)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		if !permissions.CanAccessBooking(actor, booking.ClientID, booking.TaskerID) {
			return failure.ResourceRestrictedError // nolint:wrapcheck
		}

		if req.Status == constant.BookingStatusCancelled {
			return failure.BadRequestFromString("use the cancel endpoint to cancel a booking") // nolint:wrapcheck
		}

		if !model.CanTransition(booking.Status, req.Status) {
			return failure.BadRequestFromString(
				fmt.Sprintf("cannot transition booking from %s to %s", booking.Status, req.Status),
			) // nolint:wrapcheck
		}

		if txErr := s.repo.SetStatusTx(ctx, tx, booking.ID, req.Status, actor.ID); txErr != nil {
			return fmt.Errorf("failed to update booking status: %w", txErr)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to update booking status")

		return res, err
	}

	booking.Status = req.Status
	res.FromModel(booking)

	s.afterWrite(ctx, events.BookingEvent{
		Type:      events.TypeBookingStatusChanged,
		BookingID: booking.ID,
		SlotID:    booking.SlotID,
		ClientID:  booking.ClientID,
		TaskerID:  booking.TaskerID,
		Status:    req.Status,
	})

	return res, nil
}

// Cancel cancels a confirmed booking and releases its slot in the same
// transaction, so the slot is immediately rebookable once the cancel commits.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, ok := permissions.ActorFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	var booking model.Booking

	err = s.tx.InTransaction(ctx, func(tx *sqlx.Tx) error {
		var txErr error

		booking, txErr = s.repo.GetForUpdateTx(ctx, tx, id)
		if txErr != nil {
			return fmt.Errorf("failed to lock booking: %w", txErr)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		if !permissions.CanAccessBooking(actor, booking.ClientID, booking.TaskerID) {
			return failure.ResourceRestrictedError // nolint:wrapcheck
		}

		if booking.Status != constant.BookingStatusConfirmed {
			return failure.BadRequestFromString(
				fmt.Sprintf("cannot cancel booking with status: %s", booking.Status),
			) // nolint:wrapcheck
		}

		if txErr := s.repo.SetStatusTx(ctx, tx, booking.ID, constant.BookingStatusCancelled, actor.ID); txErr != nil {
			return fmt.Errorf("failed to cancel booking: %w", txErr)
		}

		if txErr := s.slotRepo.SetBookedTx(ctx, tx, booking.SlotID, false, actor.ID); txErr != nil {
			return fmt.Errorf("failed to release slot: %w", txErr)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to cancel booking")

		return res, err
	}

	booking.Status = constant.BookingStatusCancelled
	res.FromModel(booking)

	s.afterWrite(ctx, events.BookingEvent{
		Type:      events.TypeBookingCancelled,
		BookingID: booking.ID,
		SlotID:    booking.SlotID,
		ClientID:  booking.ClientID,
		TaskerID:  booking.TaskerID,
		Status:    constant.BookingStatusCancelled,
	})

	return res, nil
}

// afterWrite runs the post-commit side effects: cache invalidation and event
// publication. Both are detached from the request lifecycle.
func (s *serviceImpl) afterWrite(ctx context.Context, event events.BookingEvent) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		s.publisher.PublishBookingEvent(c, event)
	}()
}

// resolveOwnerField maps the requested role to the booking column owned by the
// actor. Defaults to the actor's only role when the parameter is omitted.
func resolveOwnerField(actor permissions.Actor, role string) (string, error) {
	switch role {
	case "client":
		if !actor.IsClient {
			return constant.Empty, failure.Forbidden("actor is not a client") // nolint:wrapcheck
		}

		return model.FieldClientID, nil
	case "tasker":
		if !actor.IsTasker {
			return constant.Empty, failure.Forbidden("actor is not a tasker") // nolint:wrapcheck
		}

		return model.FieldTaskerID, nil
	case constant.Empty:
		if actor.IsTasker && !actor.IsClient {
			return model.FieldTaskerID, nil
		}

		return model.FieldClientID, nil
	default:
		return constant.Empty, failure.BadRequestFromString("role must be client or tasker") // nolint:wrapcheck
	}
}
