package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"quickgig/config"
	"quickgig/infras/otel"
	"quickgig/internal/domains/slot/generator"
	"quickgig/internal/domains/slot/model"
	"quickgig/internal/domains/slot/model/dto"
	"quickgig/internal/domains/slot/repository"
	"quickgig/permissions"
	"quickgig/shared"
	"quickgig/shared/cache"
	"quickgig/shared/constant"
	gDto "quickgig/shared/dto"
	"quickgig/shared/failure"
	"quickgig/shared/timezone"
)

const (
	cacheGetSlot    = "slot:get"
	cacheGetAllSlot = "slot:gets"
	cacheCountSlot  = "slot:count"
)

const defaultSlotDurationHours = 1

type Slot interface {
	Create(ctx context.Context, req dto.CreateSlotRequest) (dto.SlotResponse, error)
	BulkCreate(ctx context.Context, req dto.BulkCreateSlotsRequest) (dto.BulkCreateSlotsResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSlotsResponse, error)
	GetAvailable(ctx context.Context, taskerID, date string) (dto.GetSlotsResponse, error)
	Get(ctx context.Context, id string) (dto.SlotResponse, error)
	Update(ctx context.Context, req dto.UpdateSlotRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Slot
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Slot, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Slot {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSlotRequest) (res dto.SlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, ok := permissions.ActorFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	if !permissions.CanCreateSlots(actor) {
		return res, failure.Forbidden("only taskers can create availability slots") // nolint:wrapcheck
	}

	slot, err := req.ToModel(actor.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse slot request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if err = s.validateSlot(ctx, slot); err != nil {
		return res, err
	}

	if err = s.insertSlot(ctx, slot); err != nil {
		return res, err
	}

	res.FromModel(slot)

	s.invalidateListCaches(ctx)

	return res, nil
}

// BulkCreate generates candidate slots (daily or weekly) and persists each one
// independently. Invalid or duplicate candidates are reported per item and
// never abort the rest of the batch, so repeating the same request is
// idempotent: the second run creates nothing and reports every candidate as a
// duplicate.
func (s *serviceImpl) BulkCreate(ctx context.Context, req dto.BulkCreateSlotsRequest) (res dto.BulkCreateSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BulkCreate")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, ok := permissions.ActorFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	if !permissions.CanCreateSlots(actor) {
		return res, failure.Forbidden("only taskers can create availability slots") // nolint:wrapcheck
	}

	baseDate, err := timezone.Parse(constant.DateOnlyFormat, req.Date)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	duration := req.DurationHours
	if duration == 0 {
		duration = defaultSlotDurationHours
	}

	var candidates []generator.Candidate

	switch req.Mode {
	case constant.BulkSlotModeDaily:
		candidates = generator.DailySlots(baseDate, req.StartHour, req.EndHour, duration)
	case constant.BulkSlotModeWeekly:
		weekdays := req.Weekdays
		if len(weekdays) == 0 {
			weekdays = []int{0, 1, 2, 3, 4, 5, 6}
		}

		weeks := req.Weeks
		if weeks == 0 {
			weeks = 1
		}

		candidates = generator.WeeklySlots(baseDate, req.StartHour, req.EndHour, duration, weekdays, weeks)
	default:
		return res, failure.BadRequestFromString("mode must be daily or weekly") // nolint:wrapcheck
	}

	res.Created = []dto.SlotResponse{}
	res.Errors = []string{}

	for _, candidate := range candidates {
		slotReq := dto.CreateSlotRequest{
			Date:      candidate.Date.Format(constant.DateOnlyFormat),
			StartTime: candidate.StartTime.Format(constant.TimeOnlyFormat),
			EndTime:   candidate.EndTime.Format(constant.TimeOnlyFormat),
		}

		slot, err := slotReq.ToModel(actor.ID)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s %s-%s: %v", slotReq.Date, slotReq.StartTime, slotReq.EndTime, err))

			continue
		}

		if err := s.validateSlot(ctx, slot); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s %s-%s: %v", slotReq.Date, slotReq.StartTime, slotReq.EndTime, err))

			continue
		}

		if err := s.insertSlot(ctx, slot); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s %s-%s: %v", slotReq.Date, slotReq.StartTime, slotReq.EndTime, err))

			continue
		}

		created := dto.SlotResponse{}
		created.FromModel(slot)
		res.Created = append(res.Created, created)
	}

	if len(res.Created) > 0 {
		s.invalidateListCaches(ctx)
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSlot, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for slots")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count slots")

		return res, fmt.Errorf("failed to count slots: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get slots")

		return res, fmt.Errorf("failed to get slots: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save slots to cache")
		}
	}()

	return res, nil
}

// GetAvailable lists the open slots of one tasker, optionally narrowed to a
// single date. The read is deliberately plain: no cache (availability changes
// with every booking) and no lock (the booking transaction re-checks the flag
// under FOR UPDATE before committing).
func (s *serviceImpl) GetAvailable(ctx context.Context, taskerID, date string) (res dto.GetSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	if taskerID == constant.Empty {
		return res, failure.BadRequestFromString("tasker_id is required") // nolint:wrapcheck
	}

	filters := []any{
		gDto.Filter{
			Field:    model.FieldTaskerID,
			Operator: gDto.FilterOperatorEq,
			Value:    taskerID,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldIsBooked,
			Operator: gDto.FilterOperatorEq,
			Value:    false,
			Table:    model.TableName,
		},
	}

	if date != constant.Empty {
		if _, err := timezone.Parse(constant.DateOnlyFormat, date); err != nil {
			return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
		}

		filters = append(filters, gDto.Filter{
			Field:    model.FieldDate,
			Operator: gDto.FilterOperatorEq,
			Value:    date,
			Table:    model.TableName,
		})
	}

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}

	params := gDto.QueryParams{
		SortBy:  model.FieldDate,
		SortDir: gDto.SortDirAsc,
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get available slots")

		return res, fmt.Errorf("failed to get available slots: %w", err)
	}

	res.FromModels(models, len(models), len(models))

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	slot, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get slot")

		return res, fmt.Errorf("failed to get slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return res, failure.NotFound("slot not found") // nolint:wrapcheck
	}

	res.FromModel(slot)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateSlotRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()

	if req == (dto.UpdateSlotRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor, ok := permissions.ActorFromContext(ctx)
	if !ok {
		return failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	slot, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get slot")

		return fmt.Errorf("failed to get slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return failure.NotFound("slot not found") // nolint:wrapcheck
	}

	if !permissions.CanWriteSlot(actor, slot.TaskerID) {
		return failure.ForbiddenError // nolint:wrapcheck
	}

	// Booked slots are frozen; their time range backs an active booking.
	if slot.IsBooked {
		return failure.BadRequestFromString("cannot modify a booked slot") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, actor.ID)
	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update slot")

		return fmt.Errorf("failed to update slot: %w", err)
	}

	s.invalidateListCaches(ctx)

	return nil
}

// Delete removes a slot; the database cascades the delete to any dependent
// booking row.
func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()

	actor, ok := permissions.ActorFromContext(ctx)
	if !ok {
		return failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	slot, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get slot")

		return fmt.Errorf("failed to get slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return failure.NotFound("slot not found") // nolint:wrapcheck
	}

	if !permissions.CanWriteSlot(actor, slot.TaskerID) {
		return failure.ForbiddenError // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete slot")

		return fmt.Errorf("failed to delete slot: %w", err)
	}

	s.invalidateListCaches(ctx)

	return nil
}

// validateSlot enforces the slot invariants: start before end, no past dates,
// and per-tasker uniqueness of the (date, start, end) triple.
func (s *serviceImpl) validateSlot(ctx context.Context, slot model.AvailabilitySlot) error {
	if !slot.StartTime.Before(slot.EndTime) {
		return failure.BadRequestFromString("end time must be after start time") // nolint:wrapcheck
	}

	today := timezone.Now().Format(constant.DateOnlyFormat)
	if slot.Date.Format(constant.DateOnlyFormat) < today {
		return failure.BadRequestFromString("cannot create availability for past dates") // nolint:wrapcheck
	}

	exists, err := s.repo.Exist(ctx, duplicateFilter(slot))
	if err != nil {
		log.Error().Err(err).Msg("failed to check for duplicate slot")

		return fmt.Errorf("failed to check for duplicate slot: %w", err)
	}

	if exists {
		return failure.Conflict("a slot with the same start and end time already exists") // nolint:wrapcheck
	}

	return nil
}

// insertSlot persists a slot, mapping a unique-constraint violation to the
// same conflict failure a pre-insert duplicate check produces. The constraint
// is the authority when two requests race past the Exist check.
func (s *serviceImpl) insertSlot(ctx context.Context, slot model.AvailabilitySlot) error {
	err := s.repo.Insert(ctx, slot)
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
		return failure.Conflict("a slot with the same start and end time already exists") // nolint:wrapcheck
	}

	log.Error().Err(err).Msg("failed to create slot")

	return fmt.Errorf("failed to create slot: %w", err)
}

func duplicateFilter(slot model.AvailabilitySlot) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTaskerID,
				Operator: gDto.FilterOperatorEq,
				Value:    slot.TaskerID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldDate,
				Operator: gDto.FilterOperatorEq,
				Value:    slot.Date.Format(constant.DateOnlyFormat),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStartTime,
				Operator: gDto.FilterOperatorEq,
				Value:    slot.StartTime.Format(constant.TimeOnlyFormat),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldEndTime,
				Operator: gDto.FilterOperatorEq,
				Value:    slot.EndTime.Format(constant.TimeOnlyFormat),
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllSlot)
		shared.InvalidateCaches(c, s.cache, cacheCountSlot)
	}()
}
