package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"quickgig/infras/otel"
	"quickgig/infras/postgres"
	"quickgig/internal/domains/slot/model"
	"quickgig/shared/constant"
	gDto "quickgig/shared/dto"
	"quickgig/shared/logger"
	gRepo "quickgig/shared/repository"
	"quickgig/shared/timezone"
)

type Slot interface {
	Insert(ctx context.Context, model model.AvailabilitySlot) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.AvailabilitySlot, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.AvailabilitySlot, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id string) (model.AvailabilitySlot, error)
	SetBookedTx(ctx context.Context, tx *sqlx.Tx, id string, booked bool, modifiedBy string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.AvailabilitySlot]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Slot {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.AvailabilitySlot](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetForUpdateTx reads a slot row under an exclusive row lock. The lock is held
// until the surrounding transaction commits or rolls back, serializing
// concurrent reservation attempts on the same slot. A missing row is reported
// as a zero-valued model, matching the generic repository's Get behavior.
func (repo *repositoryImpl) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id string) (model.AvailabilitySlot, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.GetForUpdateTx")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT id, tasker_id, date, start_time, end_time, is_booked, created_at, modified_at, created_by, modified_by FROM %s WHERE id = $1 FOR UPDATE",
		model.TableName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var slot model.AvailabilitySlot

	err := tx.GetContext(ctx, &slot, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return slot, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return slot, fmt.Errorf("failed to lock slot row: %w", err)
	}

	return slot, nil
}

// SetBookedTx flips the is_booked flag inside the caller's transaction.
func (repo *repositoryImpl) SetBookedTx(ctx context.Context, tx *sqlx.Tx, id string, booked bool, modifiedBy string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.SetBookedTx")
	defer scope.End()

	fields := map[string]any{
		model.FieldIsBooked:      booked,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: modifiedBy,
	}

	return repo.UpdateTx(ctx, tx, fields, filterByID(id)) //nolint:wrapcheck
}

func filterByID(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}
