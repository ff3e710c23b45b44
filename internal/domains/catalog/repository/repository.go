package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"quickgig/infras/otel"
	"quickgig/infras/postgres"
	"quickgig/internal/domains/catalog/model"
	gDto "quickgig/shared/dto"
	gRepo "quickgig/shared/repository"
)

type Catalog interface {
	GetService(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Service, error)
	GetAllServices(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Service, error)
	CountServices(ctx context.Context, filter gDto.FilterGroup) (int, error)
	TaskerOffers(ctx context.Context, taskerID, serviceID string) (bool, error)
}

type repositoryImpl struct {
	services gRepo.Repository[model.Service]
	skills   gRepo.Repository[model.TaskerSkill]
	db       *postgres.Connection
	otel     otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Catalog {
	return &repositoryImpl{
		services: gRepo.NewRepository[model.Service](model.ServiceEntityName, model.ServiceTableName, model.FieldID, db, otel),
		skills:   gRepo.NewRepository[model.TaskerSkill](model.TaskerSkillEntityName, model.TaskerSkillTableName, model.FieldID, db, otel),
		db:       db,
		otel:     otel,
	}
}

func (repo *repositoryImpl) GetService(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Service, error) {
	return repo.services.Get(ctx, filter, columns...)
}

func (repo *repositoryImpl) GetAllServices(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Service, error) {
	return repo.services.GetAll(ctx, params, filter, columns...)
}

func (repo *repositoryImpl) CountServices(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return repo.services.Count(ctx, filter)
}

// TaskerOffers reports whether the tasker's registered skill set contains the service.
func (repo *repositoryImpl) TaskerOffers(ctx context.Context, taskerID, serviceID string) (bool, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTaskerID,
				Operator: gDto.FilterOperatorEq,
				Value:    taskerID,
				Table:    model.TaskerSkillTableName,
			},
			gDto.Filter{
				Field:    model.FieldServiceID,
				Operator: gDto.FilterOperatorEq,
				Value:    serviceID,
				Table:    model.TaskerSkillTableName,
			},
		},
	}

	return repo.skills.Exist(ctx, filter)
}
