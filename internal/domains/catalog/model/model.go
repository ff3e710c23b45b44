package model

import "quickgig/shared/model"

const (
	ServiceTableName  = "services"
	ServiceEntityName = "service"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCategoryID  = "category_id"
)

const (
	CategoryTableName  = "categories"
	CategoryEntityName = "category"
)

const (
	TaskerSkillTableName  = "tasker_skills"
	TaskerSkillEntityName = "tasker_skill"

	FieldTaskerID  = "tasker_id"
	FieldServiceID = "service_id"
)

// Service is a catalog item a tasker can be booked for.
type Service struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Price       string `db:"price"`
	CategoryID  string `db:"category_id"`
	model.Metadata
}

type Category struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	model.Metadata
}

// TaskerSkill links a tasker to a catalog service they offer.
type TaskerSkill struct {
	ID        string `db:"id"`
	TaskerID  string `db:"tasker_id"`
	ServiceID string `db:"service_id"`
	model.Metadata
}
