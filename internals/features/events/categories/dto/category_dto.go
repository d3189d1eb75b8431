package dto

import (
	"strings"

	"campus_events_backend/internals/features/events/categories/model"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" form:"name" validate:"required,min=2,max=50"`
	Color       string `json:"color" form:"color" validate:"omitempty,hexcolor"`
	Description string `json:"description" form:"description" validate:"max=500"`
}

func (r *CreateCategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Color = strings.TrimSpace(r.Color)
	r.Description = strings.TrimSpace(r.Description)
}

func (r CreateCategoryRequest) ToModel() model.CategoryModel {
	m := model.CategoryModel{Name: r.Name, Color: r.Color}
	if m.Color == "" {
		m.Color = "#6c757d"
	}
	if r.Description != "" {
		d := r.Description
		m.Description = &d
	}
	return m
}
