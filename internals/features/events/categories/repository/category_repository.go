package repository

import (
	"context"

	"campus_events_backend/internals/features/events/categories/model"

	"gorm.io/gorm"
)

func ListCategories(ctx context.Context, db *gorm.DB) ([]model.CategoryModel, error) {
	var out []model.CategoryModel
	err := db.WithContext(ctx).Order("category_name ASC").Find(&out).Error
	return out, err
}

func CreateCategory(ctx context.Context, db *gorm.DB, c *model.CategoryModel) error {
	return db.WithContext(ctx).Create(c).Error
}
