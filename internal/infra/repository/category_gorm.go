package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

// 親を持たないカテゴリだけを返す
func (r *CategoryGormRepository) ListTopLevel(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category

	if err := r.db.WithContext(ctx).
		Where("parent_id is null").
		Order("name asc").
		Find(&categories).Error; err != nil {
		return []model.Category{}, err
	}

	return categories, nil
}
