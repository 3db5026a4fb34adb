package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type VariantGormRepository struct {
	db *gorm.DB
}

// DI
func NewVariantGormRepository(db *gorm.DB) *VariantGormRepository {
	return &VariantGormRepository{db: db}
}

// IDでバリアントを取得。FinalPrice用にProductも読む
func (r *VariantGormRepository) FindByID(ctx context.Context, id int64) (model.ProductVariant, error) {
	var v model.ProductVariant

	err := r.db.WithContext(ctx).
		Preload("Product").
		First(&v, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProductVariant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductVariant{}, err
	}
	return v, nil
}

// IDのリストでまとめて取得。存在しないIDは結果に含まれないだけ
func (r *VariantGormRepository) ListByIDs(ctx context.Context, ids []int64) ([]model.ProductVariant, error) {
	if len(ids) == 0 {
		return []model.ProductVariant{}, nil
	}

	var variants []model.ProductVariant

	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id in ?", ids).
		Find(&variants).Error; err != nil {
		return []model.ProductVariant{}, err
	}

	return variants, nil
}

// 商品のバリアント一覧
func (r *VariantGormRepository) ListByProductID(ctx context.Context, productID int64) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant

	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("product_id = ?", productID).
		Order("id asc").
		Find(&variants).Error; err != nil {
		return []model.ProductVariant{}, err
	}

	return variants, nil
}
