package repository

import (
	"app/internal/domain/model"
	"context"
)

// バリアントの取得。FinalPrice計算のため常にProductをpreloadして返す。
type VariantRepository interface {
	FindByID(ctx context.Context, id int64) (model.ProductVariant, error)

	// まとめて取得。見つからないIDは黙って落ちる
	ListByIDs(ctx context.Context, ids []int64) ([]model.ProductVariant, error)

	//商品詳細で使う
	ListByProductID(ctx context.Context, productID int64) ([]model.ProductVariant, error)
}
