package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)

	// 新規なら数量セット、既存なら加算
	UpsertByCartAndVariant(ctx context.Context, cartID int64, variantID int64, addQty int64) error

	// 無ければ何もしない（エラーにしない）
	DeleteByCartAndVariant(ctx context.Context, cartID int64, variantID int64) error
}
