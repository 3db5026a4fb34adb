package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	// ユーザーのカートを取得し、無ければ作成（user_id uniqueが前提）
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)

	// 明細の全削除。カート行自体は残す
	Clear(ctx context.Context, cartID int64) error
}
