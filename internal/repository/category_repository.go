package repository

import (
	"app/internal/domain/model"
	"context"
)

type CategoryRepository interface {
	//親を持たないカテゴリ一覧
	ListTopLevel(ctx context.Context) ([]model.Category, error)
}
