package model

import "time"

// 永続カートの明細。(cart_id, variant_id) で一意。
// 価格は保存しない。常にバリアントの現在価格から計算する。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"not null;uniqueIndex:idx_cart_variant" json:"cart_id"`
	VariantID int64     `gorm:"not null;uniqueIndex:idx_cart_variant;index" json:"variant_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
