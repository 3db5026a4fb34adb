package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。price は購入時点で凍結し、以後カタログ価格が変わっても動かない。
type OrderItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64 `gorm:"not null;index" json:"order_id"`
	VariantID int64 `gorm:"not null;index" json:"variant_id"`

	Price    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Quantity int64           `gorm:"not null" json:"quantity"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
