package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// 注文。作成後は status 以外を変更しない。
// ユーザー削除時は user_id を NULL にして注文自体は残す。
type Order struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID *int64 `gorm:"index" json:"user_id,omitempty"`

	//人間が読める一意な注文番号（英大文字+数字の12桁）
	TransactionID string `gorm:"type:varchar(12);not null;uniqueIndex" json:"transaction_id"`

	Status OrderStatus `gorm:"type:varchar(20);not null;index;default:'pending'" json:"status"`

	//確定時点の合計金額スナップショット
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"total_amount"`

	MobileMoneyReference string `gorm:"type:varchar(100)" json:"mobile_money_reference,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
