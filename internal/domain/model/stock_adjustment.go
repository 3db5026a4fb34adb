package model

import "time"

//在庫変動の履歴。支払い確定時の減算と在庫不足の記録に使う

type StockAdjustment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VariantID int64     `gorm:"not null;index" json:"variant_id"`
	Delta     int64     `gorm:"not null" json:"delta"`
	Reason    string    `gorm:"type:varchar(255);not null" json:"reason"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
