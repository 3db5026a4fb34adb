package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"uuid"`
	CategoryID int64     `gorm:"not null;index" json:"category_id"`

	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text" json:"description"`

	//基本価格。バリアントの price_adjustment と合算して最終価格になる
	BasePrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"base_price"`

	IsActive   bool `gorm:"not null;default:true" json:"is_active"`
	IsFeatured bool `gorm:"not null;default:false" json:"is_featured"`

	//評価 0〜5
	Rating decimal.Decimal `gorm:"type:numeric(3,2);not null;default:0" json:"rating"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
