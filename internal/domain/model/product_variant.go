package model

import "github.com/shopspring/decimal"

// 購入単位となるSKU（サイズ/色の組み合わせなど）。
// 在庫と価格調整はバリアント側が持つ。
type ProductVariant struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64   `gorm:"not null;index" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"-"`

	//'Red / Large' のような表示名
	Name  string `gorm:"type:varchar(100);not null" json:"name"`
	Size  string `gorm:"type:varchar(50)" json:"size"`
	Color string `gorm:"type:varchar(50)" json:"color"`
	SKU   string `gorm:"type:varchar(50);not null;uniqueIndex;column:sku" json:"sku"`

	PriceAdjustment decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"price_adjustment"`

	//非負の在庫数。支払い確定時にだけ減る
	Stock int64 `gorm:"not null;default:0" json:"stock"`
}

// FinalPrice は base_price + price_adjustment。
// 常にカタログの現在値から導出する（Productのpreloadが前提）。
func (v ProductVariant) FinalPrice() decimal.Decimal {
	return v.Product.BasePrice.Add(v.PriceAdjustment)
}
