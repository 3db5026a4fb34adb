package model

// 商品カテゴリ（親子あり）
type Category struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"type:varchar(200);not null" json:"name"`
	Slug     string `gorm:"type:varchar(200);not null;uniqueIndex" json:"slug"`
	ParentID *int64 `gorm:"index" json:"parent_id,omitempty"`

	//Bootstrapアイコンクラス（bi bi-tv など）
	Icon string `gorm:"type:varchar(100)" json:"icon"`

	//トップページに出すか
	IsFeatured bool `gorm:"not null;default:false" json:"is_featured"`
}
