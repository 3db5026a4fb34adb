package model

import "time"

// 永続カート。ユーザーにつき1つ（user_id unique）。
// チェックアウト後も行は残り、明細だけ消える。
type Cart struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
