package models

import (
	"time"

	"gorm.io/gorm"
)

// FavoriteOrder 收藏订单（常点组合，一键再来一单）
type FavoriteOrder struct {
	ID        uint           `gorm:"primarykey" json:"id"`          // 主键
	UserID    uint           `gorm:"index;not null" json:"user_id"` // 用户ID
	Name      string         `gorm:"not null" json:"name"`          // 收藏名称
	ItemsJSON JSONArray      `gorm:"type:json" json:"items"`        // 商品组合快照
	CreatedAt time.Time      `gorm:"index" json:"created_at"`       // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                // 软删除时间
}

// TableName 指定表名
func (FavoriteOrder) TableName() string {
	return "favorite_orders"
}
