package models

import (
	"time"

	"gorm.io/gorm"
)

// Address 用户配送地址表
type Address struct {
	ID        uint           `gorm:"primarykey" json:"id"`                     // 主键
	UserID    uint           `gorm:"index;not null" json:"user_id"`            // 用户ID
	Label     string         `gorm:"type:varchar(50)" json:"label"`            // 地址标签（家 / 公司）
	Street    string         `gorm:"not null" json:"street"`                   // 街道
	City      string         `gorm:"not null" json:"city"`                     // 城市
	State     string         `gorm:"type:varchar(50)" json:"state"`            // 州 / 省
	ZipCode   string         `gorm:"type:varchar(20)" json:"zip_code"`         // 邮编
	Latitude  float64        `json:"latitude"`                                 // 纬度
	Longitude float64        `json:"longitude"`                                // 经度
	IsDefault bool           `gorm:"not null;default:false" json:"is_default"` // 是否默认地址
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                               // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                           // 软删除时间
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
