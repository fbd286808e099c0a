package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentMethod 用户支付方式表（仅存展示快照，不做真实扣款）
type PaymentMethod struct {
	ID        uint           `gorm:"primarykey" json:"id"`                     // 主键
	UserID    uint           `gorm:"index;not null" json:"user_id"`            // 用户ID
	Kind      string         `gorm:"type:varchar(20);not null" json:"kind"`    // 类型（card / cash）
	Brand     string         `gorm:"type:varchar(50)" json:"brand"`            // 卡品牌（Visa / Mastercard）
	Last4     string         `gorm:"type:varchar(4)" json:"last4"`             // 卡号后四位
	ExpMonth  int            `json:"exp_month"`                                // 过期月
	ExpYear   int            `json:"exp_year"`                                 // 过期年
	IsDefault bool           `gorm:"not null;default:false" json:"is_default"` // 是否默认支付方式
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                               // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                           // 软删除时间
}

// TableName 指定表名
func (PaymentMethod) TableName() string {
	return "payment_methods"
}
