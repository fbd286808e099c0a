package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem 购物车项
//
// 同一商品 + 相同定制选项合并为一行；OptionsKey 为选项的
// 规范化序列化结果（键名排序后的 JSON），用于唯一约束与精确匹配。
type CartItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                                                  // 主键
	UserID      uint           `gorm:"not null;uniqueIndex:idx_cart_user_product_opts" json:"user_id"`                        // 用户ID
	ProductID   uint           `gorm:"not null;uniqueIndex:idx_cart_user_product_opts" json:"product_id"`                     // 商品ID
	Name        string         `gorm:"not null" json:"name"`                                                                  // 商品名称快照
	UnitPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`                               // 单价快照（含规格与配料）
	Quantity    int            `gorm:"not null" json:"quantity"`                                                              // 数量
	OptionsJSON JSON           `gorm:"type:json" json:"options"`                                                              // 定制选项（规格、配料等）
	OptionsKey  string         `gorm:"type:varchar(500);not null;default:'';uniqueIndex:idx_cart_user_product_opts" json:"-"` // 选项规范化键
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                                               // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                                                               // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                                                        // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
