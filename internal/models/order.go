package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo           string         `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单编号
	UserID            uint           `gorm:"index;not null" json:"user_id"`                             // 用户ID
	Status            string         `gorm:"index;not null" json:"status"`                              // 订单状态
	Subtotal          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`     // 商品小计
	Tax               Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax"`          // 税费
	DeliveryFee       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_fee"` // 配送费
	Tip               Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tip"`          // 小费
	TotalAmount       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 实付总额
	DeliveryAddress   JSON           `gorm:"type:json" json:"delivery_address"`                         // 配送地址快照
	PaymentMethod     JSON           `gorm:"type:json" json:"payment_method"`                           // 支付方式快照
	EstimatedDelivery *time.Time     `gorm:"index" json:"estimated_delivery"`                           // 预计送达时间
	DeliveredAt       *time.Time     `gorm:"index" json:"delivered_at"`                                 // 送达时间
	CanceledAt        *time.Time     `gorm:"index" json:"canceled_at"`                                  // 取消时间
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	// 关联
	Items    []OrderItem    `gorm:"foreignKey:OrderID" json:"items,omitempty"`    // 订单项
	Tracking *OrderTracking `gorm:"foreignKey:OrderID" json:"tracking,omitempty"` // 配送跟踪记录
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
