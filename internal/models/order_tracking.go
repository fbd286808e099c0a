package models

import (
	"time"
)

// OrderTracking 配送跟踪记录
//
// Status 始终与订单状态一致：任何修改订单状态的操作必须在同一
// 事务内同步本表的 Status 与 UpdatedAt。
type OrderTracking struct {
	ID            uint      `gorm:"primarykey" json:"id"`                   // 主键
	OrderID       uint      `gorm:"uniqueIndex;not null" json:"order_id"`   // 订单ID
	Status        string    `gorm:"index;not null" json:"status"`           // 跟踪状态（与订单状态同步）
	CourierName   string    `gorm:"type:varchar(100)" json:"courier_name"`  // 骑手姓名
	CourierPhone  string    `gorm:"type:varchar(50)" json:"courier_phone"`  // 骑手电话
	CourierPhoto  string    `gorm:"type:varchar(500)" json:"courier_photo"` // 骑手头像
	CourierLat    *float64  `json:"courier_lat"`                            // 骑手当前纬度
	CourierLng    *float64  `json:"courier_lng"`                            // 骑手当前经度
	EstimatedTime string    `gorm:"type:varchar(50)" json:"estimated_time"` // 预计剩余时间文案
	UpdatedAt     time.Time `gorm:"index" json:"updated_at"`                // 最后更新时间
	CreatedAt     time.Time `json:"created_at"`                             // 创建时间
}

// TableName 指定表名
func (OrderTracking) TableName() string {
	return "order_trackings"
}
