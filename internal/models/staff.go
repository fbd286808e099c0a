package models

import (
	"time"

	"gorm.io/gorm"
)

// Staff 门店员工表（后厨 / 店长，负责推进订单状态）
type Staff struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                           // 主键
	Username           string         `gorm:"uniqueIndex;not null" json:"username"`           // 员工账号
	PasswordHash       string         `gorm:"not null" json:"-"`                              // 密码哈希（不返回给前端）
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                    // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                                 // 该时间点前签发的 Token 失效
	IsManager          bool           `gorm:"not null;default:false;index" json:"is_manager"` // 是否店长（免权限校验）
	LastLoginAt        *time.Time     `json:"last_login_at"`                                  // 最后登录时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                        // 创建时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                 // 软删除时间
}

// TableName 指定表名
func (Staff) TableName() string {
	return "staffs"
}
