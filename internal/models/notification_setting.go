package models

// NotificationSetting 用户通知偏好（按用户一行，JSON 存储）
//
// 偏好以 JSON 块整体存取，读取时解析失败回落默认值，避免
// 历史数据损坏导致接口报错。
type NotificationSetting struct {
	UserID    uint   `gorm:"primarykey" json:"user_id"` // 用户ID
	ValueJSON string `gorm:"type:text" json:"value"`    // 偏好内容（原始 JSON）
}

// TableName 指定表名
func (NotificationSetting) TableName() string {
	return "notification_settings"
}
