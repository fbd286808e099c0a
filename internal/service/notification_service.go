package service

import (
	"encoding/json"

	"github.com/forkful/forkful/internal/logger"
	"github.com/forkful/forkful/internal/repository"
)

// NotificationPreferences 通知偏好
type NotificationPreferences struct {
	PushEnabled          bool `json:"push_enabled"`
	EmailEnabled         bool `json:"email_enabled"`
	SpecialOffersEnabled bool `json:"special_offers_enabled"`
}

// NotificationPreferencesPatch 通知偏好部分更新
//
// 仅更新显式携带的字段，缺省字段保持原值。
type NotificationPreferencesPatch struct {
	PushEnabled          *bool `json:"push_enabled"`
	EmailEnabled         *bool `json:"email_enabled"`
	SpecialOffersEnabled *bool `json:"special_offers_enabled"`
}

// defaultNotificationPreferences 默认全部开启
func defaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		PushEnabled:          true,
		EmailEnabled:         true,
		SpecialOffersEnabled: true,
	}
}

// NotificationService 通知偏好服务
type NotificationService struct {
	settingRepo repository.NotificationSettingRepository
}

// NewNotificationService 创建通知偏好服务
func NewNotificationService(settingRepo repository.NotificationSettingRepository) *NotificationService {
	return &NotificationService{settingRepo: settingRepo}
}

// GetPreferences 读取用户通知偏好
//
// 无记录或存量数据解析失败时回落默认值，不向调用方报错。
func (s *NotificationService) GetPreferences(userID uint) (NotificationPreferences, error) {
	prefs := defaultNotificationPreferences()
	if userID == 0 {
		return prefs, nil
	}
	setting, err := s.settingRepo.GetByUser(userID)
	if err != nil {
		return prefs, err
	}
	if setting == nil || setting.ValueJSON == "" {
		return prefs, nil
	}
	if err := json.Unmarshal([]byte(setting.ValueJSON), &prefs); err != nil {
		logger.Warnw("notification_preferences_corrupt",
			"user_id", userID,
			"error", err,
		)
		return defaultNotificationPreferences(), nil
	}
	return prefs, nil
}

// UpdatePreferences 部分更新用户通知偏好
func (s *NotificationService) UpdatePreferences(userID uint, patch NotificationPreferencesPatch) (NotificationPreferences, error) {
	prefs, err := s.GetPreferences(userID)
	if err != nil {
		return prefs, err
	}
	if patch.PushEnabled != nil {
		prefs.PushEnabled = *patch.PushEnabled
	}
	if patch.EmailEnabled != nil {
		prefs.EmailEnabled = *patch.EmailEnabled
	}
	if patch.SpecialOffersEnabled != nil {
		prefs.SpecialOffersEnabled = *patch.SpecialOffersEnabled
	}
	raw, err := json.Marshal(prefs)
	if err != nil {
		return prefs, err
	}
	if _, err := s.settingRepo.Upsert(userID, string(raw)); err != nil {
		return prefs, err
	}
	return prefs, nil
}
