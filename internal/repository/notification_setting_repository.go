package repository

import (
	"errors"

	"github.com/forkful/forkful/internal/models"

	"gorm.io/gorm"
)

// NotificationSettingRepository 通知偏好数据访问接口
type NotificationSettingRepository interface {
	GetByUser(userID uint) (*models.NotificationSetting, error)
	Upsert(userID uint, value string) (*models.NotificationSetting, error)
}

// GormNotificationSettingRepository GORM 实现
type GormNotificationSettingRepository struct {
	db *gorm.DB
}

// NewNotificationSettingRepository 创建通知偏好仓库
func NewNotificationSettingRepository(db *gorm.DB) *GormNotificationSettingRepository {
	return &GormNotificationSettingRepository{db: db}
}

// GetByUser 获取用户通知偏好
func (r *GormNotificationSettingRepository) GetByUser(userID uint) (*models.NotificationSetting, error) {
	var setting models.NotificationSetting
	if err := r.db.Where("user_id = ?", userID).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// Upsert 更新或创建用户通知偏好
func (r *GormNotificationSettingRepository) Upsert(userID uint, value string) (*models.NotificationSetting, error) {
	setting, err := r.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		setting = &models.NotificationSetting{
			UserID:    userID,
			ValueJSON: value,
		}
		if err := r.db.Create(setting).Error; err != nil {
			return nil, err
		}
		return setting, nil
	}

	setting.ValueJSON = value
	if err := r.db.Save(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}
