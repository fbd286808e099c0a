package service

import (
	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/constants"
	"github.com/forkful/forkful/internal/models"
	"github.com/forkful/forkful/internal/repository"
)

// SettingService 门店设置服务
type SettingService struct {
	repo  repository.SettingRepository
	store config.StoreConfig
}

// NewSettingService 创建门店设置服务
func NewSettingService(repo repository.SettingRepository, store config.StoreConfig) *SettingService {
	return &SettingService{repo: repo, store: store}
}

// GetStoreConfig 获取门店配置（数据库覆盖默认值）
func (s *SettingService) GetStoreConfig() (models.JSON, error) {
	data := models.JSON{
		"name":      s.store.Name,
		"latitude":  s.store.Latitude,
		"longitude": s.store.Longitude,
	}

	setting, err := s.repo.GetByKey(constants.SettingKeyStoreConfig)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return data, nil
	}
	for k, v := range setting.ValueJSON {
		data[k] = v
	}
	return data, nil
}

// GetByKey 获取设置
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// UpdateStoreConfig 更新门店配置
func (s *SettingService) UpdateStoreConfig(value map[string]interface{}) (models.JSON, error) {
	setting, err := s.repo.Upsert(constants.SettingKeyStoreConfig, value)
	if err != nil {
		return nil, err
	}
	return setting.ValueJSON, nil
}
