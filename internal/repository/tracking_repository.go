package repository

import (
	"errors"

	"github.com/forkful/forkful/internal/models"

	"gorm.io/gorm"
)

// TrackingRepository 配送跟踪数据访问接口
type TrackingRepository interface {
	GetByOrderID(orderID uint) (*models.OrderTracking, error)
	Create(tracking *models.OrderTracking) error
	Update(tracking *models.OrderTracking) error
	UpdateFields(orderID uint, updates map[string]interface{}) error
	WithTx(tx *gorm.DB) *GormTrackingRepository
}

// GormTrackingRepository GORM 实现
type GormTrackingRepository struct {
	db *gorm.DB
}

// NewTrackingRepository 创建配送跟踪仓库
func NewTrackingRepository(db *gorm.DB) *GormTrackingRepository {
	return &GormTrackingRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTrackingRepository) WithTx(tx *gorm.DB) *GormTrackingRepository {
	if tx == nil {
		return r
	}
	return &GormTrackingRepository{db: tx}
}

// GetByOrderID 获取订单的配送跟踪记录
func (r *GormTrackingRepository) GetByOrderID(orderID uint) (*models.OrderTracking, error) {
	var tracking models.OrderTracking
	err := r.db.Where("order_id = ?", orderID).First(&tracking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tracking, nil
}

// Create 创建配送跟踪记录
func (r *GormTrackingRepository) Create(tracking *models.OrderTracking) error {
	if tracking == nil {
		return nil
	}
	return r.db.Create(tracking).Error
}

// Update 更新配送跟踪记录
func (r *GormTrackingRepository) Update(tracking *models.OrderTracking) error {
	if tracking == nil {
		return nil
	}
	return r.db.Save(tracking).Error
}

// UpdateFields 按订单 ID 更新指定字段
func (r *GormTrackingRepository) UpdateFields(orderID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.OrderTracking{}).Where("order_id = ?", orderID).Updates(updates).Error
}
