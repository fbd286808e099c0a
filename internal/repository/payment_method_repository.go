package repository

import (
	"errors"

	"github.com/forkful/forkful/internal/models"

	"gorm.io/gorm"
)

// PaymentMethodRepository 支付方式数据访问接口
type PaymentMethodRepository interface {
	ListByUser(userID uint) ([]models.PaymentMethod, error)
	GetByIDAndUser(id, userID uint) (*models.PaymentMethod, error)
	Create(method *models.PaymentMethod) error
	Update(method *models.PaymentMethod) error
	Delete(id, userID uint) error
	ClearDefault(userID uint) error
}

// GormPaymentMethodRepository GORM 实现
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository 创建支付方式仓库
func NewPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// ListByUser 获取用户支付方式列表
func (r *GormPaymentMethodRepository) ListByUser(userID uint) ([]models.PaymentMethod, error) {
	methods := make([]models.PaymentMethod, 0)
	if err := r.db.Where("user_id = ?", userID).Order("is_default desc, id asc").Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

// GetByIDAndUser 获取用户支付方式
func (r *GormPaymentMethodRepository) GetByIDAndUser(id, userID uint) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&method).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &method, nil
}

// Create 创建支付方式
func (r *GormPaymentMethodRepository) Create(method *models.PaymentMethod) error {
	return r.db.Create(method).Error
}

// Update 更新支付方式
func (r *GormPaymentMethodRepository) Update(method *models.PaymentMethod) error {
	return r.db.Save(method).Error
}

// Delete 删除支付方式（软删除）
func (r *GormPaymentMethodRepository) Delete(id, userID uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.PaymentMethod{}).Error
}

// ClearDefault 清除用户的默认支付方式标记
func (r *GormPaymentMethodRepository) ClearDefault(userID uint) error {
	return r.db.Model(&models.PaymentMethod{}).Where("user_id = ?", userID).Update("is_default", false).Error
}
