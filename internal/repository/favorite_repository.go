package repository

import (
	"errors"

	"github.com/forkful/forkful/internal/models"

	"gorm.io/gorm"
)

// FavoriteRepository 收藏订单数据访问接口
type FavoriteRepository interface {
	ListByUser(userID uint) ([]models.FavoriteOrder, error)
	GetByIDAndUser(id, userID uint) (*models.FavoriteOrder, error)
	Create(favorite *models.FavoriteOrder) error
	Delete(id, userID uint) error
}

// GormFavoriteRepository GORM 实现
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository 创建收藏订单仓库
func NewFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// ListByUser 获取用户收藏列表
func (r *GormFavoriteRepository) ListByUser(userID uint) ([]models.FavoriteOrder, error) {
	favorites := make([]models.FavoriteOrder, 0)
	if err := r.db.Where("user_id = ?", userID).Order("id desc").Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

// GetByIDAndUser 获取用户收藏
func (r *GormFavoriteRepository) GetByIDAndUser(id, userID uint) (*models.FavoriteOrder, error) {
	var favorite models.FavoriteOrder
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&favorite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

// Create 创建收藏
func (r *GormFavoriteRepository) Create(favorite *models.FavoriteOrder) error {
	return r.db.Create(favorite).Error
}

// Delete 删除收藏（软删除）
func (r *GormFavoriteRepository) Delete(id, userID uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.FavoriteOrder{}).Error
}
