package service

import (
	"strings"

	"github.com/forkful/forkful/internal/models"
	"github.com/forkful/forkful/internal/repository"
)

// MenuService 菜单服务（分类与商品浏览、门店端维护）
type MenuService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewMenuService 创建菜单服务
func NewMenuService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *MenuService {
	return &MenuService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// ListCategories 分类列表（按排序值）
func (s *MenuService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// GetCategoryBySlug 按 slug 获取分类
func (s *MenuService) GetCategoryBySlug(slug string) (*models.Category, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrNotFound
	}
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// ListProducts 商品列表
func (s *MenuService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetProduct 商品详情
func (s *MenuService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetProductBySlug 按 slug 获取商品详情
func (s *MenuService) GetProductBySlug(slug string) (*models.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// QuoteUnitPrice 按定制选项试算单价
func (s *MenuService) QuoteUnitPrice(productID uint, options models.JSON) (models.Money, error) {
	product, err := s.GetProduct(productID)
	if err != nil {
		return models.Money{}, err
	}
	return resolveUnitPrice(product, options)
}

// CreateProduct 门店端新增商品
func (s *MenuService) CreateProduct(product *models.Product) error {
	if product == nil || strings.TrimSpace(product.Name) == "" {
		return ErrProductNotFound
	}
	return s.productRepo.Create(product)
}

// UpdateProduct 门店端更新商品
func (s *MenuService) UpdateProduct(product *models.Product) error {
	if product == nil || product.ID == 0 {
		return ErrProductNotFound
	}
	existing, err := s.productRepo.GetByID(product.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Update(product)
}

// DeleteProduct 门店端下架并删除商品
func (s *MenuService) DeleteProduct(id uint) error {
	existing, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

// CreateCategory 门店端新增分类
func (s *MenuService) CreateCategory(category *models.Category) error {
	if category == nil || strings.TrimSpace(category.Name) == "" {
		return ErrNotFound
	}
	return s.categoryRepo.Create(category)
}

// UpdateCategory 门店端更新分类
func (s *MenuService) UpdateCategory(category *models.Category) error {
	if category == nil || category.ID == 0 {
		return ErrNotFound
	}
	existing, err := s.categoryRepo.GetByID(category.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.categoryRepo.Update(category)
}

// DeleteCategory 门店端删除分类
func (s *MenuService) DeleteCategory(id uint) error {
	existing, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.categoryRepo.Delete(id)
}
