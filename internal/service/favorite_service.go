package service

import (
	"encoding/json"
	"strings"

	"github.com/forkful/forkful/internal/models"
	"github.com/forkful/forkful/internal/repository"
)

// FavoriteService 收藏订单服务（常点组合一键复购）
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	orderService *OrderService
}

// NewFavoriteService 创建收藏订单服务
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, orderService *OrderService) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		orderService: orderService,
	}
}

// ListByUser 用户收藏列表
func (s *FavoriteService) ListByUser(userID uint) ([]models.FavoriteOrder, error) {
	return s.favoriteRepo.ListByUser(userID)
}

// Save 收藏一组商品
func (s *FavoriteService) Save(userID uint, name string, items []PlaceOrderItem) (*models.FavoriteOrder, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(items) == 0 {
		return nil, ErrFavoriteNotFound
	}
	snapshot := make(models.JSONArray, 0, len(items))
	for _, item := range items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return nil, ErrInvalidOrderItem
		}
		snapshot = append(snapshot, map[string]interface{}{
			"product_id":           item.ProductID,
			"quantity":             item.Quantity,
			"options":              item.Options,
			"special_instructions": item.SpecialInstructions,
		})
	}
	favorite := &models.FavoriteOrder{
		UserID:    userID,
		Name:      name,
		ItemsJSON: snapshot,
	}
	if err := s.favoriteRepo.Create(favorite); err != nil {
		return nil, err
	}
	return favorite, nil
}

// SaveFromOrder 将历史订单收藏为常点组合
func (s *FavoriteService) SaveFromOrder(userID uint, orderID uint, name string) (*models.FavoriteOrder, error) {
	order, err := s.orderService.GetOrderByUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	items := make([]PlaceOrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, PlaceOrderItem{
			ProductID:           item.ProductID,
			Quantity:            item.Quantity,
			Options:             item.OptionsJSON,
			SpecialInstructions: item.SpecialInstructions,
		})
	}
	if strings.TrimSpace(name) == "" {
		name = order.OrderNo
	}
	return s.Save(userID, name, items)
}

// Delete 删除收藏
func (s *FavoriteService) Delete(id, userID uint) error {
	favorite, err := s.favoriteRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return err
	}
	if favorite == nil {
		return ErrFavoriteNotFound
	}
	return s.favoriteRepo.Delete(id, userID)
}

// Reorder 以收藏的组合重新下单
func (s *FavoriteService) Reorder(userID uint, favoriteID uint, tip float64, deliveryAddress, paymentMethod models.JSON) (*models.Order, error) {
	favorite, err := s.favoriteRepo.GetByIDAndUser(favoriteID, userID)
	if err != nil {
		return nil, err
	}
	if favorite == nil {
		return nil, ErrFavoriteNotFound
	}
	items, err := decodeFavoriteItems(favorite.ItemsJSON)
	if err != nil {
		return nil, err
	}
	return s.orderService.PlaceOrder(PlaceOrderInput{
		UserID:          userID,
		Items:           items,
		Tip:             tip,
		DeliveryAddress: deliveryAddress,
		PaymentMethod:   paymentMethod,
	})
}

// decodeFavoriteItems 解析收藏快照，损坏的条目直接报错
func decodeFavoriteItems(snapshot models.JSONArray) ([]PlaceOrderItem, error) {
	if len(snapshot) == 0 {
		return nil, ErrFavoriteNotFound
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, ErrFavoriteNotFound
	}
	var items []PlaceOrderItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, ErrFavoriteNotFound
	}
	for _, item := range items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return nil, ErrInvalidOrderItem
		}
	}
	return items, nil
}
