package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/constants"
	"github.com/forkful/forkful/internal/models"
	"github.com/forkful/forkful/internal/repository"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// TrackingService 配送跟踪服务
//
// 骑手位置由门店坐标向订单配送地址线性插值模拟，插值进度按
// 预计送达时间推算。
type TrackingService struct {
	orderRepo    repository.OrderRepository
	trackingRepo repository.TrackingRepository
	store        config.StoreConfig
	fulfillment  config.FulfillmentConfig
}

// NewTrackingService 创建配送跟踪服务
func NewTrackingService(orderRepo repository.OrderRepository, trackingRepo repository.TrackingRepository, store config.StoreConfig, fulfillment config.FulfillmentConfig) *TrackingService {
	return &TrackingService{
		orderRepo:    orderRepo,
		trackingRepo: trackingRepo,
		store:        store,
		fulfillment:  fulfillment,
	}
}

// AssignCourierInput 指派骑手输入
type AssignCourierInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Photo string `json:"photo"`
}

// GetTrackingByUser 获取用户订单的配送跟踪
func (s *TrackingService) GetTrackingByUser(orderID uint, userID uint) (*models.OrderTracking, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Tracking == nil {
		return nil, ErrTrackingNotFound
	}
	return order.Tracking, nil
}

// AssignCourier 指派骑手（初始位置为门店坐标）
func (s *TrackingService) AssignCourier(orderID uint, input AssignCourierInput) (*models.OrderTracking, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTrackingNotFound
	}
	tracking, err := s.trackingRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if tracking == nil {
		return nil, ErrTrackingNotFound
	}
	lat := s.store.Latitude
	lng := s.store.Longitude
	updates := map[string]interface{}{
		"courier_name":  name,
		"courier_phone": strings.TrimSpace(input.Phone),
		"courier_photo": strings.TrimSpace(input.Photo),
		"courier_lat":   lat,
		"courier_lng":   lng,
		"updated_at":    time.Now(),
	}
	if err := s.trackingRepo.UpdateFields(orderID, updates); err != nil {
		return nil, err
	}
	return s.trackingRepo.GetByOrderID(orderID)
}

// RefreshCourierPosition 刷新骑手位置
//
// 返回值第二项表示配送是否仍在进行，调用方据此决定是否继续
// 安排下一次刷新。
func (s *TrackingService) RefreshCourierPosition(orderID uint) (*models.OrderTracking, bool, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, false, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, false, ErrOrderNotFound
	}
	if order.Tracking == nil {
		return nil, false, ErrTrackingNotFound
	}
	if order.Status != constants.OrderStatusOutForDelivery {
		return order.Tracking, false, nil
	}

	destination, ok := destinationOf(order)
	if !ok {
		// 地址缺少坐标时仅刷新预计时间
		updates := map[string]interface{}{
			"estimated_time": s.estimatedTimeText(order),
			"updated_at":     time.Now(),
		}
		if err := s.trackingRepo.UpdateFields(orderID, updates); err != nil {
			return nil, false, err
		}
		tracking, err := s.trackingRepo.GetByOrderID(orderID)
		return tracking, true, err
	}

	origin := orb.Point{s.store.Longitude, s.store.Latitude}
	progress := s.deliveryProgress(order)
	position := interpolate(origin, destination, progress)

	estimated := s.estimatedTimeText(order)
	if geo.DistanceHaversine(position, destination) < 100 {
		estimated = "Arriving now"
	}

	updates := map[string]interface{}{
		"courier_lat":    position.Lat(),
		"courier_lng":    position.Lon(),
		"estimated_time": estimated,
		"updated_at":     time.Now(),
	}
	if err := s.trackingRepo.UpdateFields(orderID, updates); err != nil {
		return nil, false, err
	}
	tracking, err := s.trackingRepo.GetByOrderID(orderID)
	return tracking, true, err
}

// deliveryProgress 配送进度，取值范围 [0, 1]
func (s *TrackingService) deliveryProgress(order *models.Order) float64 {
	window := float64(s.fulfillment.DeliverDelaySeconds)
	if window <= 0 || order.EstimatedDelivery == nil {
		return 1
	}
	remaining := time.Until(*order.EstimatedDelivery).Seconds()
	progress := 1 - remaining/window
	return math.Min(1, math.Max(0, progress))
}

func (s *TrackingService) estimatedTimeText(order *models.Order) string {
	if order.EstimatedDelivery == nil {
		return ""
	}
	remaining := time.Until(*order.EstimatedDelivery)
	minutes := int(math.Ceil(remaining.Minutes()))
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%d min", minutes)
}

// destinationOf 从配送地址快照解析目的地坐标
func destinationOf(order *models.Order) (orb.Point, bool) {
	lat, okLat := jsonFloat(order.DeliveryAddress, "latitude")
	lng, okLng := jsonFloat(order.DeliveryAddress, "longitude")
	if !okLat || !okLng {
		return orb.Point{}, false
	}
	return orb.Point{lng, lat}, true
}

func jsonFloat(data models.JSON, key string) (float64, bool) {
	raw, ok := data[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func interpolate(origin, destination orb.Point, progress float64) orb.Point {
	return orb.Point{
		origin[0] + (destination[0]-origin[0])*progress,
		origin[1] + (destination[1]-origin[1])*progress,
	}
}
