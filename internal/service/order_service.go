package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/constants"
	"github.com/forkful/forkful/internal/logger"
	"github.com/forkful/forkful/internal/models"
	"github.com/forkful/forkful/internal/queue"
	"github.com/forkful/forkful/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo    repository.OrderRepository
	trackingRepo repository.TrackingRepository
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	pricing      *PricingService
	queueClient  *queue.Client
	fulfillment  config.FulfillmentConfig
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, trackingRepo repository.TrackingRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository, pricing *PricingService, queueClient *queue.Client, fulfillment config.FulfillmentConfig) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		trackingRepo: trackingRepo,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		pricing:      pricing,
		queueClient:  queueClient,
		fulfillment:  fulfillment,
	}
}

// PlaceOrderItem 下单项输入
type PlaceOrderItem struct {
	ProductID           uint        `json:"product_id"`
	Quantity            int         `json:"quantity"`
	Options             models.JSON `json:"options"`
	SpecialInstructions string      `json:"special_instructions"`
}

// PlaceOrderInput 下单输入
//
// Items 为空时从用户购物车取货并在下单成功后清空购物车。
type PlaceOrderInput struct {
	UserID          uint
	Items           []PlaceOrderItem
	Tip             float64
	DeliveryAddress models.JSON
	PaymentMethod   models.JSON
}

// PlaceOrder 创建订单
//
// 订单与配送跟踪记录在同一事务内创建，初始状态均为 pending。
func (s *OrderService) PlaceOrder(input PlaceOrderInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrOrderCreateFailed
	}

	fromCart := len(input.Items) == 0
	items, err := s.buildOrderItems(input)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	tip := models.NewMoneyFromFloat(input.Tip)
	if tip.Decimal.IsNegative() {
		return nil, ErrOrderCreateFailed
	}
	totals := s.pricing.InitialOrderTotals(items, tip)

	now := time.Now()
	estimated := now.Add(time.Duration(s.estimatedDeliveryMinutes()) * time.Minute)
	order := &models.Order{
		OrderNo:           generateOrderNo(),
		UserID:            input.UserID,
		Status:            constants.OrderStatusPending,
		Subtotal:          totals.Subtotal,
		Tax:               totals.Tax,
		DeliveryFee:       totals.DeliveryFee,
		Tip:               totals.Tip,
		TotalAmount:       totals.Total,
		DeliveryAddress:   input.DeliveryAddress,
		PaymentMethod:     input.PaymentMethod,
		EstimatedDelivery: &estimated,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		if err := orderRepo.Create(order, items); err != nil {
			return ErrOrderCreateFailed
		}
		tracking := &models.OrderTracking{
			OrderID:       order.ID,
			Status:        constants.OrderStatusPending,
			EstimatedTime: fmt.Sprintf("%d min", s.estimatedDeliveryMinutes()),
		}
		if err := s.trackingRepo.WithTx(tx).Create(tracking); err != nil {
			return ErrOrderCreateFailed
		}
		if fromCart {
			if err := s.cartRepo.WithTx(tx).ClearByUser(input.UserID); err != nil {
				return ErrOrderCreateFailed
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.enqueueAdvance(order.ID, constants.OrderStatusPreparing, s.fulfillment.PrepareDelaySeconds)

	return s.orderRepo.GetByID(order.ID)
}

func (s *OrderService) buildOrderItems(input PlaceOrderInput) ([]models.OrderItem, error) {
	if len(input.Items) > 0 {
		items := make([]models.OrderItem, 0, len(input.Items))
		for _, entry := range input.Items {
			item, err := s.buildOrderItem(entry)
			if err != nil {
				return nil, err
			}
			items = append(items, *item)
		}
		return items, nil
	}

	cartItems, err := s.cartRepo.ListByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	items := make([]models.OrderItem, 0, len(cartItems))
	for _, line := range cartItems {
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			Name:        line.Name,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			TotalPrice:  models.NewMoneyFromDecimal(lineSubtotal(line.UnitPrice, line.Quantity)),
			OptionsJSON: line.OptionsJSON,
		})
	}
	return items, nil
}

func (s *OrderService) buildOrderItem(entry PlaceOrderItem) (*models.OrderItem, error) {
	if entry.ProductID == 0 || entry.Quantity <= 0 {
		return nil, ErrInvalidOrderItem
	}
	product, err := s.productRepo.GetByID(entry.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductInactive
	}
	unitPrice, err := resolveUnitPrice(product, entry.Options)
	if err != nil {
		return nil, err
	}
	return &models.OrderItem{
		ProductID:           product.ID,
		Name:                product.Name,
		UnitPrice:           unitPrice,
		Quantity:            entry.Quantity,
		TotalPrice:          models.NewMoneyFromDecimal(lineSubtotal(unitPrice, entry.Quantity)),
		OptionsJSON:         entry.Options,
		SpecialInstructions: entry.SpecialInstructions,
	}, nil
}

// GetOrderByUser 获取用户订单详情
func (s *OrderService) GetOrderByUser(orderID uint, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderByUserOrderNo 按订单编号获取用户订单详情
func (s *OrderService) GetOrderByUserOrderNo(orderNo string, userID uint) (*models.Order, error) {
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNoAndUser(orderNo, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByUser 用户订单列表
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(filter)
}

// ListOrdersForStaff 门店端订单列表
func (s *OrderService) ListOrdersForStaff(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListStaff(filter)
}

// GetOrderForStaff 门店端订单详情
func (s *OrderService) GetOrderForStaff(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// CancelOrder 用户取消订单
//
// 终态订单不可取消；取消对订单表与跟踪表一并生效。
func (s *OrderService) CancelOrder(orderID uint, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if isTerminalStatus(order.Status) {
		return nil, ErrOrderCancelNotAllowed
	}
	if err := s.applyStatus(order.ID, constants.OrderStatusCancelled); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(order.ID)
}

// UpdateOrderStatus 推进订单状态（门店端与履约任务共用）
func (s *OrderService) UpdateOrderStatus(orderID uint, targetStatus string) (*models.Order, error) {
	if !isValidOrderStatus(targetStatus) {
		return nil, ErrOrderStatusInvalid
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == targetStatus {
		return order, nil
	}
	if !isTransitionAllowed(order.Status, targetStatus) {
		return nil, ErrOrderStatusInvalid
	}
	if err := s.applyStatus(order.ID, targetStatus); err != nil {
		return nil, err
	}
	s.enqueueFollowUp(order.ID, targetStatus)
	return s.orderRepo.GetByID(order.ID)
}

// applyStatus 在同一事务内同步订单与跟踪记录的状态
func (s *OrderService) applyStatus(orderID uint, targetStatus string) error {
	now := time.Now()
	return models.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"updated_at": now,
		}
		switch targetStatus {
		case constants.OrderStatusDelivered:
			updates["delivered_at"] = now
		case constants.OrderStatusCancelled:
			updates["canceled_at"] = now
		}
		if err := s.orderRepo.WithTx(tx).UpdateStatus(orderID, targetStatus, updates); err != nil {
			return ErrOrderUpdateFailed
		}
		trackingUpdates := map[string]interface{}{
			"status":     targetStatus,
			"updated_at": now,
		}
		if targetStatus == constants.OrderStatusDelivered {
			trackingUpdates["estimated_time"] = "0 min"
		}
		if err := s.trackingRepo.WithTx(tx).UpdateFields(orderID, trackingUpdates); err != nil {
			return ErrOrderUpdateFailed
		}
		return nil
	})
}

// enqueueFollowUp 按履约节奏推送后续任务
func (s *OrderService) enqueueFollowUp(orderID uint, reachedStatus string) {
	switch reachedStatus {
	case constants.OrderStatusPreparing:
		s.enqueueAdvance(orderID, constants.OrderStatusOutForDelivery, s.fulfillment.DispatchDelaySeconds)
	case constants.OrderStatusOutForDelivery:
		s.enqueueAdvance(orderID, constants.OrderStatusDelivered, s.fulfillment.DeliverDelaySeconds)
		s.enqueueCourierRefresh(orderID)
	}
}

func (s *OrderService) enqueueAdvance(orderID uint, targetStatus string, delaySeconds int) {
	if !s.fulfillment.Enabled || !s.queueClient.Enabled() {
		return
	}
	payload := queue.OrderAdvanceStatusPayload{OrderID: orderID, TargetStatus: targetStatus}
	if err := s.queueClient.EnqueueOrderAdvanceStatus(payload, time.Duration(delaySeconds)*time.Second); err != nil {
		logger.Warnw("order_enqueue_advance_failed",
			"order_id", orderID,
			"target_status", targetStatus,
			"error", err,
		)
	}
}

func (s *OrderService) enqueueCourierRefresh(orderID uint) {
	if !s.fulfillment.Enabled || !s.queueClient.Enabled() {
		return
	}
	payload := queue.CourierUpdateLocationPayload{OrderID: orderID}
	delay := time.Duration(s.fulfillment.CourierUpdateSeconds) * time.Second
	if err := s.queueClient.EnqueueCourierUpdateLocation(payload, delay); err != nil {
		logger.Warnw("order_enqueue_courier_refresh_failed",
			"order_id", orderID,
			"error", err,
		)
	}
}

func (s *OrderService) estimatedDeliveryMinutes() int {
	if s.fulfillment.EstimatedDeliveryMinutes > 0 {
		return s.fulfillment.EstimatedDeliveryMinutes
	}
	return 35
}

// ensureEditableOrder 订单项增删改仅允许 pending 状态
func (s *OrderService) ensureEditableOrder(orderID uint, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderNotEditable
	}
	return order, nil
}

// AddItemToOrder 向待处理订单追加订单项并整体重算金额
//
// 合并规则与加购一致：同商品同定制选项并入既有订单项累加数量，
// 否则追加新行。
func (s *OrderService) AddItemToOrder(orderID uint, userID uint, entry PlaceOrderItem) (*models.Order, error) {
	order, err := s.ensureEditableOrder(orderID, userID)
	if err != nil {
		return nil, err
	}
	item, err := s.buildOrderItem(entry)
	if err != nil {
		return nil, err
	}
	item.OrderID = order.ID

	entryKey := canonicalOptionsKey(entry.Options)
	var existing *models.OrderItem
	for i := range order.Items {
		line := &order.Items[i]
		if line.ProductID == entry.ProductID && canonicalOptionsKey(line.OptionsJSON) == entryKey {
			existing = line
			break
		}
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		if existing != nil {
			existing.Quantity += entry.Quantity
			existing.TotalPrice = models.NewMoneyFromDecimal(lineSubtotal(existing.UnitPrice, existing.Quantity))
			if err := orderRepo.UpdateItem(existing); err != nil {
				return ErrOrderUpdateFailed
			}
		} else if err := orderRepo.CreateItem(item); err != nil {
			return ErrOrderUpdateFailed
		}
		return s.recomputeTotals(orderRepo, order)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(order.ID)
}

// UpdateOrderItemQuantity 修改订单项数量（数量 <= 0 视为移除）
func (s *OrderService) UpdateOrderItemQuantity(orderID uint, userID uint, itemID uint, quantity int) (*models.Order, error) {
	order, err := s.ensureEditableOrder(orderID, userID)
	if err != nil {
		return nil, err
	}
	item, err := s.orderRepo.GetItem(order.ID, itemID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if item == nil {
		return nil, ErrOrderItemNotFound
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		if quantity <= 0 {
			if err := orderRepo.DeleteItem(order.ID, item.ID); err != nil {
				return ErrOrderUpdateFailed
			}
		} else {
			item.Quantity = quantity
			item.TotalPrice = models.NewMoneyFromDecimal(lineSubtotal(item.UnitPrice, quantity))
			if err := orderRepo.UpdateItem(item); err != nil {
				return ErrOrderUpdateFailed
			}
		}
		return s.recomputeTotals(orderRepo, order)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(order.ID)
}

// RemoveItemFromOrder 移除订单项并整体重算金额
func (s *OrderService) RemoveItemFromOrder(orderID uint, userID uint, itemID uint) (*models.Order, error) {
	order, err := s.ensureEditableOrder(orderID, userID)
	if err != nil {
		return nil, err
	}
	item, err := s.orderRepo.GetItem(order.ID, itemID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if item == nil {
		return nil, ErrOrderItemNotFound
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		if err := orderRepo.DeleteItem(order.ID, item.ID); err != nil {
			return ErrOrderUpdateFailed
		}
		return s.recomputeTotals(orderRepo, order)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(order.ID)
}

// recomputeTotals 重新读取订单项并整体重算订单金额
//
// 配送费与小费沿用下单时锁定的值。
func (s *OrderService) recomputeTotals(orderRepo *repository.GormOrderRepository, order *models.Order) error {
	refreshed, err := orderRepo.GetByID(order.ID)
	if err != nil || refreshed == nil {
		return ErrOrderUpdateFailed
	}
	totals := s.pricing.OrderTotalsOf(refreshed.Items, order.DeliveryFee, order.Tip)
	updates := map[string]interface{}{
		"subtotal":     totals.Subtotal,
		"tax":          totals.Tax,
		"delivery_fee": totals.DeliveryFee,
		"tip":          totals.Tip,
		"total_amount": totals.Total,
		"updated_at":   time.Now(),
	}
	if err := orderRepo.UpdateTotals(order.ID, updates); err != nil {
		return ErrOrderUpdateFailed
	}
	return nil
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("FF%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
