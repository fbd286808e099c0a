package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/constants"
	"github.com/forkful/forkful/internal/models"
	"github.com/forkful/forkful/internal/queue"
	"github.com/forkful/forkful/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderTracking{},
	); err != nil {
		t.Fatalf("migrate order models failed: %v", err)
	}
	models.DB = db

	pricing := NewPricingService(config.PricingConfig{TaxRate: 0.08, DeliveryFee: 3.99})
	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewTrackingRepository(db),
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		pricing,
		queueClient,
		config.FulfillmentConfig{Enabled: false, EstimatedDeliveryMinutes: 35},
	)
	return svc, db
}

func createOrderTestProduct(t *testing.T, db *gorm.DB, name string, price float64) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        name,
		Slug:        name,
		PriceAmount: models.NewMoneyFromFloat(price),
		IsActive:    true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestPlaceOrderComputesTotalsAndCreatesTracking(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "veggie-supreme", 10.00)

	order, err := svc.PlaceOrder(PlaceOrderInput{
		UserID: 1,
		Items:  []PlaceOrderItem{{ProductID: product.ID, Quantity: 2}},
		Tip:    1.00,
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("status want pending got %s", order.Status)
	}
	if order.Subtotal.String() != "20.00" || order.Tax.String() != "1.60" ||
		order.DeliveryFee.String() != "3.99" || order.Tip.String() != "1.00" {
		t.Fatalf("totals mismatch: %+v", order)
	}
	if order.TotalAmount.String() != "26.59" {
		t.Fatalf("total want 26.59 got %s", order.TotalAmount.String())
	}
	if order.Tracking == nil {
		t.Fatalf("tracking record missing")
	}
	if order.Tracking.Status != constants.OrderStatusPending {
		t.Fatalf("tracking status want pending got %s", order.Tracking.Status)
	}
	if order.EstimatedDelivery == nil {
		t.Fatalf("estimated delivery missing")
	}
	if len(order.OrderNo) == 0 {
		t.Fatalf("order no missing")
	}
}

func TestPlaceOrderFromCartClearsCart(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "bbq-chicken", 15.99)
	cartRepo := repository.NewCartRepository(db)
	if err := cartRepo.Create(&models.CartItem{
		UserID:    2,
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.PriceAmount,
		Quantity:  1,
	}); err != nil {
		t.Fatalf("seed cart failed: %v", err)
	}

	order, err := svc.PlaceOrder(PlaceOrderInput{UserID: 2})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.TotalAmount.String() != "21.26" {
		t.Fatalf("total want 21.26 got %s", order.TotalAmount.String())
	}
	remaining, err := cartRepo.ListByUser(2)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("cart should be empty after placing order, got %d lines", len(remaining))
	}
}

func TestPlaceOrderEmptyCartRejected(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)
	if _, err := svc.PlaceOrder(PlaceOrderInput{UserID: 9}); err != ErrCartEmpty {
		t.Fatalf("want ErrCartEmpty got %v", err)
	}
}

func TestUpdateOrderStatusFollowsStatusMachine(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "four-cheese", 13.49)
	order, err := svc.PlaceOrder(PlaceOrderInput{
		UserID: 3,
		Items:  []PlaceOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	// pending 不能直接送达
	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusDelivered); err != ErrOrderStatusInvalid {
		t.Fatalf("want ErrOrderStatusInvalid got %v", err)
	}

	for _, status := range []string{
		constants.OrderStatusPreparing,
		constants.OrderStatusOutForDelivery,
		constants.OrderStatusDelivered,
	} {
		order, err = svc.UpdateOrderStatus(order.ID, status)
		if err != nil {
			t.Fatalf("advance to %s failed: %v", status, err)
		}
		if order.Status != status {
			t.Fatalf("status want %s got %s", status, order.Status)
		}
		if order.Tracking == nil || order.Tracking.Status != status {
			t.Fatalf("tracking not synced at %s", status)
		}
	}
	if order.DeliveredAt == nil {
		t.Fatalf("delivered_at not set")
	}

	// 终态不可再迁移
	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusCancelled); err != ErrOrderStatusInvalid {
		t.Fatalf("terminal order should reject transition, got %v", err)
	}
}

func TestUpdateOrderStatusUnknownTarget(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "calzone", 9.99)
	order, err := svc.PlaceOrder(PlaceOrderInput{
		UserID: 3,
		Items:  []PlaceOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if _, err := svc.UpdateOrderStatus(order.ID, "refunded"); err != ErrOrderStatusInvalid {
		t.Fatalf("want ErrOrderStatusInvalid got %v", err)
	}
}

func TestCancelOrderSyncsTracking(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "meat-feast", 16.99)
	order, err := svc.PlaceOrder(PlaceOrderInput{
		UserID: 4,
		Items:  []PlaceOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	canceled, err := svc.CancelOrder(order.ID, 4)
	if err != nil {
		t.Fatalf("cancel order failed: %v", err)
	}
	if canceled.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want cancelled got %s", canceled.Status)
	}
	if canceled.CanceledAt == nil {
		t.Fatalf("canceled_at not set")
	}
	if canceled.Tracking == nil || canceled.Tracking.Status != constants.OrderStatusCancelled {
		t.Fatalf("tracking not synced on cancel")
	}

	// 已取消订单不能重复取消
	if _, err := svc.CancelOrder(order.ID, 4); err != ErrOrderCancelNotAllowed {
		t.Fatalf("want ErrOrderCancelNotAllowed got %v", err)
	}
}

func TestCancelOrderMissingIDLeavesStoreUnchanged(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "diavola", 14.49)
	order, err := svc.PlaceOrder(PlaceOrderInput{
		UserID: 5,
		Items:  []PlaceOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if _, err := svc.CancelOrder(order.ID+100, 5); err != ErrOrderNotFound {
		t.Fatalf("want ErrOrderNotFound got %v", err)
	}
	unchanged, err := svc.GetOrderByUser(order.ID, 5)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if unchanged.Status != constants.OrderStatusPending {
		t.Fatalf("existing order mutated, status %s", unchanged.Status)
	}
}

func TestOrderItemMutationsRecomputeTotals(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	pizza := createOrderTestProduct(t, db, "quattro", 12.00)
	soda := createOrderTestProduct(t, db, "root-beer", 3.00)

	order, err := svc.PlaceOrder(PlaceOrderInput{
		UserID: 6,
		Items:  []PlaceOrderItem{{ProductID: pizza.ID, Quantity: 1}},
		Tip:    2.00,
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	// 12.00 + 0.96 + 3.99 + 2.00
	if order.TotalAmount.String() != "18.95" {
		t.Fatalf("initial total want 18.95 got %s", order.TotalAmount.String())
	}

	order, err = svc.AddItemToOrder(order.ID, 6, PlaceOrderItem{ProductID: soda.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if len(order.Items) != 2 {
		t.Fatalf("items want 2 got %d", len(order.Items))
	}
	// 18.00 + 1.44 + 3.99 + 2.00：配送费与小费保持下单值
	if order.TotalAmount.String() != "25.43" {
		t.Fatalf("total after add want 25.43 got %s", order.TotalAmount.String())
	}

	var sodaItem *models.OrderItem
	for i := range order.Items {
		if order.Items[i].ProductID == soda.ID {
			sodaItem = &order.Items[i]
		}
	}
	if sodaItem == nil {
		t.Fatalf("soda item missing")
	}

	order, err = svc.UpdateOrderItemQuantity(order.ID, 6, sodaItem.ID, 1)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	// 15.00 + 1.20 + 3.99 + 2.00
	if order.TotalAmount.String() != "22.19" {
		t.Fatalf("total after quantity change want 22.19 got %s", order.TotalAmount.String())
	}

	order, err = svc.RemoveItemFromOrder(order.ID, 6, sodaItem.ID)
	if err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	if len(order.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(order.Items))
	}
	if order.TotalAmount.String() != "18.95" {
		t.Fatalf("total after remove want 18.95 got %s", order.TotalAmount.String())
	}
}

func TestAddItemToOrderMergesMatchingLine(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := &models.Product{
		Name:        "diavola",
		Slug:        "diavola",
		PriceAmount: models.NewMoneyFromFloat(13.50),
		ToppingsJSON: models.JSON{
			"Olives": 1.00,
			"Bacon":  2.50,
		},
		IsActive: true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	order, err := svc.PlaceOrder(PlaceOrderInput{
		UserID: 9,
		Items: []PlaceOrderItem{{
			ProductID: product.ID,
			Quantity:  1,
			Options:   models.JSON{"toppings": []string{"Olives", "Bacon"}},
		}},
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	// 同商品同选项（提交顺序不同）并入既有行
	order, err = svc.AddItemToOrder(order.ID, 9, PlaceOrderItem{
		ProductID: product.ID,
		Quantity:  1,
		Options:   models.JSON{"toppings": []string{"Bacon", "Olives"}},
	})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if len(order.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(order.Items))
	}
	if order.Items[0].Quantity != 2 {
		t.Fatalf("quantity want 2 got %d", order.Items[0].Quantity)
	}
	// (13.50 + 1.00 + 2.50) × 2
	if order.Items[0].TotalPrice.String() != "34.00" {
		t.Fatalf("line total want 34.00 got %s", order.Items[0].TotalPrice.String())
	}
	if order.Subtotal.String() != "34.00" {
		t.Fatalf("subtotal want 34.00 got %s", order.Subtotal.String())
	}

	// 选项不同则追加新行
	order, err = svc.AddItemToOrder(order.ID, 9, PlaceOrderItem{ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add plain item failed: %v", err)
	}
	if len(order.Items) != 2 {
		t.Fatalf("items want 2 got %d", len(order.Items))
	}
}

func TestOrderItemMutationsRequirePendingStatus(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "napoletana", 11.99)
	order, err := svc.PlaceOrder(PlaceOrderInput{
		UserID: 7,
		Items:  []PlaceOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusPreparing); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	if _, err := svc.AddItemToOrder(order.ID, 7, PlaceOrderItem{ProductID: product.ID, Quantity: 1}); err != ErrOrderNotEditable {
		t.Fatalf("want ErrOrderNotEditable got %v", err)
	}
}

func TestOrderItemMissingIDSurfacesNotFound(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "funghi", 10.99)
	order, err := svc.PlaceOrder(PlaceOrderInput{
		UserID: 8,
		Items:  []PlaceOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if _, err := svc.UpdateOrderItemQuantity(order.ID, 8, 9999, 2); err != ErrOrderItemNotFound {
		t.Fatalf("want ErrOrderItemNotFound got %v", err)
	}
	if _, err := svc.RemoveItemFromOrder(order.ID, 8, 9999); err != ErrOrderItemNotFound {
		t.Fatalf("want ErrOrderItemNotFound got %v", err)
	}
	if _, err := svc.UpdateOrderItemQuantity(order.ID+50, 8, 1, 2); err != ErrOrderNotFound {
		t.Fatalf("want ErrOrderNotFound got %v", err)
	}
}
