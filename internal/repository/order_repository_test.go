package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/forkful/forkful/internal/constants"
	"github.com/forkful/forkful/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.OrderTracking{}); err != nil {
		t.Fatalf("migrate order tables failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func createTestOrder(t *testing.T, repo *GormOrderRepository, userID uint, orderNo, status string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:     orderNo,
		UserID:      userID,
		Status:      status,
		Subtotal:    models.NewMoneyFromFloat(20.00),
		Tax:         models.NewMoneyFromFloat(1.60),
		DeliveryFee: models.NewMoneyFromFloat(3.99),
		TotalAmount: models.NewMoneyFromFloat(25.59),
	}
	items := []models.OrderItem{
		{
			ProductID: 1,
			Name:      "Pepperoni",
			UnitPrice: models.NewMoneyFromFloat(10.00),
			Quantity:  2,
		},
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderRepositoryCreateLoadsItems(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	created := createTestOrder(t, repo, 1, "FF-1001", constants.OrderStatusPending)

	got, err := repo.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got == nil {
		t.Fatalf("order should exist")
	}
	if len(got.Items) != 1 {
		t.Fatalf("order items want 1 got %d", len(got.Items))
	}
	if got.Items[0].OrderID != created.ID {
		t.Fatalf("item order id want %d got %d", created.ID, got.Items[0].OrderID)
	}
}

func TestOrderRepositoryUserScoping(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	mine := createTestOrder(t, repo, 1, "FF-2001", constants.OrderStatusPending)
	createTestOrder(t, repo, 2, "FF-2002", constants.OrderStatusPending)

	got, err := repo.GetByIDAndUser(mine.ID, 2)
	if err != nil {
		t.Fatalf("cross-user lookup failed: %v", err)
	}
	if got != nil {
		t.Fatalf("order of another user should not be visible")
	}

	got, err = repo.GetByOrderNoAndUser("FF-2001", 1)
	if err != nil {
		t.Fatalf("order no lookup failed: %v", err)
	}
	if got == nil || got.ID != mine.ID {
		t.Fatalf("expected own order by order no, got %+v", got)
	}
}

func TestOrderRepositoryListStaffFilters(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	for i := 0; i < 3; i++ {
		createTestOrder(t, repo, 1, fmt.Sprintf("FF-31%02d", i), constants.OrderStatusPending)
	}
	createTestOrder(t, repo, 2, "FF-3200", constants.OrderStatusDelivered)

	orders, total, err := repo.ListStaff(OrderListFilter{Page: 1, PageSize: 10, Status: constants.OrderStatusPending})
	if err != nil {
		t.Fatalf("list staff orders failed: %v", err)
	}
	if total != 3 || len(orders) != 3 {
		t.Fatalf("pending orders want 3 got total=%d len=%d", total, len(orders))
	}

	orders, total, err = repo.ListStaff(OrderListFilter{Page: 1, PageSize: 10, OrderNo: "FF-3200"})
	if err != nil {
		t.Fatalf("list by order no failed: %v", err)
	}
	if total != 1 || orders[0].Status != constants.OrderStatusDelivered {
		t.Fatalf("order no filter mismatch, total=%d", total)
	}

	future := time.Now().Add(time.Hour)
	_, total, err = repo.ListStaff(OrderListFilter{Page: 1, PageSize: 10, CreatedFrom: &future})
	if err != nil {
		t.Fatalf("list with created_from failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("future created_from should match nothing, got %d", total)
	}
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	created := createTestOrder(t, repo, 1, "FF-4001", constants.OrderStatusPending)

	deliveredAt := time.Now()
	err := repo.UpdateStatus(created.ID, constants.OrderStatusDelivered, map[string]interface{}{
		"delivered_at": &deliveredAt,
	})
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	var got models.Order
	if err := db.First(&got, created.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if got.Status != constants.OrderStatusDelivered {
		t.Fatalf("status want %s got %s", constants.OrderStatusDelivered, got.Status)
	}
	if got.DeliveredAt == nil {
		t.Fatalf("delivered_at should be set")
	}
}

func TestOrderRepositoryItemLifecycle(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	created := createTestOrder(t, repo, 1, "FF-5001", constants.OrderStatusPending)

	item := &models.OrderItem{
		OrderID:   created.ID,
		ProductID: 2,
		Name:      "Garlic Bread",
		UnitPrice: models.NewMoneyFromFloat(4.99),
		Quantity:  1,
	}
	if err := repo.CreateItem(item); err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	got, err := repo.GetItem(created.ID, item.ID)
	if err != nil {
		t.Fatalf("get item failed: %v", err)
	}
	if got == nil || got.Name != "Garlic Bread" {
		t.Fatalf("expected garlic bread item, got %+v", got)
	}

	got.Quantity = 3
	if err := repo.UpdateItem(got); err != nil {
		t.Fatalf("update item failed: %v", err)
	}

	if err := repo.DeleteItem(created.ID, item.ID); err != nil {
		t.Fatalf("delete item failed: %v", err)
	}
	gone, err := repo.GetItem(created.ID, item.ID)
	if err != nil {
		t.Fatalf("lookup deleted item failed: %v", err)
	}
	if gone != nil {
		t.Fatalf("deleted item should be gone, got %+v", gone)
	}
}
