package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/constants"
	"github.com/forkful/forkful/internal/models"
	"github.com/forkful/forkful/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTrackingServiceTest(t *testing.T) (*TrackingService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:tracking_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
		&models.OrderTracking{},
	); err != nil {
		t.Fatalf("migrate tracking models failed: %v", err)
	}
	models.DB = db

	svc := NewTrackingService(
		repository.NewOrderRepository(db),
		repository.NewTrackingRepository(db),
		config.StoreConfig{Name: "Forkful Pizza", Latitude: 40.7128, Longitude: -74.0060},
		config.FulfillmentConfig{DeliverDelaySeconds: 900, EstimatedDeliveryMinutes: 35},
	)
	return svc, db
}

func seedTrackedOrder(t *testing.T, db *gorm.DB, userID uint, status string, address models.JSON, eta time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:           fmt.Sprintf("FF-test-%d", time.Now().UnixNano()),
		UserID:            userID,
		Status:            status,
		DeliveryAddress:   address,
		EstimatedDelivery: &eta,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	tracking := &models.OrderTracking{OrderID: order.ID, Status: status}
	if err := db.Create(tracking).Error; err != nil {
		t.Fatalf("create tracking failed: %v", err)
	}
	return order
}

func TestAssignCourierStartsAtStore(t *testing.T) {
	svc, db := setupTrackingServiceTest(t)
	order := seedTrackedOrder(t, db, 1, constants.OrderStatusPreparing, nil, time.Now().Add(30*time.Minute))

	tracking, err := svc.AssignCourier(order.ID, AssignCourierInput{Name: "Dana", Phone: "555-0101"})
	if err != nil {
		t.Fatalf("assign courier failed: %v", err)
	}
	if tracking.CourierName != "Dana" {
		t.Fatalf("courier name want Dana got %s", tracking.CourierName)
	}
	if tracking.CourierLat == nil || tracking.CourierLng == nil {
		t.Fatalf("courier position missing")
	}
	if *tracking.CourierLat != 40.7128 || *tracking.CourierLng != -74.0060 {
		t.Fatalf("courier should start at store, got %f,%f", *tracking.CourierLat, *tracking.CourierLng)
	}
}

func TestAssignCourierRequiresName(t *testing.T) {
	svc, db := setupTrackingServiceTest(t)
	order := seedTrackedOrder(t, db, 1, constants.OrderStatusPreparing, nil, time.Now().Add(30*time.Minute))

	if _, err := svc.AssignCourier(order.ID, AssignCourierInput{Name: "  "}); err != ErrTrackingNotFound {
		t.Fatalf("want ErrTrackingNotFound got %v", err)
	}
}

func TestRefreshCourierPositionMovesTowardDestination(t *testing.T) {
	svc, db := setupTrackingServiceTest(t)
	address := models.JSON{"latitude": 40.7484, "longitude": -73.9857}
	// 预计送达还有约一半窗口，骑手应在途中
	eta := time.Now().Add(450 * time.Second)
	order := seedTrackedOrder(t, db, 2, constants.OrderStatusOutForDelivery, address, eta)

	tracking, active, err := svc.RefreshCourierPosition(order.ID)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if !active {
		t.Fatalf("delivery should still be active")
	}
	if tracking.CourierLat == nil || tracking.CourierLng == nil {
		t.Fatalf("courier position missing")
	}
	if *tracking.CourierLat <= 40.7128 || *tracking.CourierLat >= 40.7484 {
		t.Fatalf("latitude should be between store and destination, got %f", *tracking.CourierLat)
	}
	if *tracking.CourierLng <= -74.0060 || *tracking.CourierLng >= -73.9857 {
		t.Fatalf("longitude should be between store and destination, got %f", *tracking.CourierLng)
	}
	if tracking.EstimatedTime == "" {
		t.Fatalf("estimated time text missing")
	}
}

func TestRefreshCourierPositionClampsAtDestination(t *testing.T) {
	svc, db := setupTrackingServiceTest(t)
	address := models.JSON{"latitude": 40.7484, "longitude": -73.9857}
	// 预计送达时间已过，骑手应停在目的地
	eta := time.Now().Add(-1 * time.Minute)
	order := seedTrackedOrder(t, db, 3, constants.OrderStatusOutForDelivery, address, eta)

	tracking, _, err := svc.RefreshCourierPosition(order.ID)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if *tracking.CourierLat != 40.7484 || *tracking.CourierLng != -73.9857 {
		t.Fatalf("courier should be clamped at destination, got %f,%f", *tracking.CourierLat, *tracking.CourierLng)
	}
	if tracking.EstimatedTime != "Arriving now" {
		t.Fatalf("estimated text want Arriving now got %s", tracking.EstimatedTime)
	}
}

func TestRefreshCourierPositionStopsAfterDelivery(t *testing.T) {
	svc, db := setupTrackingServiceTest(t)
	order := seedTrackedOrder(t, db, 4, constants.OrderStatusDelivered, nil, time.Now())

	_, active, err := svc.RefreshCourierPosition(order.ID)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if active {
		t.Fatalf("delivered order should not keep refreshing")
	}
}

func TestGetTrackingByUserEnforcesOwnership(t *testing.T) {
	svc, db := setupTrackingServiceTest(t)
	order := seedTrackedOrder(t, db, 5, constants.OrderStatusPending, nil, time.Now().Add(30*time.Minute))

	if _, err := svc.GetTrackingByUser(order.ID, 99); err != ErrOrderNotFound {
		t.Fatalf("want ErrOrderNotFound got %v", err)
	}
	tracking, err := svc.GetTrackingByUser(order.ID, 5)
	if err != nil {
		t.Fatalf("get tracking failed: %v", err)
	}
	if tracking.Status != constants.OrderStatusPending {
		t.Fatalf("tracking status want pending got %s", tracking.Status)
	}
}
