package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/models"
	"github.com/forkful/forkful/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("migrate cart models failed: %v", err)
	}
	pricing := NewPricingService(config.PricingConfig{TaxRate: 0.08, DeliveryFee: 3.99})
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db), pricing)
	return svc, db
}

func createCartTestProduct(t *testing.T, db *gorm.DB, name string, price float64) *models.Product {
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

func TestCartAddItemMergesSameOptions(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "margherita", 12.99)

	options := models.JSON{"size": "Medium", "toppings": []interface{}{"Olives", "Mushrooms"}}
	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1, Options: models.JSON{"size": "Medium", "toppings": []interface{}{"Mushrooms", "Olives"}}}); err == nil {
		t.Fatalf("expected option price lookup failure for unpriced size")
	}

	db.Model(product).Updates(map[string]interface{}{
		"sizes_json":    models.JSON{"Small": 10.99, "Medium": 12.99, "Large": 15.99},
		"toppings_json": models.JSON{"Mushrooms": 1.50, "Olives": 1.00},
	})

	view, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1, Options: options})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(view.Items))
	}
	if view.Items[0].UnitPrice.String() != "15.49" {
		t.Fatalf("unit price want 15.49 got %s", view.Items[0].UnitPrice.String())
	}

	// 配料顺序不同仍应合并到同一行
	reordered := models.JSON{"toppings": []interface{}{"Mushrooms", "Olives"}, "size": "Medium"}
	view, err = svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2, Options: reordered})
	if err != nil {
		t.Fatalf("merge add failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("merged items want 1 got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 3 {
		t.Fatalf("merged quantity want 3 got %d", view.Items[0].Quantity)
	}
}

func TestCartAddItemDifferentOptionsAppends(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "pepperoni", 14.99)
	db.Model(product).Update("sizes_json", models.JSON{"Small": 11.99, "Large": 17.99})

	if _, err := svc.AddItem(AddCartItemInput{UserID: 7, ProductID: product.ID, Quantity: 1, Options: models.JSON{"size": "Small"}}); err != nil {
		t.Fatalf("add small failed: %v", err)
	}
	view, err := svc.AddItem(AddCartItemInput{UserID: 7, ProductID: product.ID, Quantity: 1, Options: models.JSON{"size": "Large"}})
	if err != nil {
		t.Fatalf("add large failed: %v", err)
	}
	if len(view.Items) != 2 {
		t.Fatalf("items want 2 got %d", len(view.Items))
	}
}

func TestCartUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "garlic-bread", 5.99)

	if _, err := svc.AddItem(AddCartItemInput{UserID: 3, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	view, err := svc.UpdateQuantity(3, product.ID, nil, 0)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("items want 0 got %d", len(view.Items))
	}
	if view.Totals.Total.String() != "0.00" {
		t.Fatalf("empty cart total want 0.00 got %s", view.Totals.Total.String())
	}
}

func TestCartUpdateQuantityMissingLine(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "cola", 2.49)

	if _, err := svc.UpdateQuantity(9, product.ID, nil, 2); err != ErrCartItemNotFound {
		t.Fatalf("want ErrCartItemNotFound got %v", err)
	}
}

func TestCartRemoveItemExactOptionsOnly(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "hawaiian", 13.99)
	db.Model(product).Update("sizes_json", models.JSON{"Small": 11.49, "Large": 16.49})

	if _, err := svc.AddItem(AddCartItemInput{UserID: 5, ProductID: product.ID, Quantity: 1, Options: models.JSON{"size": "Small"}}); err != nil {
		t.Fatalf("add small failed: %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{UserID: 5, ProductID: product.ID, Quantity: 1, Options: models.JSON{"size": "Large"}}); err != nil {
		t.Fatalf("add large failed: %v", err)
	}

	view, err := svc.RemoveItem(5, product.ID, models.JSON{"size": "Small"})
	if err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(view.Items))
	}
	if view.Items[0].UnitPrice.String() != "16.49" {
		t.Fatalf("remaining line want large 16.49 got %s", view.Items[0].UnitPrice.String())
	}

	// 无匹配键移除静默跳过，不报错也不动其他行
	view, err = svc.RemoveItem(5, product.ID, models.JSON{"size": "Medium"})
	if err != nil {
		t.Fatalf("remove missing key failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("items after missing-key remove want 1 got %d", len(view.Items))
	}
}

func TestCartViewTotalsRecomputedTogether(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "tiramisu", 15.99)

	view, err := svc.AddItem(AddCartItemInput{UserID: 2, ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if view.Totals.Subtotal.String() != "15.99" || view.Totals.Tax.String() != "1.28" ||
		view.Totals.DeliveryFee.String() != "3.99" || view.Totals.Total.String() != "21.26" {
		t.Fatalf("totals mismatch: %+v", view.Totals)
	}
}

func TestCartClear(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "lemonade", 3.49)

	if _, err := svc.AddItem(AddCartItemInput{UserID: 4, ProductID: product.ID, Quantity: 3}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	view, err := svc.Clear(4)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("items want 0 got %d", len(view.Items))
	}
}

func TestCartInactiveProductRejected(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "retired-special", 9.99)
	db.Model(product).Update("is_active", false)

	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != ErrProductInactive {
		t.Fatalf("want ErrProductInactive got %v", err)
	}
}
