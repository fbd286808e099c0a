package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/forkful/forkful/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T) (*GormCartRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate cart tables failed: %v", err)
	}
	return NewCartRepository(db), db
}

func createCartLine(t *testing.T, repo *GormCartRepository, userID, productID uint, optionsKey string, quantity int) *models.CartItem {
	t.Helper()
	item := &models.CartItem{
		UserID:     userID,
		ProductID:  productID,
		Name:       "Margherita",
		UnitPrice:  models.NewMoneyFromFloat(12.99),
		Quantity:   quantity,
		OptionsKey: optionsKey,
		OptionsJSON: models.JSON{
			"size":     "Medium",
			"toppings": []interface{}{"Mushrooms"},
		},
	}
	if err := repo.Create(item); err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
	return item
}

func TestCartRepositoryKeyLookup(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)
	created := createCartLine(t, repo, 1, 10, "size=Medium|toppings=Mushrooms", 2)

	got, err := repo.GetByKey(1, 10, "size=Medium|toppings=Mushrooms")
	if err != nil {
		t.Fatalf("get by key failed: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("expected cart line %d, got %+v", created.ID, got)
	}

	// 不同选项键的同一商品是另一条购物车行
	other, err := repo.GetByKey(1, 10, "size=Large|toppings=")
	if err != nil {
		t.Fatalf("get by other key failed: %v", err)
	}
	if other != nil {
		t.Fatalf("different options key should not match, got %+v", other)
	}
}

func TestCartRepositoryUpdateQuantity(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)
	created := createCartLine(t, repo, 1, 10, "size=Small|toppings=", 1)

	if err := repo.UpdateQuantity(created.ID, 5); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}

	var got models.CartItem
	if err := db.First(&got, created.ID).Error; err != nil {
		t.Fatalf("reload cart item failed: %v", err)
	}
	if got.Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", got.Quantity)
	}
}

func TestCartRepositoryDeleteByKey(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)
	createCartLine(t, repo, 1, 10, "size=Medium|toppings=Bacon", 1)
	createCartLine(t, repo, 1, 10, "size=Medium|toppings=Olives", 1)

	if err := repo.DeleteByKey(1, 10, "size=Medium|toppings=Bacon"); err != nil {
		t.Fatalf("delete by key failed: %v", err)
	}

	items, err := repo.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("cart lines want 1 got %d", len(items))
	}
	if items[0].OptionsKey != "size=Medium|toppings=Olives" {
		t.Fatalf("surviving line has wrong key: %s", items[0].OptionsKey)
	}
}

func TestCartRepositoryClearByUser(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)
	createCartLine(t, repo, 1, 10, "size=Small|toppings=", 1)
	createCartLine(t, repo, 1, 11, "size=Large|toppings=", 2)
	createCartLine(t, repo, 2, 10, "size=Small|toppings=", 3)

	if err := repo.ClearByUser(1); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}

	mine, err := repo.ListByUser(1)
	if err != nil {
		t.Fatalf("list cleared cart failed: %v", err)
	}
	if len(mine) != 0 {
		t.Fatalf("cleared cart should be empty, got %d lines", len(mine))
	}

	theirs, err := repo.ListByUser(2)
	if err != nil {
		t.Fatalf("list other cart failed: %v", err)
	}
	if len(theirs) != 1 {
		t.Fatalf("other user cart should be untouched, got %d lines", len(theirs))
	}
}
