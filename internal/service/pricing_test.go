package service

import (
	"testing"

	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/models"

	"github.com/shopspring/decimal"
)

func defaultPricing() *PricingService {
	return NewPricingService(config.PricingConfig{
		TaxRate:     0.08,
		DeliveryFee: 3.99,
	})
}

func TestCartTotalsSingleItem(t *testing.T) {
	pricing := defaultPricing()
	items := []models.CartItem{
		{UnitPrice: models.NewMoneyFromFloat(15.99), Quantity: 1},
	}
	totals := pricing.CartTotalsOf(items)
	if totals.Subtotal.String() != "15.99" {
		t.Fatalf("subtotal want 15.99 got %s", totals.Subtotal.String())
	}
	if totals.Tax.String() != "1.28" {
		t.Fatalf("tax want 1.28 got %s", totals.Tax.String())
	}
	if totals.DeliveryFee.String() != "3.99" {
		t.Fatalf("delivery fee want 3.99 got %s", totals.DeliveryFee.String())
	}
	if totals.Total.String() != "21.26" {
		t.Fatalf("total want 21.26 got %s", totals.Total.String())
	}
}

func TestCartTotalsEmptyCartHasNoDeliveryFee(t *testing.T) {
	pricing := defaultPricing()
	totals := pricing.CartTotalsOf(nil)
	if totals.Subtotal.String() != "0.00" {
		t.Fatalf("subtotal want 0.00 got %s", totals.Subtotal.String())
	}
	if totals.DeliveryFee.String() != "0.00" {
		t.Fatalf("empty cart delivery fee want 0.00 got %s", totals.DeliveryFee.String())
	}
	if totals.Total.String() != "0.00" {
		t.Fatalf("total want 0.00 got %s", totals.Total.String())
	}
}

func TestCartTotalsSumIdentity(t *testing.T) {
	pricing := defaultPricing()
	items := []models.CartItem{
		{UnitPrice: models.NewMoneyFromFloat(12.49), Quantity: 2},
		{UnitPrice: models.NewMoneyFromFloat(4.25), Quantity: 3},
	}
	totals := pricing.CartTotalsOf(items)
	sum := totals.Subtotal.Decimal.Add(totals.Tax.Decimal).Add(totals.DeliveryFee.Decimal)
	if !totals.Total.Decimal.Equal(sum) {
		t.Fatalf("total %s != subtotal+tax+fee %s", totals.Total.String(), sum.String())
	}
}

func TestOrderTotalsPreserveFeeAndTip(t *testing.T) {
	pricing := defaultPricing()
	items := []models.OrderItem{
		{UnitPrice: models.NewMoneyFromFloat(10), Quantity: 2},
	}
	fee := models.NewMoneyFromFloat(3.99)
	tip := models.NewMoneyFromFloat(2.50)
	totals := pricing.OrderTotalsOf(items, fee, tip)
	if totals.Subtotal.String() != "20.00" {
		t.Fatalf("subtotal want 20.00 got %s", totals.Subtotal.String())
	}
	if totals.Tax.String() != "1.60" {
		t.Fatalf("tax want 1.60 got %s", totals.Tax.String())
	}
	if totals.DeliveryFee.String() != "3.99" || totals.Tip.String() != "2.50" {
		t.Fatalf("fee/tip should be preserved, got %s/%s", totals.DeliveryFee.String(), totals.Tip.String())
	}
	if totals.Total.String() != "28.09" {
		t.Fatalf("total want 28.09 got %s", totals.Total.String())
	}
}

func TestInitialOrderTotalsPlacementScenario(t *testing.T) {
	pricing := defaultPricing()
	items := []models.OrderItem{
		{UnitPrice: models.NewMoneyFromFloat(10), Quantity: 2},
	}
	totals := pricing.InitialOrderTotals(items, models.NewMoneyFromDecimal(decimal.Zero))
	if totals.Subtotal.String() != "20.00" {
		t.Fatalf("subtotal want 20.00 got %s", totals.Subtotal.String())
	}
	if totals.Tax.String() != "1.60" {
		t.Fatalf("tax want 1.60 got %s", totals.Tax.String())
	}
	if totals.Total.String() != "25.59" {
		t.Fatalf("total want 25.59 got %s", totals.Total.String())
	}
}

func TestFreeDeliveryThreshold(t *testing.T) {
	pricing := NewPricingService(config.PricingConfig{
		TaxRate:        0.08,
		DeliveryFee:    3.99,
		FreeDeliveryAt: 50,
	})
	items := []models.CartItem{
		{UnitPrice: models.NewMoneyFromFloat(25), Quantity: 2},
	}
	totals := pricing.CartTotalsOf(items)
	if totals.DeliveryFee.String() != "0.00" {
		t.Fatalf("delivery fee over threshold want 0.00 got %s", totals.DeliveryFee.String())
	}
}
