package service

import (
	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/models"

	"github.com/shopspring/decimal"
)

// CartTotals 购物车结算金额
type CartTotals struct {
	Subtotal    models.Money `json:"subtotal"`
	Tax         models.Money `json:"tax"`
	DeliveryFee models.Money `json:"delivery_fee"`
	Total       models.Money `json:"total"`
}

// OrderTotals 订单结算金额（在购物车口径上叠加小费）
type OrderTotals struct {
	Subtotal    models.Money `json:"subtotal"`
	Tax         models.Money `json:"tax"`
	DeliveryFee models.Money `json:"delivery_fee"`
	Tip         models.Money `json:"tip"`
	Total       models.Money `json:"total"`
}

// PricingService 计价服务
//
// 税率与配送费来自配置；任何结构性变更后必须整体重算，
// 不允许对单项金额做增量修补。
type PricingService struct {
	taxRate        decimal.Decimal
	deliveryFee    decimal.Decimal
	freeDeliveryAt decimal.Decimal
}

// NewPricingService 创建计价服务
func NewPricingService(cfg config.PricingConfig) *PricingService {
	return &PricingService{
		taxRate:        decimal.NewFromFloat(cfg.TaxRate),
		deliveryFee:    decimal.NewFromFloat(cfg.DeliveryFee),
		freeDeliveryAt: decimal.NewFromFloat(cfg.FreeDeliveryAt),
	}
}

// lineSubtotal 单行小计（单价 × 数量）
func lineSubtotal(unitPrice models.Money, quantity int) decimal.Decimal {
	return unitPrice.Decimal.Mul(decimal.NewFromInt(int64(quantity)))
}

// subtotalOf 汇总商品小计
func subtotalOfCartItems(items []models.CartItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(lineSubtotal(item.UnitPrice, item.Quantity))
	}
	return subtotal
}

func subtotalOfOrderItems(items []models.OrderItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(lineSubtotal(item.UnitPrice, item.Quantity))
	}
	return subtotal
}

// taxOf 按税率计算税费
func (p *PricingService) taxOf(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(p.taxRate).Round(2)
}

// deliveryFeeOf 空车不收配送费；达到免配送门槛时减免
func (p *PricingService) deliveryFeeOf(subtotal decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() {
		return decimal.Zero
	}
	if p.freeDeliveryAt.IsPositive() && subtotal.GreaterThanOrEqual(p.freeDeliveryAt) {
		return decimal.Zero
	}
	return p.deliveryFee
}

// CartTotalsOf 计算购物车结算金额
func (p *PricingService) CartTotalsOf(items []models.CartItem) CartTotals {
	subtotal := subtotalOfCartItems(items)
	tax := p.taxOf(subtotal)
	fee := p.deliveryFeeOf(subtotal)
	return CartTotals{
		Subtotal:    models.NewMoneyFromDecimal(subtotal),
		Tax:         models.NewMoneyFromDecimal(tax),
		DeliveryFee: models.NewMoneyFromDecimal(fee),
		Total:       models.NewMoneyFromDecimal(subtotal.Add(tax).Add(fee)),
	}
}

// OrderTotalsOf 按订单项重算订单金额
//
// 配送费与小费是下单时锁定的值，项目增删只影响小计与税费。
func (p *PricingService) OrderTotalsOf(items []models.OrderItem, deliveryFee, tip models.Money) OrderTotals {
	subtotal := subtotalOfOrderItems(items)
	tax := p.taxOf(subtotal)
	total := subtotal.Add(tax).Add(deliveryFee.Decimal).Add(tip.Decimal)
	return OrderTotals{
		Subtotal:    models.NewMoneyFromDecimal(subtotal),
		Tax:         models.NewMoneyFromDecimal(tax),
		DeliveryFee: deliveryFee,
		Tip:         tip,
		Total:       models.NewMoneyFromDecimal(total),
	}
}

// InitialOrderTotals 下单时的订单金额（配送费按购物车口径计算）
func (p *PricingService) InitialOrderTotals(items []models.OrderItem, tip models.Money) OrderTotals {
	subtotal := subtotalOfOrderItems(items)
	fee := models.NewMoneyFromDecimal(p.deliveryFeeOf(subtotal))
	return p.OrderTotalsOf(items, fee, tip)
}
