package service

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/forkful/forkful/internal/constants"
	"github.com/forkful/forkful/internal/models"
	"github.com/forkful/forkful/internal/repository"

	"github.com/shopspring/decimal"
)

// CartView 购物车视图（明细 + 结算金额）
type CartView struct {
	Items  []models.CartItem `json:"items"`
	Totals CartTotals        `json:"totals"`
}

// AddCartItemInput 加购输入
type AddCartItemInput struct {
	UserID    uint
	ProductID uint
	Quantity  int
	Options   models.JSON
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	pricing     *PricingService
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, pricing *PricingService) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		pricing:     pricing,
	}
}

// canonicalOptionsKey 选项规范化键
//
// 键名排序后序列化，配料列表排序，保证同一组定制在任何
// 提交顺序下得到相同的键。
func canonicalOptionsKey(options models.JSON) string {
	if len(options) == 0 {
		return ""
	}
	normalized := make(map[string]interface{}, len(options))
	for k, v := range options {
		if list, ok := toStringSlice(v); ok {
			sort.Strings(list)
			normalized[k] = list
			continue
		}
		normalized[k] = v
	}
	// encoding/json 对 map 键名按字典序输出
	raw, err := json.Marshal(normalized)
	if err != nil {
		return ""
	}
	return string(raw)
}

func toStringSlice(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// resolveUnitPrice 按定制选项解析单价（规格价 + 配料加价）
func resolveUnitPrice(product *models.Product, options models.JSON) (models.Money, error) {
	price := product.PriceAmount.Decimal

	if rawSize, ok := options[constants.OptionKeySize]; ok {
		size, ok := rawSize.(string)
		if !ok {
			return models.Money{}, ErrProductOptionInvalid
		}
		sizePrice, err := lookupOptionPrice(product.SizesJSON, size)
		if err != nil {
			return models.Money{}, err
		}
		price = sizePrice
	}

	if rawToppings, ok := options[constants.OptionKeyToppings]; ok {
		toppings, ok := toStringSlice(rawToppings)
		if !ok {
			return models.Money{}, ErrProductOptionInvalid
		}
		for _, topping := range toppings {
			extra, err := lookupOptionPrice(product.ToppingsJSON, topping)
			if err != nil {
				return models.Money{}, err
			}
			price = price.Add(extra)
		}
	}

	return models.NewMoneyFromDecimal(price), nil
}

func lookupOptionPrice(priced models.JSON, name string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return decimal.Zero, ErrProductOptionInvalid
	}
	raw, ok := priced[trimmed]
	if !ok {
		return decimal.Zero, ErrProductOptionInvalid
	}
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, ErrProductOptionInvalid
		}
		return parsed, nil
	case json.Number:
		parsed, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, ErrProductOptionInvalid
		}
		return parsed, nil
	default:
		return decimal.Zero, ErrProductOptionInvalid
	}
}

// View 获取用户购物车视图
func (s *CartService) View(userID uint) (*CartView, error) {
	if userID == 0 {
		return nil, ErrCartItemInvalid
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return &CartView{
		Items:  items,
		Totals: s.pricing.CartTotalsOf(items),
	}, nil
}

// AddItem 加购（同商品同选项合并数量）
func (s *CartService) AddItem(input AddCartItemInput) (*CartView, error) {
	if input.UserID == 0 || input.ProductID == 0 || input.Quantity <= 0 {
		return nil, ErrCartItemInvalid
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductInactive
	}

	unitPrice, err := resolveUnitPrice(product, input.Options)
	if err != nil {
		return nil, err
	}

	optionsKey := canonicalOptionsKey(input.Options)
	existing, err := s.cartRepo.GetByKey(input.UserID, input.ProductID, optionsKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.cartRepo.UpdateQuantity(existing.ID, existing.Quantity+input.Quantity); err != nil {
			return nil, err
		}
		return s.View(input.UserID)
	}

	item := &models.CartItem{
		UserID:      input.UserID,
		ProductID:   input.ProductID,
		Name:        product.Name,
		UnitPrice:   unitPrice,
		Quantity:    input.Quantity,
		OptionsJSON: input.Options,
		OptionsKey:  optionsKey,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return s.View(input.UserID)
}

// UpdateQuantity 更新数量（数量 <= 0 视为移除）
func (s *CartService) UpdateQuantity(userID, productID uint, options models.JSON, quantity int) (*CartView, error) {
	if userID == 0 || productID == 0 {
		return nil, ErrCartItemInvalid
	}
	optionsKey := canonicalOptionsKey(options)
	item, err := s.cartRepo.GetByKey(userID, productID, optionsKey)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if quantity <= 0 {
		if err := s.cartRepo.Delete(item.ID); err != nil {
			return nil, err
		}
		return s.View(userID)
	}
	if err := s.cartRepo.UpdateQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	return s.View(userID)
}

// RemoveItem 按（商品、选项）精确移除
func (s *CartService) RemoveItem(userID, productID uint, options models.JSON) (*CartView, error) {
	if userID == 0 || productID == 0 {
		return nil, ErrCartItemInvalid
	}
	if err := s.cartRepo.DeleteByKey(userID, productID, canonicalOptionsKey(options)); err != nil {
		return nil, err
	}
	return s.View(userID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) (*CartView, error) {
	if userID == 0 {
		return nil, ErrCartItemInvalid
	}
	if err := s.cartRepo.ClearByUser(userID); err != nil {
		return nil, err
	}
	return s.View(userID)
}
