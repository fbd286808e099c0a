package service

import (
	"strings"
	"time"

	"github.com/forkful/forkful/internal/constants"
	"github.com/forkful/forkful/internal/models"
	"github.com/forkful/forkful/internal/repository"
)

// PaymentMethodService 支付方式服务（仅维护展示快照，不做真实扣款）
type PaymentMethodService struct {
	methodRepo repository.PaymentMethodRepository
}

// NewPaymentMethodService 创建支付方式服务
func NewPaymentMethodService(methodRepo repository.PaymentMethodRepository) *PaymentMethodService {
	return &PaymentMethodService{methodRepo: methodRepo}
}

// PaymentMethodInput 支付方式输入
type PaymentMethodInput struct {
	Kind      string `json:"kind"`
	Brand     string `json:"brand"`
	Last4     string `json:"last4"`
	ExpMonth  int    `json:"exp_month"`
	ExpYear   int    `json:"exp_year"`
	IsDefault bool   `json:"is_default"`
}

func isValidPaymentMethodKind(kind string) bool {
	return kind == constants.PaymentMethodKindCard || kind == constants.PaymentMethodKindCash
}

func isValidCardExpiry(month, year int) bool {
	if month < 1 || month > 12 {
		return false
	}
	now := time.Now()
	if year < now.Year() {
		return false
	}
	if year == now.Year() && month < int(now.Month()) {
		return false
	}
	return true
}

// ListByUser 用户支付方式列表
func (s *PaymentMethodService) ListByUser(userID uint) ([]models.PaymentMethod, error) {
	return s.methodRepo.ListByUser(userID)
}

// GetByUser 获取用户支付方式
func (s *PaymentMethodService) GetByUser(id, userID uint) (*models.PaymentMethod, error) {
	method, err := s.methodRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, ErrPaymentMethodNotFound
	}
	return method, nil
}

// Create 新增支付方式
func (s *PaymentMethodService) Create(userID uint, input PaymentMethodInput) (*models.PaymentMethod, error) {
	kind := strings.TrimSpace(strings.ToLower(input.Kind))
	if !isValidPaymentMethodKind(kind) {
		return nil, ErrPaymentMethodInvalid
	}
	if kind == constants.PaymentMethodKindCard {
		if len(strings.TrimSpace(input.Last4)) != 4 || !isValidCardExpiry(input.ExpMonth, input.ExpYear) {
			return nil, ErrPaymentMethodInvalid
		}
	}
	if input.IsDefault {
		if err := s.methodRepo.ClearDefault(userID); err != nil {
			return nil, err
		}
	}
	method := &models.PaymentMethod{
		UserID:    userID,
		Kind:      kind,
		Brand:     strings.TrimSpace(input.Brand),
		Last4:     strings.TrimSpace(input.Last4),
		ExpMonth:  input.ExpMonth,
		ExpYear:   input.ExpYear,
		IsDefault: input.IsDefault,
	}
	if err := s.methodRepo.Create(method); err != nil {
		return nil, err
	}
	return method, nil
}

// Delete 删除支付方式
func (s *PaymentMethodService) Delete(id, userID uint) error {
	if _, err := s.GetByUser(id, userID); err != nil {
		return err
	}
	return s.methodRepo.Delete(id, userID)
}

// SetDefault 设为默认支付方式
func (s *PaymentMethodService) SetDefault(id, userID uint) (*models.PaymentMethod, error) {
	method, err := s.GetByUser(id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.methodRepo.ClearDefault(userID); err != nil {
		return nil, err
	}
	method.IsDefault = true
	if err := s.methodRepo.Update(method); err != nil {
		return nil, err
	}
	return method, nil
}

// PaymentMethodSnapshot 生成订单用的支付方式快照
func PaymentMethodSnapshot(method *models.PaymentMethod) models.JSON {
	if method == nil {
		return nil
	}
	return models.JSON{
		"kind":  method.Kind,
		"brand": method.Brand,
		"last4": method.Last4,
	}
}
