package service

import (
	"strings"

	"github.com/forkful/forkful/internal/models"
	"github.com/forkful/forkful/internal/repository"
)

// AddressService 配送地址服务
type AddressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService 创建配送地址服务
func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// AddressInput 地址输入
type AddressInput struct {
	Label     string  `json:"label"`
	Street    string  `json:"street"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	ZipCode   string  `json:"zip_code"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IsDefault bool    `json:"is_default"`
}

// ListByUser 用户地址列表
func (s *AddressService) ListByUser(userID uint) ([]models.Address, error) {
	return s.addressRepo.ListByUser(userID)
}

// GetByUser 获取用户地址
func (s *AddressService) GetByUser(id, userID uint) (*models.Address, error) {
	address, err := s.addressRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}
	return address, nil
}

// Create 新增地址（设为默认时清除旧默认）
func (s *AddressService) Create(userID uint, input AddressInput) (*models.Address, error) {
	if strings.TrimSpace(input.Street) == "" || strings.TrimSpace(input.City) == "" {
		return nil, ErrAddressNotFound
	}
	if input.IsDefault {
		if err := s.addressRepo.ClearDefault(userID); err != nil {
			return nil, err
		}
	}
	address := &models.Address{
		UserID:    userID,
		Label:     strings.TrimSpace(input.Label),
		Street:    strings.TrimSpace(input.Street),
		City:      strings.TrimSpace(input.City),
		State:     strings.TrimSpace(input.State),
		ZipCode:   strings.TrimSpace(input.ZipCode),
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		IsDefault: input.IsDefault,
	}
	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}
	return address, nil
}

// Update 更新地址
func (s *AddressService) Update(id, userID uint, input AddressInput) (*models.Address, error) {
	address, err := s.GetByUser(id, userID)
	if err != nil {
		return nil, err
	}
	if input.IsDefault && !address.IsDefault {
		if err := s.addressRepo.ClearDefault(userID); err != nil {
			return nil, err
		}
	}
	address.Label = strings.TrimSpace(input.Label)
	address.Street = strings.TrimSpace(input.Street)
	address.City = strings.TrimSpace(input.City)
	address.State = strings.TrimSpace(input.State)
	address.ZipCode = strings.TrimSpace(input.ZipCode)
	address.Latitude = input.Latitude
	address.Longitude = input.Longitude
	address.IsDefault = input.IsDefault
	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

// Delete 删除地址
func (s *AddressService) Delete(id, userID uint) error {
	if _, err := s.GetByUser(id, userID); err != nil {
		return err
	}
	return s.addressRepo.Delete(id, userID)
}

// SetDefault 设为默认地址
func (s *AddressService) SetDefault(id, userID uint) (*models.Address, error) {
	address, err := s.GetByUser(id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.addressRepo.ClearDefault(userID); err != nil {
		return nil, err
	}
	address.IsDefault = true
	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

// AddressSnapshot 生成订单用的地址快照
func AddressSnapshot(address *models.Address) models.JSON {
	if address == nil {
		return nil
	}
	return models.JSON{
		"label":     address.Label,
		"street":    address.Street,
		"city":      address.City,
		"state":     address.State,
		"zip_code":  address.ZipCode,
		"latitude":  address.Latitude,
		"longitude": address.Longitude,
	}
}
