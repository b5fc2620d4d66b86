package service

import (
	"strings"
	"time"

	"github.com/bookstore-next/internal/constants"
	"github.com/bookstore-next/internal/models"
	"github.com/bookstore-next/internal/repository"
)

// AddressService 收货地址服务
type AddressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService 创建地址服务
func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// AddressInput 地址录入字段
type AddressInput struct {
	Type       string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Upsert 按 (用户, 类型) 保存地址，同类型地址覆盖更新
func (s *AddressService) Upsert(userID uint, input AddressInput) (*models.Address, error) {
	addressType := strings.ToLower(strings.TrimSpace(input.Type))
	if addressType == "" {
		addressType = constants.AddressTypeHome
	}
	if addressType != constants.AddressTypeHome && addressType != constants.AddressTypeWork {
		return nil, ErrInvalidAddressType
	}

	now := time.Now()
	address := &models.Address{
		UserID:     userID,
		Type:       addressType,
		Street:     strings.TrimSpace(input.Street),
		City:       strings.TrimSpace(input.City),
		State:      strings.TrimSpace(input.State),
		PostalCode: strings.TrimSpace(input.PostalCode),
		Country:    strings.TrimSpace(input.Country),
		UpdatedAt:  now,
	}
	if err := s.addressRepo.Upsert(address); err != nil {
		return nil, err
	}
	return address, nil
}

// List 用户地址列表
func (s *AddressService) List(userID uint) ([]models.Address, error) {
	return s.addressRepo.ListByUser(userID)
}

// Delete 删除某类型地址
func (s *AddressService) Delete(userID uint, addressType string) error {
	addressType = strings.ToLower(strings.TrimSpace(addressType))
	if addressType != constants.AddressTypeHome && addressType != constants.AddressTypeWork {
		return ErrInvalidAddressType
	}
	exist, err := s.addressRepo.GetByUserAndType(userID, addressType)
	if err != nil {
		return err
	}
	if exist == nil {
		return ErrNotFound
	}
	return s.addressRepo.DeleteByUserAndType(userID, addressType)
}
