package repository

import (
	"errors"

	"github.com/bookstore-next/internal/models"

	"gorm.io/gorm"
)

// AddressRepository 收货地址数据访问接口
type AddressRepository interface {
	ListByUser(userID uint) ([]models.Address, error)
	GetByUserAndType(userID uint, addressType string) (*models.Address, error)
	Upsert(address *models.Address) error
	DeleteByUserAndType(userID uint, addressType string) error
	WithTx(tx *gorm.DB) AddressRepository
}

// GormAddressRepository GORM 实现
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓库
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAddressRepository) WithTx(tx *gorm.DB) AddressRepository {
	if tx == nil {
		return r
	}
	return &GormAddressRepository{db: tx}
}

// ListByUser 获取用户地址列表
func (r *GormAddressRepository) ListByUser(userID uint) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.db.Where("user_id = ?", userID).Order("type asc").Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// GetByUserAndType 获取指定类型的地址
func (r *GormAddressRepository) GetByUserAndType(userID uint, addressType string) (*models.Address, error) {
	var address models.Address
	err := r.db.Where("user_id = ? AND type = ?", userID, addressType).First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// Upsert 创建或更新地址（每用户每类型唯一）
func (r *GormAddressRepository) Upsert(address *models.Address) error {
	if address == nil {
		return nil
	}
	var existing models.Address
	err := r.db.Where("user_id = ? AND type = ?", address.UserID, address.Type).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(address).Error
	}
	if err != nil {
		return err
	}
	address.ID = existing.ID
	address.CreatedAt = existing.CreatedAt
	return r.db.Model(&existing).Updates(map[string]interface{}{
		"street":      address.Street,
		"city":        address.City,
		"state":       address.State,
		"postal_code": address.PostalCode,
		"country":     address.Country,
	}).Error
}

// DeleteByUserAndType 删除指定类型的地址
func (r *GormAddressRepository) DeleteByUserAndType(userID uint, addressType string) error {
	return r.db.Where("user_id = ? AND type = ?", userID, addressType).Delete(&models.Address{}).Error
}
