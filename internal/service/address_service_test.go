package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bookstore-next/internal/constants"
	"github.com/bookstore-next/internal/models"
	"github.com/bookstore-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAddressServiceTest(t *testing.T) (*AddressService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:address_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Address{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewAddressService(repository.NewAddressRepository(db))
	return svc, db
}

func TestUpsertDefaultsToHome(t *testing.T) {
	svc, db := setupAddressServiceTest(t)
	user := createTestUser(t, db, "addr_default@example.com", constants.RoleCustomer)

	address, err := svc.Upsert(user.ID, AddressInput{Street: "1 Main St", City: "Springfield"})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if address.Type != constants.AddressTypeHome {
		t.Fatalf("expected home type by default, got %s", address.Type)
	}
}

func TestUpsertRejectsUnknownType(t *testing.T) {
	svc, db := setupAddressServiceTest(t)
	user := createTestUser(t, db, "addr_invalid@example.com", constants.RoleCustomer)

	if _, err := svc.Upsert(user.ID, AddressInput{Type: "vacation", Street: "2 Beach Rd"}); !errors.Is(err, ErrInvalidAddressType) {
		t.Fatalf("expected ErrInvalidAddressType, got %v", err)
	}
}

func TestUpsertSameTypeOverwrites(t *testing.T) {
	svc, db := setupAddressServiceTest(t)
	user := createTestUser(t, db, "addr_overwrite@example.com", constants.RoleCustomer)

	if _, err := svc.Upsert(user.ID, AddressInput{Type: constants.AddressTypeHome, Street: "1 Old St", City: "Springfield"}); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if _, err := svc.Upsert(user.ID, AddressInput{Type: "Home", Street: "2 New St", City: "Springfield"}); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	// 同类型覆盖更新，不产生第二条记录
	var stored []models.Address
	if err := db.Where("user_id = ?", user.ID).Find(&stored).Error; err != nil {
		t.Fatalf("load addresses failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected single home address, got %d", len(stored))
	}
	if stored[0].Street != "2 New St" {
		t.Fatalf("expected overwritten street, got %s", stored[0].Street)
	}
}

func TestUpsertKeepsTypesSeparate(t *testing.T) {
	svc, db := setupAddressServiceTest(t)
	user := createTestUser(t, db, "addr_types@example.com", constants.RoleCustomer)

	if _, err := svc.Upsert(user.ID, AddressInput{Type: constants.AddressTypeHome, Street: "1 Home St"}); err != nil {
		t.Fatalf("home upsert failed: %v", err)
	}
	if _, err := svc.Upsert(user.ID, AddressInput{Type: constants.AddressTypeWork, Street: "1 Work St"}); err != nil {
		t.Fatalf("work upsert failed: %v", err)
	}

	addresses, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(addresses) != 2 {
		t.Fatalf("expected home and work address, got %d", len(addresses))
	}
}

func TestDeleteAddress(t *testing.T) {
	svc, db := setupAddressServiceTest(t)
	user := createTestUser(t, db, "addr_delete@example.com", constants.RoleCustomer)

	if err := svc.Delete(user.ID, constants.AddressTypeHome); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing address, got %v", err)
	}
	if err := svc.Delete(user.ID, "vacation"); !errors.Is(err, ErrInvalidAddressType) {
		t.Fatalf("expected ErrInvalidAddressType, got %v", err)
	}

	if _, err := svc.Upsert(user.ID, AddressInput{Type: constants.AddressTypeWork, Street: "1 Work St"}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := svc.Delete(user.ID, constants.AddressTypeWork); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	addresses, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(addresses) != 0 {
		t.Fatalf("expected no addresses left, got %d", len(addresses))
	}
}
