package service

import (
	"errors"
	"fmt"

	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/internal/app/repository"
	"github.com/olumide/foodloan-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrAddressNotFound = errors.New("address not found")

// AddressInput carries the user-editable address fields.
type AddressInput struct {
	Label   string `json:"label"`
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Country string `json:"country"`
	ZipCode string `json:"zip_code"`
}

type AddressService interface {
	CreateAddress(userID uint, input AddressInput) (*model.Address, error)
	GetUserAddresses(userID uint) ([]model.Address, error)
	UpdateAddress(userID, addressID uint, input AddressInput) (*model.Address, error)
	DeleteAddress(userID, addressID uint) error
}

type addressService struct {
	addressRepo repository.AddressRepository
	userRepo    repository.UserRepository
	db          *gorm.DB
}

func NewAddressService(addressRepo repository.AddressRepository, userRepo repository.UserRepository, db *gorm.DB) AddressService {
	return &addressService{
		addressRepo: addressRepo,
		userRepo:    userRepo,
		db:          db,
	}
}

// CreateAddress stores a new address. The very first address a user
// creates becomes the default and flips is_address_set; later addresses
// never take the default over.
func (s *addressService) CreateAddress(userID uint, input AddressInput) (*model.Address, error) {
	logger.Info("Creating address", map[string]interface{}{
		"user_id": userID,
		"city":    input.City,
	})

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	count, err := s.addressRepo.CountByUserID(userID)
	if err != nil {
		return nil, err
	}

	address := &model.Address{
		UserID:    userID,
		Label:     input.Label,
		Street:    input.Street,
		City:      input.City,
		State:     input.State,
		Country:   input.Country,
		ZipCode:   input.ZipCode,
		IsDefault: count == 0,
	}
	if address.Country == "" {
		address.Country = "Nigeria"
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during address creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	if err := tx.Create(address).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create address", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if !user.IsAddressSet {
		if err := tx.Model(&model.User{}).Where("id = ?", userID).
			Update("is_address_set", true).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to flip is_address_set", err, map[string]interface{}{
				"user_id": userID,
			})
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Address created", map[string]interface{}{
		"user_id":    userID,
		"address_id": address.ID,
		"is_default": address.IsDefault,
	})
	return address, nil
}

func (s *addressService) GetUserAddresses(userID uint) ([]model.Address, error) {
	return s.addressRepo.FindByUserID(userID)
}

func (s *addressService) UpdateAddress(userID, addressID uint, input AddressInput) (*model.Address, error) {
	address, err := s.ownedAddress(userID, addressID)
	if err != nil {
		return nil, err
	}

	address.Label = input.Label
	address.Street = input.Street
	address.City = input.City
	address.State = input.State
	if input.Country != "" {
		address.Country = input.Country
	}
	address.ZipCode = input.ZipCode

	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *addressService) DeleteAddress(userID, addressID uint) error {
	if _, err := s.ownedAddress(userID, addressID); err != nil {
		return err
	}
	return s.addressRepo.Delete(addressID)
}

func (s *addressService) ownedAddress(userID, addressID uint) (*model.Address, error) {
	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.UserID != userID {
		logger.Warn("Address access denied: ownership mismatch", map[string]interface{}{
			"user_id":    userID,
			"address_id": addressID,
			"owner_id":   address.UserID,
		})
		return nil, ErrAddressNotFound
	}
	return address, nil
}
