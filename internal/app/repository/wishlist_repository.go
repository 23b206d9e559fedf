package repository

import (
	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/pkg/logger"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	Create(item *model.WishlistItem) error
	FindByID(id uint) (*model.WishlistItem, error)
	FindByUserID(userID uint) ([]model.WishlistItem, error)
	FindByUserAndProduct(userID, productID uint) (*model.WishlistItem, error)
	FindByUserAndVariant(userID, variantID uint) (*model.WishlistItem, error)
	Delete(id uint) error
	DeleteByUserID(userID uint) error
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(item *model.WishlistItem) error {
	logger.Debug("Creating wishlist item in database", map[string]interface{}{
		"user_id":    item.UserID,
		"product_id": item.ProductID,
		"variant_id": item.VariantID,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create wishlist item in database", err, map[string]interface{}{
			"user_id": item.UserID,
		})
		return err
	}
	return nil
}

func (r *wishlistRepository) FindByID(id uint) (*model.WishlistItem, error) {
	var item model.WishlistItem
	err := r.db.Preload("Product").
		Preload("Variant").
		Preload("Variant.Product").
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) FindByUserID(userID uint) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	err := r.db.Where("user_id = ?", userID).
		Preload("Product").
		Preload("Variant").
		Preload("Variant.Product").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find wishlist items by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return items, nil
}

func (r *wishlistRepository) FindByUserAndProduct(userID, productID uint) (*model.WishlistItem, error) {
	var item model.WishlistItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) FindByUserAndVariant(userID, variantID uint) (*model.WishlistItem, error) {
	var item model.WishlistItem
	err := r.db.Where("user_id = ? AND variant_id = ?", userID, variantID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) Delete(id uint) error {
	logger.Debug("Deleting wishlist item from database", map[string]interface{}{
		"wishlist_item_id": id,
	})

	if err := r.db.Delete(&model.WishlistItem{}, id).Error; err != nil {
		logger.Error("Failed to delete wishlist item from database", err, map[string]interface{}{
			"wishlist_item_id": id,
		})
		return err
	}
	return nil
}

func (r *wishlistRepository) DeleteByUserID(userID uint) error {
	logger.Debug("Clearing wishlist in database", map[string]interface{}{
		"user_id": userID,
	})

	if err := r.db.Where("user_id = ?", userID).Delete(&model.WishlistItem{}).Error; err != nil {
		logger.Error("Failed to clear wishlist in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}
