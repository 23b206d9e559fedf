package service

import (
	"errors"

	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/internal/app/repository"
	apperrors "github.com/olumide/foodloan-backend/internal/errors"
	"github.com/olumide/foodloan-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrWishlistItemNotFound = errors.New("wishlist item not found")

// WishlistService keeps per-user saved items. The exclusivity rule is
// the same as the cart's: a line points at a product or a variant,
// never both. Saving an already-saved item is a no-op.
type WishlistService interface {
	GetUserWishlist(userID uint) ([]model.WishlistItem, error)
	AddToWishlist(userID uint, productID, variantID *uint) (*model.WishlistItem, error)
	RemoveFromWishlist(userID, itemID uint) error
	ClearWishlist(userID uint) error
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	pricing      PricingService
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, pricing PricingService) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		pricing:      pricing,
	}
}

func (s *wishlistService) GetUserWishlist(userID uint) ([]model.WishlistItem, error) {
	return s.wishlistRepo.FindByUserID(userID)
}

func (s *wishlistService) AddToWishlist(userID uint, productID, variantID *uint) (*model.WishlistItem, error) {
	logger.Info("Adding item to wishlist", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"variant_id": variantID,
	})

	if (productID == nil) == (variantID == nil) {
		return nil, ErrCartInvalidSelection
	}

	// Confirms the reference exists before writing
	if _, err := s.pricing.ResolvePrice(productID, variantID); err != nil {
		return nil, err
	}

	var (
		existing *model.WishlistItem
		err      error
	)
	if productID != nil {
		existing, err = s.wishlistRepo.FindByUserAndProduct(userID, *productID)
	} else {
		existing, err = s.wishlistRepo.FindByUserAndVariant(userID, *variantID)
	}
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := &model.WishlistItem{
		UserID:    userID,
		ProductID: productID,
		VariantID: variantID,
	}
	if err := s.wishlistRepo.Create(item); err != nil {
		if apperrors.IsUniqueViolation(err) {
			// Racing save of the same item, return the winner
			if productID != nil {
				return s.wishlistRepo.FindByUserAndProduct(userID, *productID)
			}
			return s.wishlistRepo.FindByUserAndVariant(userID, *variantID)
		}
		return nil, err
	}
	return item, nil
}

func (s *wishlistService) RemoveFromWishlist(userID, itemID uint) error {
	item, err := s.wishlistRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWishlistItemNotFound
		}
		return err
	}
	if item.UserID != userID {
		return ErrWishlistItemNotFound
	}
	return s.wishlistRepo.Delete(itemID)
}

func (s *wishlistService) ClearWishlist(userID uint) error {
	logger.Info("Clearing wishlist", map[string]interface{}{
		"user_id": userID,
	})
	return s.wishlistRepo.DeleteByUserID(userID)
}
