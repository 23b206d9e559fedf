package service

import (
	"errors"

	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/internal/app/repository"
	"github.com/olumide/foodloan-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("product variant not found")
)

// PricingService resolves the current unit price for a catalog reference.
// A variant's own price always wins over its parent product's base price.
type PricingService interface {
	ResolvePrice(productID, variantID *uint) (decimal.Decimal, error)
}

type pricingService struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
}

func NewPricingService(productRepo repository.ProductRepository, variantRepo repository.VariantRepository) PricingService {
	return &pricingService{
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

func (s *pricingService) ResolvePrice(productID, variantID *uint) (decimal.Decimal, error) {
	if variantID != nil {
		variant, err := s.variantRepo.FindByID(*variantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Price lookup failed: variant not found", map[string]interface{}{
					"variant_id": *variantID,
				})
				return decimal.Zero, ErrVariantNotFound
			}
			logger.Error("Failed to fetch variant for pricing", err, map[string]interface{}{
				"variant_id": *variantID,
			})
			return decimal.Zero, err
		}
		return variant.Price, nil
	}

	if productID != nil {
		product, err := s.productRepo.FindByID(*productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Price lookup failed: product not found", map[string]interface{}{
					"product_id": *productID,
				})
				return decimal.Zero, ErrProductNotFound
			}
			logger.Error("Failed to fetch product for pricing", err, map[string]interface{}{
				"product_id": *productID,
			})
			return decimal.Zero, err
		}
		return product.BasePrice, nil
	}

	return decimal.Zero, ErrProductNotFound
}

// resolveLinePrice prices an already-loaded cart line without further
// lookups. Used during checkout where the lines come in preloaded.
func resolveLinePrice(item *model.CartItem) (decimal.Decimal, bool) {
	if item.VariantID != nil && item.Variant != nil {
		return item.Variant.Price, true
	}
	if item.ProductID != nil && item.Product != nil {
		return item.Product.BasePrice, true
	}
	return decimal.Zero, false
}
