package service

import (
	"errors"

	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/internal/app/repository"
	apperrors "github.com/olumide/foodloan-backend/internal/errors"
	"github.com/olumide/foodloan-backend/pkg/logger"
	"github.com/olumide/foodloan-backend/pkg/metrics"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrCartForbidden        = errors.New("cart item belongs to another user")
	ErrCartInvalidSelection = errors.New("exactly one of product or variant must be given")
	ErrCartInvalidQuantity  = errors.New("invalid quantity")
	ErrLoanLimitExceeded    = errors.New("loan limit exceeded")
)

// Cart holds a user's lines together with their freshly priced total.
type Cart struct {
	Items []model.CartItem `json:"items"`
	Total decimal.Decimal  `json:"total"`
}

type CartService interface {
	GetUserCart(userID uint) (*Cart, error)
	AddToCart(userID uint, productID, variantID *uint, quantity int, paymentMethod string) (*model.CartItem, error)
	SetQuantity(userID, lineID uint, quantity int, paymentMethod string) (*model.CartItem, bool, error)
	RemoveLine(userID, lineID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo repository.CartRepository
	userRepo repository.UserRepository
	pricing  PricingService
	credit   CreditLedger
	locks    *userLocks
}

func NewCartService(
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	pricing PricingService,
	credit CreditLedger,
) CartService {
	return &cartService{
		cartRepo: cartRepo,
		userRepo: userRepo,
		pricing:  pricing,
		credit:   credit,
		locks:    newUserLocks(),
	}
}

func (s *cartService) GetUserCart(userID uint) (*Cart, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	total := decimal.Zero
	for i := range cartItems {
		price, err := s.priceLine(&cartItems[i])
		if err != nil {
			return nil, err
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(cartItems[i].Quantity))))
	}

	logger.Info("User cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(cartItems),
		"total":   total.String(),
	})
	return &Cart{Items: cartItems, Total: total}, nil
}

func (s *cartService) AddToCart(userID uint, productID, variantID *uint, quantity int, paymentMethod string) (*model.CartItem, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":        userID,
		"product_id":     productID,
		"variant_id":     variantID,
		"quantity":       quantity,
		"payment_method": paymentMethod,
	})

	if (productID == nil) == (variantID == nil) {
		logger.Warn("Cannot add to cart: catalog reference is not exactly one of product/variant", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrCartInvalidSelection
	}
	if quantity < 1 {
		return nil, ErrCartInvalidQuantity
	}

	// Resolve up front so a dangling reference fails before the store
	// is touched.
	unitPrice, err := s.pricing.ResolvePrice(productID, variantID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	existing, err := s.findExistingLine(userID, productID, variantID)
	if err != nil {
		return nil, err
	}

	mergedQuantity := quantity
	var excludeLineID *uint
	if existing != nil {
		mergedQuantity = existing.Quantity + quantity
		excludeLineID = &existing.ID
	}

	candidateValue := unitPrice.Mul(decimal.NewFromInt(int64(mergedQuantity)))
	if err := s.checkCeiling(userID, excludeLineID, candidateValue, paymentMethod); err != nil {
		return nil, err
	}

	if existing != nil {
		logger.Debug("Merging into existing cart line", map[string]interface{}{
			"cart_item_id": existing.ID,
			"old_qty":      existing.Quantity,
			"new_qty":      mergedQuantity,
		})
		existing.Quantity = mergedQuantity
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	cartItem := &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		VariantID: variantID,
		Quantity:  quantity,
	}

	if err := s.cartRepo.Create(cartItem); err != nil {
		if apperrors.IsUniqueViolation(err) {
			// Another writer created the line between our lookup and the
			// insert. Retry as a merge against the fresh row.
			return s.retryAsMerge(userID, productID, variantID, quantity, paymentMethod)
		}
		logger.Error("Failed to create cart item", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Cart item added successfully", map[string]interface{}{
		"cart_item_id": cartItem.ID,
	})
	return cartItem, nil
}

func (s *cartService) retryAsMerge(userID uint, productID, variantID *uint, quantity int, paymentMethod string) (*model.CartItem, error) {
	logger.Debug("Cart insert hit uniqueness constraint, retrying as merge", map[string]interface{}{
		"user_id": userID,
	})

	existing, err := s.findExistingLine(userID, productID, variantID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCartItemNotFound
	}

	unitPrice, err := s.pricing.ResolvePrice(productID, variantID)
	if err != nil {
		return nil, err
	}

	mergedQuantity := existing.Quantity + quantity
	candidateValue := unitPrice.Mul(decimal.NewFromInt(int64(mergedQuantity)))
	if err := s.checkCeiling(userID, &existing.ID, candidateValue, paymentMethod); err != nil {
		return nil, err
	}

	existing.Quantity = mergedQuantity
	if err := s.cartRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *cartService) SetQuantity(userID, lineID uint, quantity int, paymentMethod string) (*model.CartItem, bool, error) {
	logger.Info("Setting cart line quantity", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": lineID,
		"quantity":     quantity,
	})

	if quantity < 0 {
		return nil, false, ErrCartInvalidQuantity
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	cartItem, err := s.cartRepo.FindByID(lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrCartItemNotFound
		}
		return nil, false, err
	}

	if cartItem.UserID != userID {
		logger.Warn("Cart line update denied: ownership mismatch", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": lineID,
			"owner_id":     cartItem.UserID,
		})
		return nil, false, ErrCartForbidden
	}

	if quantity == 0 {
		if err := s.cartRepo.Delete(lineID); err != nil {
			return nil, false, err
		}
		logger.Info("Cart line removed via zero quantity", map[string]interface{}{
			"cart_item_id": lineID,
		})
		return nil, true, nil
	}

	unitPrice, err := s.pricing.ResolvePrice(cartItem.ProductID, cartItem.VariantID)
	if err != nil {
		return nil, false, err
	}

	candidateValue := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	if err := s.checkCeiling(userID, &cartItem.ID, candidateValue, paymentMethod); err != nil {
		return nil, false, err
	}

	cartItem.Quantity = quantity
	if err := s.cartRepo.Update(cartItem); err != nil {
		return nil, false, err
	}

	logger.Info("Cart line quantity updated", map[string]interface{}{
		"cart_item_id": lineID,
		"quantity":     quantity,
	})
	return cartItem, false, nil
}

func (s *cartService) RemoveLine(userID, lineID uint) error {
	logger.Info("Removing cart line", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": lineID,
	})

	cartItem, err := s.cartRepo.FindByID(lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}

	if cartItem.UserID != userID {
		logger.Warn("Cart line removal denied: ownership mismatch", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": lineID,
			"owner_id":     cartItem.UserID,
		})
		return ErrCartForbidden
	}

	return s.cartRepo.Delete(lineID)
}

func (s *cartService) ClearCart(userID uint) error {
	logger.Info("Clearing user cart", map[string]interface{}{
		"user_id": userID,
	})

	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}

// checkCeiling runs the loan gate. It revalues the whole cart from
// fresh price lookups rather than trusting a running total, so a
// catalog price change between requests cannot let a stale total slip
// past the ceiling. Non-loan payment methods skip the gate.
func (s *cartService) checkCeiling(userID uint, excludeLineID *uint, candidateValue decimal.Decimal, paymentMethod string) error {
	if paymentMethod != PaymentMethodLoan {
		return nil
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	currentTotal, err := s.projectedTotal(userID, excludeLineID)
	if err != nil {
		return err
	}

	ceiling := s.credit.Ceiling(user)
	if s.credit.WouldExceed(currentTotal, candidateValue, ceiling) {
		metrics.CartLoanRejections.Inc()
		logger.Warn("Cart mutation rejected: loan limit exceeded", map[string]interface{}{
			"user_id":         userID,
			"current_total":   currentTotal.String(),
			"candidate_value": candidateValue.String(),
			"ceiling":         ceiling.String(),
		})
		return ErrLoanLimitExceeded
	}
	return nil
}

// projectedTotal sums quantity times current price over the user's
// lines, skipping excludeLineID when the caller is revaluing that line.
func (s *cartService) projectedTotal(userID uint, excludeLineID *uint) (decimal.Decimal, error) {
	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for i := range cartItems {
		if excludeLineID != nil && cartItems[i].ID == *excludeLineID {
			continue
		}
		price, err := s.priceLine(&cartItems[i])
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(cartItems[i].Quantity))))
	}
	return total, nil
}

func (s *cartService) priceLine(item *model.CartItem) (decimal.Decimal, error) {
	if price, ok := resolveLinePrice(item); ok {
		return price, nil
	}
	return s.pricing.ResolvePrice(item.ProductID, item.VariantID)
}

func (s *cartService) findExistingLine(userID uint, productID, variantID *uint) (*model.CartItem, error) {
	var (
		existing *model.CartItem
		err      error
	)
	if productID != nil {
		existing, err = s.cartRepo.FindByUserAndProduct(userID, *productID)
	} else {
		existing, err = s.cartRepo.FindByUserAndVariant(userID, *variantID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return existing, nil
}
