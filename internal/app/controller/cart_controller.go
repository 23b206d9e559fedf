package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/olumide/foodloan-backend/internal/app/service"
	apperrors "github.com/olumide/foodloan-backend/internal/errors"
	"github.com/olumide/foodloan-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID     *uint  `json:"product_id"`
	VariantID     *uint  `json:"variant_id"`
	Quantity      int    `json:"quantity" binding:"required,gt=0"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type UpdateCartRequest struct {
	Quantity      *int   `json:"quantity" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// GetCart returns user's cart with a freshly priced total
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	cart, err := ctrl.cartService.GetUserCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"items": cart.Items,
			"count": len(cart.Items),
			"total": cart.Total,
		},
	})
}

// AddToCart adds an item to the cart, merging into an existing line for
// the same catalog reference
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	item, err := ctrl.cartService.AddToCart(userID, req.ProductID, req.VariantID, req.Quantity, req.PaymentMethod)
	if err != nil {
		ctrl.respondCartError(c, err, userID)
		return
	}

	log.Info("Item added to cart", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   item,
	})
}

// UpdateCartItem sets the absolute quantity of a cart line. Quantity
// zero removes the line.
// PUT /api/v1/cart/:id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update cart request", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": id,
			"error":        err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	item, removed, err := ctrl.cartService.SetQuantity(userID, id, *req.Quantity, req.PaymentMethod)
	if err != nil {
		ctrl.respondCartError(c, err, userID)
		return
	}

	if removed {
		log.Info("Cart line removed by zero quantity", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": id,
		})
		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data": gin.H{
				"removed": true,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   item,
	})
}

// RemoveFromCart removes a cart line
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	if err := ctrl.cartService.RemoveLine(userID, id); err != nil {
		ctrl.respondCartError(c, err, userID)
		return
	}

	log.Info("Cart item removed", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Cart item removed",
	})
}

// ClearCart removes every line from the user's cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "clear cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Cart cleared",
	})
}

// respondCartError maps cart service sentinels to the error envelope.
func (ctrl *CartController) respondCartError(c *gin.Context, err error, userID uint) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrCartInvalidSelection):
		apperrors.BadRequest(c, apperrors.CartInvalidSelection, "Provide exactly one of product_id or variant_id")
	case errors.Is(err, service.ErrCartInvalidQuantity):
		apperrors.BadRequest(c, apperrors.CartInvalidQuantity, "Quantity must not be negative")
	case errors.Is(err, service.ErrLoanLimitExceeded):
		log.Warn("Cart change rejected by loan limit", map[string]interface{}{
			"user_id": userID,
		})
		apperrors.BadRequest(c, apperrors.CartLoanLimitExceeded, "This change would exceed your loan limit")
	case errors.Is(err, service.ErrCartItemNotFound):
		apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
	case errors.Is(err, service.ErrCartForbidden):
		apperrors.Forbidden(c, "This cart item belongs to another user")
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
	case errors.Is(err, service.ErrVariantNotFound):
		apperrors.NotFound(c, apperrors.CatalogVariantNotFound, "Product variant not found")
	case errors.Is(err, service.ErrUserNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
	default:
		log.Error("Cart operation failed", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "cart")
	}
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
