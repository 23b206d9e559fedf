package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/olumide/foodloan-backend/internal/app/service"
	apperrors "github.com/olumide/foodloan-backend/internal/errors"
	"github.com/olumide/foodloan-backend/internal/middleware"
)

type WishlistController struct {
	wishlistService service.WishlistService
}

func NewWishlistController(wishlistService service.WishlistService) *WishlistController {
	return &WishlistController{
		wishlistService: wishlistService,
	}
}

type AddToWishlistRequest struct {
	ProductID *uint `json:"product_id"`
	VariantID *uint `json:"variant_id"`
}

// GetWishlist returns the user's wishlist
// GET /api/v1/wishlist
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	items, err := ctrl.wishlistService.GetUserWishlist(userID)
	if err != nil {
		log.Error("Failed to fetch wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"items": items,
			"count": len(items),
		},
	})
}

// AddToWishlist saves a catalog reference. Re-adding an existing entry
// is a no-op that returns the stored item.
// POST /api/v1/wishlist
func (ctrl *WishlistController) AddToWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	item, err := ctrl.wishlistService.AddToWishlist(userID, req.ProductID, req.VariantID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartInvalidSelection):
			apperrors.BadRequest(c, apperrors.CartInvalidSelection, "Provide exactly one of product_id or variant_id")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
		case errors.Is(err, service.ErrVariantNotFound):
			apperrors.NotFound(c, apperrors.CatalogVariantNotFound, "Product variant not found")
		default:
			log.Error("Failed to add wishlist item", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "add wishlist item")
		}
		return
	}

	log.Info("Wishlist item added", map[string]interface{}{
		"user_id": userID,
		"item_id": item.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   item,
	})
}

// RemoveFromWishlist removes a wishlist entry
// DELETE /api/v1/wishlist/:id
func (ctrl *WishlistController) RemoveFromWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid wishlist item ID")
		return
	}

	if err := ctrl.wishlistService.RemoveFromWishlist(userID, id); err != nil {
		if errors.Is(err, service.ErrWishlistItemNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Wishlist item not found")
			return
		}
		log.Error("Failed to remove wishlist item", err, map[string]interface{}{
			"user_id": userID,
			"item_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "remove wishlist item")
		return
	}

	log.Info("Wishlist item removed", map[string]interface{}{
		"user_id": userID,
		"item_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Wishlist item removed",
	})
}

// ClearWishlist removes every entry from the user's wishlist
// DELETE /api/v1/wishlist
func (ctrl *WishlistController) ClearWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.wishlistService.ClearWishlist(userID); err != nil {
		log.Error("Failed to clear wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "clear wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Wishlist cleared",
	})
}
