package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/internal/app/service"
	apperrors "github.com/olumide/foodloan-backend/internal/errors"
	"github.com/olumide/foodloan-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type CheckoutRequest struct {
	AddressID uint `json:"address_id" binding:"required"`
}

type AppendTrackingRequest struct {
	Status string `json:"status" binding:"required"`
}

// Checkout converts the user's cart into an order
// POST /api/v1/orders
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	order, err := ctrl.orderService.CreateOrder(userID, req.AddressID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
		case errors.Is(err, service.ErrAddressNotSet):
			apperrors.BadRequest(c, apperrors.OrderAddressNotSet, "Set a delivery address before checking out")
		case errors.Is(err, service.ErrInvalidAddress):
			apperrors.BadRequest(c, apperrors.OrderInvalidAddr, "Delivery address does not belong to this account")
		case errors.Is(err, service.ErrEmptyCart):
			apperrors.BadRequest(c, apperrors.OrderEmptyCart, "Cart is empty")
		case errors.Is(err, service.ErrPriceMissing):
			log.Error("Checkout hit an unpriceable cart line", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.OrderPriceMissing, "A cart item could not be priced")
		default:
			log.Error("Checkout failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "checkout")
		}
		return
	}

	log.Info("Order created", map[string]interface{}{
		"user_id":   userID,
		"order_id":  order.ID,
		"reference": order.Reference,
		"total":     order.TotalAmount,
	})

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   order,
	})
}

// GetMyOrders returns the authenticated user's orders
// GET /api/v1/orders
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to fetch orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"orders": orders,
			"count":  len(orders),
		},
	})
}

// GetOrder returns a single order with its items and tracking trail
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.GetOrderByID(userID, id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   order,
	})
}

// ListOrders returns all orders, optionally filtered by current status
// GET /api/v1/admin/orders?status=PENDING&offset=0&limit=20
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := c.Query("status")

	orders, total, err := ctrl.orderService.ListOrders(offset, limit, status)
	if err != nil {
		log.Error("Failed to list orders", err, map[string]interface{}{
			"status": status,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"orders": orders,
			"total":  total,
			"offset": offset,
			"limit":  limit,
		},
	})
}

// AppendTracking appends a status entry to an order's tracking trail
// POST /api/v1/admin/orders/:id/tracking
func (ctrl *OrderController) AppendTracking(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	var req AppendTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid tracking request", map[string]interface{}{
			"order_id": id,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	update, err := ctrl.orderService.AppendTracking(id, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrInvalidTracking):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown order status")
		default:
			log.Error("Failed to append tracking update", err, map[string]interface{}{
				"order_id": id,
				"status":   req.Status,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "append tracking")
		}
		return
	}

	log.Info("Tracking update appended", map[string]interface{}{
		"order_id": id,
		"status":   update.Status,
	})

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   update,
	})
}
