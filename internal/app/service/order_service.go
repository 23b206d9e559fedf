package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/internal/app/repository"
	"github.com/olumide/foodloan-backend/internal/ws"
	"github.com/olumide/foodloan-backend/pkg/logger"
	"github.com/olumide/foodloan-backend/pkg/metrics"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrAddressNotSet   = errors.New("address not set")
	ErrInvalidAddress  = errors.New("address does not belong to user")
	ErrPriceMissing    = errors.New("cart line has no resolvable price")
	ErrInvalidTracking = errors.New("invalid tracking status")
)

type OrderService interface {
	CreateOrder(userID, addressID uint) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByID(userID, orderID uint) (*model.Order, error)
	ListOrders(offset, limit int, status string) ([]model.Order, int64, error)
	AppendTracking(orderID uint, status model.OrderStatus) (*model.TrackingUpdate, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	userRepo  repository.UserRepository
	hub       *ws.Hub
	db        *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	hub *ws.Hub,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
		hub:       hub,
		db:        db,
	}
}

// CreateOrder turns a user's cart into an immutable order. Order lines
// snapshot the price at this moment; later catalog changes never touch
// them. Order creation, the initial PENDING trail entry and cart
// clearing commit as one transaction.
func (s *orderService) CreateOrder(userID, addressID uint) (*model.Order, error) {
	logger.Info("Creating order from cart", map[string]interface{}{
		"user_id":    userID,
		"address_id": addressID,
	})

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !user.IsAddressSet {
		logger.Warn("Cannot create order: no address on file", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrAddressNotSet
	}

	var address model.Address
	if err := s.db.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot create order: address not owned by user", map[string]interface{}{
				"user_id":    userID,
				"address_id": addressID,
			})
			return nil, ErrInvalidAddress
		}
		return nil, err
	}

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		logger.Warn("Cannot create order: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	totalAmount := decimal.Zero
	orderItems := make([]model.OrderItem, 0, len(cartItems))
	for i := range cartItems {
		item := &cartItems[i]
		unitPrice, ok := resolveLinePrice(item)
		if !ok {
			logger.Error("Cart line has no resolvable price", ErrPriceMissing, map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": item.ID,
			})
			return nil, ErrPriceMissing
		}

		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		orderItems = append(orderItems, model.OrderItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			Currency:  model.DefaultCurrency,
			Total:     lineTotal,
		})
		totalAmount = totalAmount.Add(lineTotal)
	}

	order := &model.Order{
		Reference:   "ORD-" + uuid.NewString(),
		UserID:      userID,
		AddressID:   addressID,
		TotalAmount: totalAmount,
		Currency:    model.DefaultCurrency,
		OrderItems:  orderItems,
		TrackingUpdates: []model.TrackingUpdate{
			{Status: model.OrderStatusPending},
		},
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during order creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id":      userID,
			"total_amount": totalAmount.String(),
		})
		return nil, err
	}

	if err := tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to clear cart after order creation", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order transaction", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
		})
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	logger.Info("Order created successfully", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"reference":    order.Reference,
		"total_amount": totalAmount.String(),
		"item_count":   len(orderItems),
	})

	return s.orderRepo.FindByID(order.ID)
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	logger.Debug("Fetching user orders", map[string]interface{}{
		"user_id": userID,
	})

	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.UserID != userID {
		logger.Warn("Order access denied: ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"owner_id": order.UserID,
		})
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) ListOrders(offset, limit int, status string) ([]model.Order, int64, error) {
	return s.orderRepo.FindAll(offset, limit, status)
}

// AppendTracking adds one entry to an order's trail and pushes it to
// the owner's live connections. Prior entries are never touched.
func (s *orderService) AppendTracking(orderID uint, status model.OrderStatus) (*model.TrackingUpdate, error) {
	switch status {
	case model.OrderStatusPending, model.OrderStatusConfirmed, model.OrderStatusShipped,
		model.OrderStatusDelivered, model.OrderStatusCancelled:
	default:
		return nil, ErrInvalidTracking
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	update := &model.TrackingUpdate{
		OrderID: orderID,
		Status:  status,
	}
	if err := s.orderRepo.AppendTracking(update); err != nil {
		return nil, err
	}

	metrics.TrackingUpdates.WithLabelValues(string(status)).Inc()
	if s.hub != nil {
		s.hub.PushToUser(order.UserID, ws.TrackingEvent{
			OrderID:   orderID,
			Reference: order.Reference,
			Status:    string(status),
			UpdatedAt: update.CreatedAt,
		})
	}

	logger.Info("Tracking update appended", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	return update, nil
}
