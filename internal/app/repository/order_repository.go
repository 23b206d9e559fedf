package repository

import (
	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *model.Order) error
	FindByID(id uint) (*model.Order, error)
	FindByReference(reference string) (*model.Order, error)
	FindByUserID(userID uint) ([]model.Order, error)
	FindAll(offset, limit int, status string) ([]model.Order, int64, error)
	AppendTracking(update *model.TrackingUpdate) error
	FindTrackingByOrderID(orderID uint) ([]model.TrackingUpdate, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) preloadOrder() *gorm.DB {
	return r.db.Preload("OrderItems").
		Preload("OrderItems.Product").
		Preload("OrderItems.Variant").
		Preload("TrackingUpdates", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Address")
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"user_id":      order.UserID,
		"reference":    order.Reference,
		"total_amount": order.TotalAmount.String(),
	})

	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"user_id":   order.UserID,
			"reference": order.Reference,
		})
		return err
	}

	logger.Debug("Order created in database", map[string]interface{}{
		"order_id":  order.ID,
		"user_id":   order.UserID,
		"reference": order.Reference,
	})
	return nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	logger.Debug("Finding order by ID in database", map[string]interface{}{
		"order_id": id,
	})

	var order model.Order
	if err := r.preloadOrder().First(&order, id).Error; err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByReference(reference string) (*model.Order, error) {
	var order model.Order
	err := r.preloadOrder().Where("reference = ?", reference).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByUserID(userID uint) ([]model.Order, error) {
	logger.Debug("Finding orders by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var orders []model.Order
	err := r.preloadOrder().Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Orders found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})
	return orders, nil
}

// latestStatusFilter matches orders whose newest tracking entry has the
// given status. Orders carry no status column of their own.
const latestStatusFilter = `orders.id IN (
	SELECT t.order_id FROM tracking_updates t
	WHERE t.id = (SELECT MAX(t2.id) FROM tracking_updates t2 WHERE t2.order_id = t.order_id)
	AND t.status = ?
)`

func (r *orderRepository) FindAll(offset, limit int, status string) ([]model.Order, int64, error) {
	query := r.db.Model(&model.Order{})
	if status != "" {
		query = query.Where(latestStatusFilter, status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count orders in database", err, nil)
		return nil, 0, err
	}

	var orders []model.Order
	listQuery := r.preloadOrder()
	if status != "" {
		listQuery = listQuery.Where(latestStatusFilter, status)
	}
	err := listQuery.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders in database", err, nil)
		return nil, 0, err
	}

	return orders, total, nil
}

// AppendTracking writes one trail entry. The trail is append only, the
// current status is always the newest entry.
func (r *orderRepository) AppendTracking(update *model.TrackingUpdate) error {
	logger.Debug("Appending tracking update in database", map[string]interface{}{
		"order_id": update.OrderID,
		"status":   update.Status,
	})

	if err := r.db.Create(update).Error; err != nil {
		logger.Error("Failed to append tracking update in database", err, map[string]interface{}{
			"order_id": update.OrderID,
			"status":   update.Status,
		})
		return err
	}
	return nil
}

func (r *orderRepository) FindTrackingByOrderID(orderID uint) ([]model.TrackingUpdate, error) {
	var updates []model.TrackingUpdate
	err := r.db.Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&updates).Error
	if err != nil {
		logger.Error("Failed to find tracking updates in database", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	return updates, nil
}
