package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// DefaultCurrency is carried as a label only; no conversion happens
// anywhere in the system.
const DefaultCurrency = "NGN"

// Order is immutable once created. The only permitted mutation is an
// append to TrackingUpdates.
type Order struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Reference   string          `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	AddressID   uint            `gorm:"not null;index" json:"address_id"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_amount"`
	Currency    string          `gorm:"size:10;not null;default:'NGN'" json:"currency"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	User            User             `gorm:"foreignKey:UserID" json:"-"`
	Address         Address          `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	OrderItems      []OrderItem      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
	TrackingUpdates []TrackingUpdate `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"tracking_updates,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is a denormalized snapshot of a cart line at checkout time.
// UnitPrice and Total never change, even when catalog prices do.
type OrderItem struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID *uint           `gorm:"index" json:"product_id,omitempty"`
	VariantID *uint           `gorm:"index" json:"variant_id,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Currency  string          `gorm:"size:10;not null;default:'NGN'" json:"currency"`
	Total     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total"`
	CreatedAt time.Time       `json:"created_at"`

	Order   Order           `gorm:"foreignKey:OrderID" json:"-"`
	Product *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// TrackingUpdate is one entry of an order's append-only status trail.
// Rows are never updated or deleted; the first row is always PENDING.
type TrackingUpdate struct {
	ID        uint        `gorm:"primarykey" json:"id"`
	OrderID   uint        `gorm:"not null;index" json:"order_id"`
	Status    OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt time.Time   `json:"updated_at"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (TrackingUpdate) TableName() string {
	return "tracking_updates"
}
