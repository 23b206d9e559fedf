package model

import (
	"time"
)

// CartItem ties a user to exactly one catalog reference: either a
// product or one of its variants, never both. The pair uniqueness is
// enforced at the database so concurrent adds of the same item collapse
// into a single row. Rows are transient and hard-deleted: a soft delete
// would keep the removed row in the unique index and block re-adding
// the same item.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_cart_user_product;uniqueIndex:idx_cart_user_variant" json:"user_id"`
	ProductID *uint     `gorm:"uniqueIndex:idx_cart_user_product" json:"product_id,omitempty"`
	VariantID *uint     `gorm:"uniqueIndex:idx_cart_user_variant" json:"variant_id,omitempty"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User    User            `gorm:"foreignKey:UserID" json:"-"`
	Product *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
