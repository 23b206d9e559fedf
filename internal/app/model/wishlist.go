package model

import (
	"time"
)

// WishlistItem references exactly one of a product or a variant, same
// exclusivity rule as CartItem but without a quantity. Hard-deleted for
// the same reason as CartItem: removed entries must be re-addable.
type WishlistItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_wishlist_user_product;uniqueIndex:idx_wishlist_user_variant" json:"user_id"`
	ProductID *uint     `gorm:"uniqueIndex:idx_wishlist_user_product" json:"product_id,omitempty"`
	VariantID *uint     `gorm:"uniqueIndex:idx_wishlist_user_variant" json:"variant_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	User    User            `gorm:"foreignKey:UserID" json:"-"`
	Product *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
