package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Name        string          `gorm:"size:150;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"base_price"` // NGN; variants carry their own price
	CategoryID  *uint           `gorm:"index" json:"category_id,omitempty"`
	ImageURL    string          `json:"image_url"`
	Tags        pq.StringArray  `gorm:"type:text[]" json:"tags"` // e.g. ["grains", "staple"]
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	Category *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// ProductVariant is a purchasable variation of a product (pack size,
// brand). Its price overrides the parent product's base price.
type ProductVariant struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Name      string          `gorm:"size:150;not null" json:"name"` // e.g. "50kg bag"
	SKU       string          `gorm:"size:64;uniqueIndex;not null" json:"sku"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	ImageURL  string          `json:"image_url"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`

	Product     *Product    `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Inventories []Inventory `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE" json:"inventories,omitempty"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}
