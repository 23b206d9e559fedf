package model

import (
	"time"

	"gorm.io/gorm"
)

type Warehouse struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"size:150;uniqueIndex;not null" json:"name"`
	Location  string         `gorm:"type:text" json:"location"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Inventories []Inventory `gorm:"foreignKey:WarehouseID;constraint:OnDelete:CASCADE" json:"inventories,omitempty"`
}

func (Warehouse) TableName() string {
	return "warehouses"
}

// Inventory tracks the stock of one variant in one warehouse.
type Inventory struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	VariantID   uint           `gorm:"not null;uniqueIndex:idx_inventory_variant_warehouse" json:"variant_id"`
	WarehouseID uint           `gorm:"not null;uniqueIndex:idx_inventory_variant_warehouse" json:"warehouse_id"`
	Quantity    int            `gorm:"not null;default:0" json:"quantity"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Variant   *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
	Warehouse *Warehouse      `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
}

func (Inventory) TableName() string {
	return "inventories"
}
