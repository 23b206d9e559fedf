package repository

import (
	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LowStockRecord is one variant whose total stock sits at or below the
// alert threshold.
type LowStockRecord struct {
	VariantID   uint   `json:"variant_id"`
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
	VariantName string `json:"variant_name"`
	TotalStock  int    `json:"total_stock"`
}

type InventoryRepository interface {
	Upsert(inventory *model.Inventory) error
	FindByVariantAndWarehouse(variantID, warehouseID uint) (*model.Inventory, error)
	FindByWarehouseID(warehouseID uint) ([]model.Inventory, error)
	TotalStockByVariant(variantID uint) (int, error)
	FindLowStock(threshold int) ([]LowStockRecord, error)
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// Upsert writes an absolute stock level for a variant at a warehouse.
func (r *inventoryRepository) Upsert(inventory *model.Inventory) error {
	logger.Debug("Upserting inventory in database", map[string]interface{}{
		"variant_id":   inventory.VariantID,
		"warehouse_id": inventory.WarehouseID,
		"quantity":     inventory.Quantity,
	})

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "variant_id"}, {Name: "warehouse_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(inventory).Error
	if err != nil {
		logger.Error("Failed to upsert inventory in database", err, map[string]interface{}{
			"variant_id":   inventory.VariantID,
			"warehouse_id": inventory.WarehouseID,
		})
		return err
	}
	return nil
}

func (r *inventoryRepository) FindByVariantAndWarehouse(variantID, warehouseID uint) (*model.Inventory, error) {
	var inventory model.Inventory
	err := r.db.Where("variant_id = ? AND warehouse_id = ?", variantID, warehouseID).
		First(&inventory).Error
	if err != nil {
		return nil, err
	}
	return &inventory, nil
}

func (r *inventoryRepository) FindByWarehouseID(warehouseID uint) ([]model.Inventory, error) {
	var inventories []model.Inventory
	err := r.db.Where("warehouse_id = ?", warehouseID).
		Preload("Variant").
		Find(&inventories).Error
	if err != nil {
		logger.Error("Failed to find inventories by warehouse ID in database", err, map[string]interface{}{
			"warehouse_id": warehouseID,
		})
		return nil, err
	}
	return inventories, nil
}

func (r *inventoryRepository) TotalStockByVariant(variantID uint) (int, error) {
	var total struct {
		Total int
	}
	err := r.db.Model(&model.Inventory{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("variant_id = ?", variantID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total.Total, nil
}

func (r *inventoryRepository) FindLowStock(threshold int) ([]LowStockRecord, error) {
	logger.Debug("Scanning for low stock variants in database", map[string]interface{}{
		"threshold": threshold,
	})

	var records []LowStockRecord
	err := r.db.Model(&model.Inventory{}).
		Select("product_variants.id as variant_id, product_variants.sku as sku, "+
			"products.name as product_name, product_variants.name as variant_name, "+
			"COALESCE(SUM(inventories.quantity), 0) as total_stock").
		Joins("JOIN product_variants ON product_variants.id = inventories.variant_id").
		Joins("JOIN products ON products.id = product_variants.product_id").
		Group("product_variants.id, product_variants.sku, products.name, product_variants.name").
		Having("COALESCE(SUM(inventories.quantity), 0) <= ?", threshold).
		Scan(&records).Error
	if err != nil {
		logger.Error("Failed to scan for low stock variants in database", err, map[string]interface{}{
			"threshold": threshold,
		})
		return nil, err
	}

	return records, nil
}
