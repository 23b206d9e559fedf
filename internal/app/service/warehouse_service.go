package service

import (
	"errors"

	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/internal/app/repository"
	"github.com/olumide/foodloan-backend/pkg/logger"
	"github.com/olumide/foodloan-backend/pkg/metrics"
	"gorm.io/gorm"
)

var (
	ErrWarehouseNotFound = errors.New("warehouse not found")
	ErrInvalidStockLevel = errors.New("stock level must not be negative")
)

type WarehouseInput struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

// WarehouseService covers warehouse CRUD and stock-level bookkeeping.
// Stock here is informational for the admin dashboard; checkout never
// decrements it.
type WarehouseService interface {
	CreateWarehouse(input WarehouseInput) (*model.Warehouse, error)
	GetWarehouse(id uint) (*model.Warehouse, error)
	ListWarehouses() ([]model.Warehouse, error)
	UpdateWarehouse(id uint, input WarehouseInput) (*model.Warehouse, error)
	DeleteWarehouse(id uint) error

	SetStock(variantID, warehouseID uint, quantity int) (*model.Inventory, error)
	GetWarehouseStock(warehouseID uint) ([]model.Inventory, error)
	ScanLowStock(threshold int) ([]repository.LowStockRecord, error)
}

type warehouseService struct {
	warehouseRepo repository.WarehouseRepository
	inventoryRepo repository.InventoryRepository
	variantRepo   repository.VariantRepository
}

func NewWarehouseService(
	warehouseRepo repository.WarehouseRepository,
	inventoryRepo repository.InventoryRepository,
	variantRepo repository.VariantRepository,
) WarehouseService {
	return &warehouseService{
		warehouseRepo: warehouseRepo,
		inventoryRepo: inventoryRepo,
		variantRepo:   variantRepo,
	}
}

func (s *warehouseService) CreateWarehouse(input WarehouseInput) (*model.Warehouse, error) {
	logger.Info("Creating warehouse", map[string]interface{}{
		"name": input.Name,
	})

	warehouse := &model.Warehouse{
		Name:     input.Name,
		Location: input.Location,
	}
	if err := s.warehouseRepo.Create(warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

func (s *warehouseService) GetWarehouse(id uint) (*model.Warehouse, error) {
	warehouse, err := s.warehouseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, err
	}
	return warehouse, nil
}

func (s *warehouseService) ListWarehouses() ([]model.Warehouse, error) {
	return s.warehouseRepo.FindAll()
}

func (s *warehouseService) UpdateWarehouse(id uint, input WarehouseInput) (*model.Warehouse, error) {
	warehouse, err := s.warehouseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, err
	}

	warehouse.Name = input.Name
	warehouse.Location = input.Location

	if err := s.warehouseRepo.Update(warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

func (s *warehouseService) DeleteWarehouse(id uint) error {
	if _, err := s.warehouseRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWarehouseNotFound
		}
		return err
	}
	return s.warehouseRepo.Delete(id)
}

// SetStock writes an absolute stock level for a variant at a warehouse.
func (s *warehouseService) SetStock(variantID, warehouseID uint, quantity int) (*model.Inventory, error) {
	logger.Info("Setting stock level", map[string]interface{}{
		"variant_id":   variantID,
		"warehouse_id": warehouseID,
		"quantity":     quantity,
	})

	if quantity < 0 {
		return nil, ErrInvalidStockLevel
	}

	if _, err := s.variantRepo.FindByID(variantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	if _, err := s.warehouseRepo.FindByID(warehouseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, err
	}

	inventory := &model.Inventory{
		VariantID:   variantID,
		WarehouseID: warehouseID,
		Quantity:    quantity,
	}
	if err := s.inventoryRepo.Upsert(inventory); err != nil {
		return nil, err
	}
	return inventory, nil
}

func (s *warehouseService) GetWarehouseStock(warehouseID uint) ([]model.Inventory, error) {
	if _, err := s.warehouseRepo.FindByID(warehouseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, err
	}
	return s.inventoryRepo.FindByWarehouseID(warehouseID)
}

// ScanLowStock lists variants whose summed stock across warehouses sits
// at or below the threshold. The daily scheduler calls this.
func (s *warehouseService) ScanLowStock(threshold int) ([]repository.LowStockRecord, error) {
	records, err := s.inventoryRepo.FindLowStock(threshold)
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		metrics.LowStockAlerts.Inc()
		logger.Warn("Variant below stock threshold", map[string]interface{}{
			"variant_id":  record.VariantID,
			"sku":         record.SKU,
			"product":     record.ProductName,
			"total_stock": record.TotalStock,
			"threshold":   threshold,
		})
	}
	return records, nil
}
