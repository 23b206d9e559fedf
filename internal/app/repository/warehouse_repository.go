package repository

import (
	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/pkg/logger"
	"gorm.io/gorm"
)

type WarehouseRepository interface {
	Create(warehouse *model.Warehouse) error
	FindByID(id uint) (*model.Warehouse, error)
	FindAll() ([]model.Warehouse, error)
	Update(warehouse *model.Warehouse) error
	Delete(id uint) error
}

type warehouseRepository struct {
	db *gorm.DB
}

func NewWarehouseRepository(db *gorm.DB) WarehouseRepository {
	return &warehouseRepository{db: db}
}

func (r *warehouseRepository) Create(warehouse *model.Warehouse) error {
	logger.Debug("Creating warehouse in database", map[string]interface{}{
		"name": warehouse.Name,
	})

	if err := r.db.Create(warehouse).Error; err != nil {
		logger.Error("Failed to create warehouse in database", err, map[string]interface{}{
			"name": warehouse.Name,
		})
		return err
	}
	return nil
}

func (r *warehouseRepository) FindByID(id uint) (*model.Warehouse, error) {
	var warehouse model.Warehouse
	if err := r.db.First(&warehouse, id).Error; err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *warehouseRepository) FindAll() ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	if err := r.db.Order("name ASC").Find(&warehouses).Error; err != nil {
		logger.Error("Failed to find warehouses in database", err, nil)
		return nil, err
	}
	return warehouses, nil
}

func (r *warehouseRepository) Update(warehouse *model.Warehouse) error {
	logger.Debug("Updating warehouse in database", map[string]interface{}{
		"warehouse_id": warehouse.ID,
	})

	if err := r.db.Save(warehouse).Error; err != nil {
		logger.Error("Failed to update warehouse in database", err, map[string]interface{}{
			"warehouse_id": warehouse.ID,
		})
		return err
	}
	return nil
}

func (r *warehouseRepository) Delete(id uint) error {
	logger.Debug("Deleting warehouse from database", map[string]interface{}{
		"warehouse_id": id,
	})

	if err := r.db.Delete(&model.Warehouse{}, id).Error; err != nil {
		logger.Error("Failed to delete warehouse from database", err, map[string]interface{}{
			"warehouse_id": id,
		})
		return err
	}
	return nil
}
