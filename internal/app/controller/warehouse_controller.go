package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/olumide/foodloan-backend/internal/app/service"
	apperrors "github.com/olumide/foodloan-backend/internal/errors"
	"github.com/olumide/foodloan-backend/internal/middleware"
)

type WarehouseController struct {
	warehouseService service.WarehouseService
}

func NewWarehouseController(warehouseService service.WarehouseService) *WarehouseController {
	return &WarehouseController{
		warehouseService: warehouseService,
	}
}

type SetStockRequest struct {
	VariantID uint `json:"variant_id" binding:"required"`
	Quantity  *int `json:"quantity" binding:"required"`
}

// ListWarehouses returns all warehouses
// GET /api/v1/admin/warehouses
func (ctrl *WarehouseController) ListWarehouses(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	warehouses, err := ctrl.warehouseService.ListWarehouses()
	if err != nil {
		log.Error("Failed to list warehouses", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list warehouses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"warehouses": warehouses,
		},
	})
}

// GetWarehouse returns one warehouse
// GET /api/v1/admin/warehouses/:id
func (ctrl *WarehouseController) GetWarehouse(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid warehouse ID")
		return
	}

	warehouse, err := ctrl.warehouseService.GetWarehouse(id)
	if err != nil {
		ctrl.respondWarehouseError(c, err, "fetch warehouse")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   warehouse,
	})
}

// CreateWarehouse adds a warehouse
// POST /api/v1/admin/warehouses
func (ctrl *WarehouseController) CreateWarehouse(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.WarehouseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	warehouse, err := ctrl.warehouseService.CreateWarehouse(input)
	if err != nil {
		ctrl.respondWarehouseError(c, err, "create warehouse")
		return
	}

	log.Info("Warehouse created", map[string]interface{}{
		"warehouse_id": warehouse.ID,
		"name":         warehouse.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   warehouse,
	})
}

// UpdateWarehouse updates a warehouse
// PUT /api/v1/admin/warehouses/:id
func (ctrl *WarehouseController) UpdateWarehouse(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid warehouse ID")
		return
	}

	var input service.WarehouseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	warehouse, err := ctrl.warehouseService.UpdateWarehouse(id, input)
	if err != nil {
		ctrl.respondWarehouseError(c, err, "update warehouse")
		return
	}

	log.Info("Warehouse updated", map[string]interface{}{
		"warehouse_id": warehouse.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   warehouse,
	})
}

// DeleteWarehouse removes a warehouse
// DELETE /api/v1/admin/warehouses/:id
func (ctrl *WarehouseController) DeleteWarehouse(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid warehouse ID")
		return
	}

	if err := ctrl.warehouseService.DeleteWarehouse(id); err != nil {
		ctrl.respondWarehouseError(c, err, "delete warehouse")
		return
	}

	log.Info("Warehouse deleted", map[string]interface{}{
		"warehouse_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Warehouse deleted",
	})
}

// SetStock writes an absolute stock level for a variant at a warehouse
// PUT /api/v1/admin/warehouses/:id/stock
func (ctrl *WarehouseController) SetStock(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	warehouseID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid warehouse ID")
		return
	}

	var req SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	inventory, err := ctrl.warehouseService.SetStock(req.VariantID, warehouseID, *req.Quantity)
	if err != nil {
		ctrl.respondWarehouseError(c, err, "set stock")
		return
	}

	log.Info("Stock level set", map[string]interface{}{
		"warehouse_id": warehouseID,
		"variant_id":   req.VariantID,
		"quantity":     inventory.Quantity,
	})

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   inventory,
	})
}

// GetStock returns stock levels held at a warehouse
// GET /api/v1/admin/warehouses/:id/stock
func (ctrl *WarehouseController) GetStock(c *gin.Context) {
	warehouseID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid warehouse ID")
		return
	}

	inventories, err := ctrl.warehouseService.GetWarehouseStock(warehouseID)
	if err != nil {
		ctrl.respondWarehouseError(c, err, "fetch stock")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"stock": inventories,
		},
	})
}

func (ctrl *WarehouseController) respondWarehouseError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrWarehouseNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Warehouse not found")
	case errors.Is(err, service.ErrVariantNotFound):
		apperrors.NotFound(c, apperrors.CatalogVariantNotFound, "Product variant not found")
	case errors.Is(err, service.ErrInvalidStockLevel):
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Stock level must not be negative")
	default:
		log.Error("Warehouse operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
	}
}
