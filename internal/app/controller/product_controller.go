package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/olumide/foodloan-backend/internal/app/repository"
	"github.com/olumide/foodloan-backend/internal/app/service"
	apperrors "github.com/olumide/foodloan-backend/internal/errors"
	"github.com/olumide/foodloan-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// ListProducts returns the catalog with filtering and pagination
// GET /api/v1/products?category_id=1&search=rice&tag=staple&offset=0&limit=20
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ProductFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Tag:    strings.TrimSpace(c.Query("tag")),
	}
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
			return
		}
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}

	products, total, err := ctrl.productService.ListProducts(filter)
	if err != nil {
		log.Error("Failed to list products", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"products": products,
			"total":    total,
			"offset":   filter.Offset,
			"limit":    filter.Limit,
		},
	})
}

// GetProduct returns one product with its variants
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.productService.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   product,
	})
}

// CreateProduct adds a catalog entry
// POST /api/v1/admin/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid create product request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	product, err := ctrl.productService.CreateProduct(input)
	if err != nil {
		ctrl.respondCatalogError(c, err, "create product")
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   product,
	})
}

// UpdateProduct updates a catalog entry
// PUT /api/v1/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, input)
	if err != nil {
		ctrl.respondCatalogError(c, err, "update product")
		return
	}

	log.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   product,
	})
}

// DeleteProduct removes a catalog entry
// DELETE /api/v1/admin/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		ctrl.respondCatalogError(c, err, "delete product")
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Product deleted",
	})
}

// CreateVariant adds a variant under a product
// POST /api/v1/admin/products/:id/variants
func (ctrl *ProductController) CreateVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var input service.VariantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	variant, err := ctrl.productService.CreateVariant(productID, input)
	if err != nil {
		ctrl.respondCatalogError(c, err, "create variant")
		return
	}

	log.Info("Variant created", map[string]interface{}{
		"product_id": productID,
		"variant_id": variant.ID,
		"sku":        variant.SKU,
	})

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   variant,
	})
}

// UpdateVariant updates a product variant
// PUT /api/v1/admin/variants/:id
func (ctrl *ProductController) UpdateVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid variant ID")
		return
	}

	var input service.VariantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	variant, err := ctrl.productService.UpdateVariant(id, input)
	if err != nil {
		ctrl.respondCatalogError(c, err, "update variant")
		return
	}

	log.Info("Variant updated", map[string]interface{}{
		"variant_id": variant.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   variant,
	})
}

// DeleteVariant removes a product variant
// DELETE /api/v1/admin/variants/:id
func (ctrl *ProductController) DeleteVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid variant ID")
		return
	}

	if err := ctrl.productService.DeleteVariant(id); err != nil {
		ctrl.respondCatalogError(c, err, "delete variant")
		return
	}

	log.Info("Variant deleted", map[string]interface{}{
		"variant_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Variant deleted",
	})
}

func (ctrl *ProductController) respondCatalogError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
	case errors.Is(err, service.ErrVariantNotFound):
		apperrors.NotFound(c, apperrors.CatalogVariantNotFound, "Product variant not found")
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
	case errors.Is(err, service.ErrInvalidPrice):
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Price must not be negative")
	case apperrors.IsUniqueViolation(err):
		info := apperrors.ParseError(err, context)
		apperrors.Conflict(c, info.Code, info.Message)
	default:
		log.Error("Catalog operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
	}
}
