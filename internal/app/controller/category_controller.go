package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/olumide/foodloan-backend/internal/app/service"
	apperrors "github.com/olumide/foodloan-backend/internal/errors"
	"github.com/olumide/foodloan-backend/internal/middleware"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

// ListCategories returns the category tree as a flat list
// GET /api/v1/categories
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.categoryService.ListCategories()
	if err != nil {
		log.Error("Failed to list categories", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"categories": categories,
		},
	})
}

// GetCategory returns one category
// GET /api/v1/categories/:id
func (ctrl *CategoryController) GetCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	category, err := ctrl.categoryService.GetCategory(id)
	if err != nil {
		ctrl.respondCategoryError(c, err, "fetch category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   category,
	})
}

// CreateCategory adds a category
// POST /api/v1/admin/categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	category, err := ctrl.categoryService.CreateCategory(input)
	if err != nil {
		ctrl.respondCategoryError(c, err, "create category")
		return
	}

	log.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   category,
	})
}

// UpdateCategory renames or reparents a category
// PUT /api/v1/admin/categories/:id
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	category, err := ctrl.categoryService.UpdateCategory(id, input)
	if err != nil {
		ctrl.respondCategoryError(c, err, "update category")
		return
	}

	log.Info("Category updated", map[string]interface{}{
		"category_id": category.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   category,
	})
}

// DeleteCategory removes a category
// DELETE /api/v1/admin/categories/:id
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	if err := ctrl.categoryService.DeleteCategory(id); err != nil {
		ctrl.respondCategoryError(c, err, "delete category")
		return
	}

	log.Info("Category deleted", map[string]interface{}{
		"category_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Category deleted",
	})
}

func (ctrl *CategoryController) respondCategoryError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
	case errors.Is(err, service.ErrCategoryCycle):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A category cannot be its own parent")
	default:
		log.Error("Category operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
	}
}
