package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/olumide/foodloan-backend/internal/app/service"
	apperrors "github.com/olumide/foodloan-backend/internal/errors"
	"github.com/olumide/foodloan-backend/internal/middleware"
)

// maxImportSize caps uploaded employee rosters at 10MB.
const maxImportSize = 10 << 20

type UserAdminController struct {
	userAdminService service.UserAdminService
}

func NewUserAdminController(userAdminService service.UserAdminService) *UserAdminController {
	return &UserAdminController{
		userAdminService: userAdminService,
	}
}

// CreateUser registers a single employee
// POST /api/v1/admin/users
func (ctrl *UserAdminController) CreateUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid create user request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	user, err := ctrl.userAdminService.CreateUser(input)
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			info := apperrors.ParseError(err, "create user")
			apperrors.Conflict(c, info.Code, info.Message)
			return
		}
		log.Error("Failed to create user", err, map[string]interface{}{
			"employee_id": input.EmployeeID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create user")
		return
	}

	log.Info("User created", map[string]interface{}{
		"user_id":     user.ID,
		"employee_id": user.EmployeeID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   user,
	})
}

// GetUser returns one user
// GET /api/v1/admin/users/:id
func (ctrl *UserAdminController) GetUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user ID")
		return
	}

	user, err := ctrl.userAdminService.GetUser(id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		log.Error("Failed to fetch user", err, map[string]interface{}{
			"user_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   user,
	})
}

// ListUsers returns users with pagination
// GET /api/v1/admin/users?offset=0&limit=20
func (ctrl *UserAdminController) ListUsers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, total, err := ctrl.userAdminService.ListUsers(offset, limit)
	if err != nil {
		log.Error("Failed to list users", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"users":  users,
			"total":  total,
			"offset": offset,
			"limit":  limit,
		},
	})
}

// UpdateUser updates an employee record. Changing the salary rederives
// the loan unit.
// PUT /api/v1/admin/users/:id
func (ctrl *UserAdminController) UpdateUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user ID")
		return
	}

	var input service.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid update user request", map[string]interface{}{
			"user_id": id,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	user, err := ctrl.userAdminService.UpdateUser(id, input)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		if apperrors.IsUniqueViolation(err) {
			info := apperrors.ParseError(err, "update user")
			apperrors.Conflict(c, info.Code, info.Message)
			return
		}
		log.Error("Failed to update user", err, map[string]interface{}{
			"user_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update user")
		return
	}

	log.Info("User updated", map[string]interface{}{
		"user_id": user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   user,
	})
}

// DeleteUser removes an employee record
// DELETE /api/v1/admin/users/:id
func (ctrl *UserAdminController) DeleteUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user ID")
		return
	}

	if err := ctrl.userAdminService.DeleteUser(id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		log.Error("Failed to delete user", err, map[string]interface{}{
			"user_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete user")
		return
	}

	log.Info("User deleted", map[string]interface{}{
		"user_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User deleted",
	})
}

// ImportUsers bulk-registers employees from an XLSX roster
// POST /api/v1/admin/users/import
func (ctrl *UserAdminController) ImportUsers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ImportFileRequired, "Attach an XLSX file under the 'file' field")
		return
	}
	if fileHeader.Size > maxImportSize {
		apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "File exceeds the 10MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded roster", err, nil)
		apperrors.InternalError(c, "")
		return
	}
	defer file.Close()

	result, err := ctrl.userAdminService.ImportUsersXLSX(file)
	if err != nil {
		if errors.Is(err, service.ErrEmptyImportFile) {
			apperrors.BadRequest(c, apperrors.ImportBadWorkbook, "The workbook has no data rows")
			return
		}
		log.Error("Employee import failed", err, map[string]interface{}{
			"filename": fileHeader.Filename,
		})
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ImportBadWorkbook, "Could not read the workbook")
		return
	}

	log.Info("Employee roster imported", map[string]interface{}{
		"filename": fileHeader.Filename,
		"created":  result.Created,
		"failed":   len(result.Failed),
	})

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   result,
	})
}
