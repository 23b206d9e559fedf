package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/internal/app/service"
	apperrors "github.com/olumide/foodloan-backend/internal/errors"
	"github.com/olumide/foodloan-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type InitiateLoginRequest struct {
	// Phone number, email address or employee ID
	Identifier string `json:"identifier" binding:"required"`
}

type VerifyOTPRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Code       string `json:"code" binding:"required,len=6"`
}

type PasswordLoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func userPayload(user *model.User) gin.H {
	return gin.H{
		"id":          user.ID,
		"first_name":  user.FirstName,
		"last_name":   user.LastName,
		"email":       user.Email,
		"phone":       user.Phone,
		"employee_id": user.EmployeeID,
		"role":        user.Role,
		"loan_unit":   user.LoanUnit,
	}
}

// InitiateLogin sends a one-time passcode to the user behind the
// identifier
// POST /api/v1/auth/login
func (ctrl *AuthController) InitiateLogin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req InitiateLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	err := ctrl.authService.InitiateLogin(c.Request.Context(), strings.TrimSpace(req.Identifier))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			log.Warn("Login attempt for unknown identifier", nil)
			apperrors.NotFound(c, apperrors.ResourceNotFound, "No account matches this identifier")
			return
		}
		log.Error("Failed to initiate login", err, nil)
		apperrors.InternalError(c, "Could not send verification code")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Verification code sent",
	})
}

// VerifyOTP exchanges a valid passcode for a token pair
// POST /api/v1/auth/verify
func (ctrl *AuthController) VerifyOTP(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid OTP verification request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	tokens, user, err := ctrl.authService.VerifyOTP(c.Request.Context(), strings.TrimSpace(req.Identifier), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "No account matches this identifier")
		case errors.Is(err, service.ErrOTPInvalid):
			log.Warn("OTP verification failed", nil)
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthOTPInvalid, "Invalid or expired verification code")
		default:
			log.Error("OTP verification failed", err, nil)
			apperrors.InternalError(c, "")
		}
		return
	}

	log.Info("User logged in via OTP", map[string]interface{}{
		"user_id": user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"access_token":  tokens.AccessToken,
			"refresh_token": tokens.RefreshToken,
			"user":          userPayload(user),
		},
	})
}

// PasswordLogin authenticates with identifier plus password. Admin
// accounts use this path.
// POST /api/v1/auth/password-login
func (ctrl *AuthController) PasswordLogin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PasswordLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid password login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	tokens, user, err := ctrl.authService.PasswordLogin(strings.TrimSpace(req.Identifier), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Warn("Password login failed", nil)
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Identifier or password is incorrect")
		case errors.Is(err, service.ErrPasswordNotSet):
			apperrors.BadRequest(c, apperrors.AuthPasswordNotSet, "This account has no password. Log in with a verification code")
		default:
			log.Error("Password login failed", err, nil)
			apperrors.InternalError(c, "")
		}
		return
	}

	log.Info("User logged in with password", map[string]interface{}{
		"user_id": user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"access_token":  tokens.AccessToken,
			"refresh_token": tokens.RefreshToken,
			"user":          userPayload(user),
		},
	})
}

// RefreshToken issues a fresh token pair from a refresh token
// POST /api/v1/auth/refresh
func (ctrl *AuthController) RefreshToken(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	tokens, err := ctrl.authService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn("Token refresh failed", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "Invalid or expired refresh token. Please log in again")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"access_token":  tokens.AccessToken,
			"refresh_token": tokens.RefreshToken,
		},
	})
}

// Logout revokes the presented access token
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), parts[1]); err != nil {
		log.Error("Logout failed", err, nil)
		apperrors.InternalError(c, "Logout failed")
		return
	}

	userID, _ := middleware.GetUserID(c)
	log.Info("User logged out", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Logged out",
	})
}

// GetMe returns the authenticated user's profile
// GET /api/v1/auth/me
func (ctrl *AuthController) GetMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		log.Error("Failed to fetch profile", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"user": userPayload(user),
		},
	})
}
