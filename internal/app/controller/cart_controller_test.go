package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/internal/app/repository"
	"github.com/olumide/foodloan-backend/internal/app/service"
	"github.com/olumide/foodloan-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartControllerTest(t *testing.T) (*CartController, *gin.Engine, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	variantRepo := repository.NewVariantRepository(testDB)
	pricing := service.NewPricingService(productRepo, variantRepo)
	cartService := service.NewCartService(cartRepo, userRepo, pricing, service.NewCreditLedger())
	cartController := NewCartController(cartService)

	// Salary 10000 gives a loan ceiling of 3000
	salary := decimal.NewFromInt(10000)
	user := &model.User{
		FirstName:      "Ada",
		LastName:       "Obi",
		Phone:          "+2348012345678",
		EmployeeID:     "EMP-001",
		SalaryPerMonth: salary,
		LoanUnit:       model.DeriveLoanUnit(salary),
		Role:           model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:      "Rice 5kg",
		BasePrice: decimal.NewFromInt(500),
	}
	testDB.Create(product)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return cartController, router, testDB, user, product
}

// Helper to stand in for the auth middleware
func setUserIDInContext(c *gin.Context, userID uint) {
	c.Set("user_id", userID)
}

func TestCartController_GetCart_Success(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	require.NoError(t, cartRepo.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: &product.ID,
		Quantity:  2,
	}))

	router.GET("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, "success", response["status"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["count"])
	assert.Equal(t, "1000", data["total"]) // 500 * 2
}

func TestCartController_GetCart_Unauthorized(t *testing.T) {
	controller, router, _, _, _ := setupCartControllerTest(t)

	router.GET("/cart", controller.GetCart)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartController_AddToCart_Success(t *testing.T) {
	controller, router, _, user, product := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	body := fmt.Sprintf(`{"product_id": %d, "quantity": 2, "payment_method": "loan"}`, product.ID)
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "success", response["status"])
}

func TestCartController_AddToCart_BothReferences(t *testing.T) {
	controller, router, _, user, product := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	body := fmt.Sprintf(`{"product_id": %d, "variant_id": 1, "quantity": 1, "payment_method": "loan"}`, product.ID)
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "CART_INVALID_SELECTION", response["code"])
}

func TestCartController_AddToCart_LoanLimitExceeded(t *testing.T) {
	controller, router, _, user, product := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	// 7 * 500 = 3500 > 3000 ceiling
	body := fmt.Sprintf(`{"product_id": %d, "quantity": 7, "payment_method": "loan"}`, product.ID)
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "CART_LOAN_LIMIT_EXCEEDED", response["code"])
}

func TestCartController_AddToCart_CashSkipsGate(t *testing.T) {
	controller, router, _, user, product := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	body := fmt.Sprintf(`{"product_id": %d, "quantity": 100, "payment_method": "cash"}`, product.ID)
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCartController_UpdateCartItem_ZeroRemoves(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	item := &model.CartItem{
		UserID:    user.ID,
		ProductID: &product.ID,
		Quantity:  2,
	}
	require.NoError(t, cartRepo.Create(item))

	router.PUT("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateCartItem(c)
	})

	body := `{"quantity": 0, "payment_method": "loan"}`
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/cart/%d", item.ID), bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, true, data["removed"])

	items, err := cartRepo.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartController_UpdateCartItem_OtherUsersLine(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	item := &model.CartItem{
		UserID:    user.ID,
		ProductID: &product.ID,
		Quantity:  1,
	}
	require.NoError(t, cartRepo.Create(item))

	router.PUT("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID+1)
		controller.UpdateCartItem(c)
	})

	body := `{"quantity": 3, "payment_method": "loan"}`
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/cart/%d", item.ID), bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCartController_RemoveFromCart_NotFound(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.DELETE("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.RemoveFromCart(c)
	})

	req := httptest.NewRequest(http.MethodDelete, "/cart/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
