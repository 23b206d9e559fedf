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

type orderControllerFixture struct {
	controller *OrderController
	router     *gin.Engine
	db         *gorm.DB
	cartRepo   repository.CartRepository
	user       *model.User
	address    *model.Address
	variant    *model.ProductVariant
}

func setupOrderControllerTest(t *testing.T) *orderControllerFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	orderService := service.NewOrderService(orderRepo, cartRepo, userRepo, nil, testDB)
	orderController := NewOrderController(orderService)

	salary := decimal.NewFromInt(100000)
	user := &model.User{
		FirstName:      "Chidi",
		LastName:       "Eze",
		Phone:          "+2348098765432",
		EmployeeID:     "EMP-002",
		SalaryPerMonth: salary,
		LoanUnit:       model.DeriveLoanUnit(salary),
		Role:           model.RoleUser,
		IsAddressSet:   true,
	}
	testDB.Create(user)

	address := &model.Address{
		UserID:    user.ID,
		Street:    "12 Marina Road",
		City:      "Lagos",
		State:     "Lagos",
		IsDefault: true,
	}
	testDB.Create(address)

	product := &model.Product{
		Name:      "Beans 1kg",
		BasePrice: decimal.NewFromInt(400),
	}
	testDB.Create(product)

	variant := &model.ProductVariant{
		ProductID: product.ID,
		Name:      "Beans 10kg",
		SKU:       "BEANS-10KG",
		Price:     decimal.NewFromInt(3500),
	}
	testDB.Create(variant)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return &orderControllerFixture{
		controller: orderController,
		router:     router,
		db:         testDB,
		cartRepo:   cartRepo,
		user:       user,
		address:    address,
		variant:    variant,
	}
}

func TestOrderController_Checkout_Success(t *testing.T) {
	f := setupOrderControllerTest(t)

	require.NoError(t, f.cartRepo.Create(&model.CartItem{
		UserID:    f.user.ID,
		VariantID: &f.variant.ID,
		Quantity:  2,
	}))

	f.router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.Checkout(c)
	})

	body := fmt.Sprintf(`{"address_id": %d}`, f.address.ID)
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "success", response["status"])

	data := response["data"].(map[string]interface{})
	assert.NotEmpty(t, data["reference"])
	assert.Equal(t, "NGN", data["currency"])
	assert.Equal(t, "7000", data["total_amount"]) // 3500 * 2
}

func TestOrderController_Checkout_EmptyCart(t *testing.T) {
	f := setupOrderControllerTest(t)

	f.router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.Checkout(c)
	})

	body := fmt.Sprintf(`{"address_id": %d}`, f.address.ID)
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ORDER_EMPTY_CART", response["code"])
}

func TestOrderController_Checkout_ForeignAddress(t *testing.T) {
	f := setupOrderControllerTest(t)

	salary := decimal.NewFromInt(50000)
	other := &model.User{
		FirstName:      "Bisi",
		LastName:       "Ade",
		Phone:          "+2348011111111",
		EmployeeID:     "EMP-050",
		SalaryPerMonth: salary,
		LoanUnit:       model.DeriveLoanUnit(salary),
		IsAddressSet:   true,
	}
	f.db.Create(other)
	otherAddress := &model.Address{
		UserID: other.ID,
		Street: "5 Allen Avenue",
		City:   "Ikeja",
		State:  "Lagos",
	}
	f.db.Create(otherAddress)

	require.NoError(t, f.cartRepo.Create(&model.CartItem{
		UserID:    f.user.ID,
		VariantID: &f.variant.ID,
		Quantity:  1,
	}))

	f.router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.Checkout(c)
	})

	body := fmt.Sprintf(`{"address_id": %d}`, otherAddress.ID)
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ORDER_INVALID_ADDRESS", response["code"])
}

func TestOrderController_GetOrder_OwnershipHidesOrder(t *testing.T) {
	f := setupOrderControllerTest(t)

	require.NoError(t, f.cartRepo.Create(&model.CartItem{
		UserID:    f.user.ID,
		VariantID: &f.variant.ID,
		Quantity:  1,
	}))

	orderRepo := repository.NewOrderRepository(f.db)
	userRepo := repository.NewUserRepository(f.db)
	orderService := service.NewOrderService(orderRepo, f.cartRepo, userRepo, nil, f.db)
	order, err := orderService.CreateOrder(f.user.ID, f.address.ID)
	require.NoError(t, err)

	f.router.GET("/orders/:id", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID+1)
		f.controller.GetOrder(c)
	})

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderController_AppendTracking(t *testing.T) {
	f := setupOrderControllerTest(t)

	require.NoError(t, f.cartRepo.Create(&model.CartItem{
		UserID:    f.user.ID,
		VariantID: &f.variant.ID,
		Quantity:  1,
	}))

	orderRepo := repository.NewOrderRepository(f.db)
	userRepo := repository.NewUserRepository(f.db)
	orderService := service.NewOrderService(orderRepo, f.cartRepo, userRepo, nil, f.db)
	order, err := orderService.CreateOrder(f.user.ID, f.address.ID)
	require.NoError(t, err)

	f.router.POST("/admin/orders/:id/tracking", f.controller.AppendTracking)

	body := `{"status": "CONFIRMED"}`
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/admin/orders/%d/tracking", order.ID), bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "CONFIRMED", data["status"])
}

func TestOrderController_AppendTracking_UnknownStatus(t *testing.T) {
	f := setupOrderControllerTest(t)

	f.router.POST("/admin/orders/:id/tracking", f.controller.AppendTracking)

	body := `{"status": "TELEPORTED"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/orders/1/tracking", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
