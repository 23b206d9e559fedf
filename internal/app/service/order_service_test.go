package service

import (
	"strings"
	"testing"

	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/internal/app/repository"
	"github.com/olumide/foodloan-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderServiceFixture struct {
	orderService OrderService
	cartRepo     repository.CartRepository
	user         *model.User
	address      *model.Address
	product      *model.Product
	variant      *model.ProductVariant
	db           *gorm.DB
}

func setupOrderServiceTest(t *testing.T) *orderServiceFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	orderService := NewOrderService(orderRepo, cartRepo, userRepo, nil, testDB)

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
		Name:      "Garri 1kg",
		BasePrice: decimal.NewFromInt(300),
	}
	testDB.Create(product)

	variant := &model.ProductVariant{
		ProductID: product.ID,
		Name:      "Garri 5kg",
		SKU:       "GARRI-5KG",
		Price:     decimal.NewFromInt(500),
	}
	testDB.Create(variant)

	return &orderServiceFixture{
		orderService: orderService,
		cartRepo:     cartRepo,
		user:         user,
		address:      address,
		product:      product,
		variant:      variant,
		db:           testDB,
	}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	f := setupOrderServiceTest(t)

	// One variant line: qty 2 at 500
	require.NoError(t, f.cartRepo.Create(&model.CartItem{
		UserID:    f.user.ID,
		VariantID: uintPtr(f.variant.ID),
		Quantity:  2,
	}))

	order, err := f.orderService.CreateOrder(f.user.ID, f.address.ID)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.Reference, "ORD-"))
	assert.Equal(t, model.DefaultCurrency, order.Currency)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(1000)))

	require.Len(t, order.OrderItems, 1)
	line := order.OrderItems[0]
	assert.Equal(t, f.variant.ID, *line.VariantID)
	assert.Nil(t, line.ProductID)
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(500)))
	assert.True(t, line.Total.Equal(decimal.NewFromInt(1000)))

	require.Len(t, order.TrackingUpdates, 1)
	assert.Equal(t, model.OrderStatusPending, order.TrackingUpdates[0].Status)

	// Cart is empty afterwards
	items, err := f.cartRepo.FindByUserID(f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOrderService_CreateOrder_CartReusableAfterCheckout(t *testing.T) {
	f := setupOrderServiceTest(t)

	userRepo := repository.NewUserRepository(f.db)
	productRepo := repository.NewProductRepository(f.db)
	variantRepo := repository.NewVariantRepository(f.db)
	pricing := NewPricingService(productRepo, variantRepo)
	cartService := NewCartService(f.cartRepo, userRepo, pricing, NewCreditLedger())

	_, err := cartService.AddToCart(f.user.ID, nil, uintPtr(f.variant.ID), 2, PaymentMethodLoan)
	require.NoError(t, err)

	_, err = f.orderService.CreateOrder(f.user.ID, f.address.ID)
	require.NoError(t, err)

	// Checkout cleared the cart; the same item must be addable again
	readded, err := cartService.AddToCart(f.user.ID, nil, uintPtr(f.variant.ID), 1, PaymentMethodLoan)
	require.NoError(t, err)
	assert.Equal(t, 1, readded.Quantity)

	cart, err := cartService.GetUserCart(f.user.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestOrderService_CreateOrder_VariantPriceWinsOverProduct(t *testing.T) {
	f := setupOrderServiceTest(t)

	// Product line at base price plus a variant line at its own price
	require.NoError(t, f.cartRepo.Create(&model.CartItem{
		UserID:    f.user.ID,
		ProductID: uintPtr(f.product.ID),
		Quantity:  1,
	}))
	require.NoError(t, f.cartRepo.Create(&model.CartItem{
		UserID:    f.user.ID,
		VariantID: uintPtr(f.variant.ID),
		Quantity:  1,
	}))

	order, err := f.orderService.CreateOrder(f.user.ID, f.address.ID)
	require.NoError(t, err)

	// 300 + 500
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(800)))
}

func TestOrderService_CreateOrder_UserNotFound(t *testing.T) {
	f := setupOrderServiceTest(t)

	_, err := f.orderService.CreateOrder(9999, f.address.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestOrderService_CreateOrder_AddressNotSet(t *testing.T) {
	f := setupOrderServiceTest(t)

	require.NoError(t, f.db.Model(&model.User{}).
		Where("id = ?", f.user.ID).
		Update("is_address_set", false).Error)

	require.NoError(t, f.cartRepo.Create(&model.CartItem{
		UserID:    f.user.ID,
		VariantID: uintPtr(f.variant.ID),
		Quantity:  1,
	}))

	_, err := f.orderService.CreateOrder(f.user.ID, f.address.ID)
	assert.ErrorIs(t, err, ErrAddressNotSet)

	// No order was created
	var count int64
	f.db.Model(&model.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestOrderService_CreateOrder_InvalidAddress(t *testing.T) {
	f := setupOrderServiceTest(t)

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
		VariantID: uintPtr(f.variant.ID),
		Quantity:  1,
	}))

	_, err := f.orderService.CreateOrder(f.user.ID, otherAddress.ID)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestOrderService_CreateOrder_EmptyCart(t *testing.T) {
	f := setupOrderServiceTest(t)

	_, err := f.orderService.CreateOrder(f.user.ID, f.address.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderService_SnapshotSurvivesPriceChange(t *testing.T) {
	f := setupOrderServiceTest(t)

	require.NoError(t, f.cartRepo.Create(&model.CartItem{
		UserID:    f.user.ID,
		VariantID: uintPtr(f.variant.ID),
		Quantity:  2,
	}))

	order, err := f.orderService.CreateOrder(f.user.ID, f.address.ID)
	require.NoError(t, err)

	// Catalog price changes after checkout
	require.NoError(t, f.db.Model(&model.ProductVariant{}).
		Where("id = ?", f.variant.ID).
		Update("price", decimal.NewFromInt(9000)).Error)

	reloaded, err := f.orderService.GetOrderByID(f.user.ID, order.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.TotalAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, reloaded.OrderItems[0].UnitPrice.Equal(decimal.NewFromInt(500)))
}

func TestOrderService_GetOrderByID_OwnershipEnforced(t *testing.T) {
	f := setupOrderServiceTest(t)

	require.NoError(t, f.cartRepo.Create(&model.CartItem{
		UserID:    f.user.ID,
		VariantID: uintPtr(f.variant.ID),
		Quantity:  1,
	}))
	order, err := f.orderService.CreateOrder(f.user.ID, f.address.ID)
	require.NoError(t, err)

	_, err = f.orderService.GetOrderByID(f.user.ID+1, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_GetUserOrders(t *testing.T) {
	f := setupOrderServiceTest(t)

	require.NoError(t, f.cartRepo.Create(&model.CartItem{
		UserID:    f.user.ID,
		VariantID: uintPtr(f.variant.ID),
		Quantity:  1,
	}))
	_, err := f.orderService.CreateOrder(f.user.ID, f.address.ID)
	require.NoError(t, err)

	orders, err := f.orderService.GetUserOrders(f.user.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestOrderService_AppendTracking(t *testing.T) {
	f := setupOrderServiceTest(t)

	require.NoError(t, f.cartRepo.Create(&model.CartItem{
		UserID:    f.user.ID,
		VariantID: uintPtr(f.variant.ID),
		Quantity:  1,
	}))
	order, err := f.orderService.CreateOrder(f.user.ID, f.address.ID)
	require.NoError(t, err)

	update, err := f.orderService.AppendTracking(order.ID, model.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, update.Status)

	reloaded, err := f.orderService.GetOrderByID(f.user.ID, order.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.TrackingUpdates, 2)
	assert.Equal(t, model.OrderStatusPending, reloaded.TrackingUpdates[0].Status)
	assert.Equal(t, model.OrderStatusConfirmed, reloaded.TrackingUpdates[1].Status)
}

func TestOrderService_AppendTracking_InvalidStatus(t *testing.T) {
	f := setupOrderServiceTest(t)

	_, err := f.orderService.AppendTracking(1, model.OrderStatus("TELEPORTED"))
	assert.ErrorIs(t, err, ErrInvalidTracking)
}
