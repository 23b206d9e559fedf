package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderTest(t *testing.T) (*gorm.DB, OrderRepository, *model.User, *model.Address, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewOrderRepository(testDB)

	salary := decimal.NewFromInt(200000)
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
		Name:      "Beans 2kg",
		BasePrice: decimal.NewFromInt(750),
	}
	testDB.Create(product)

	return testDB, repo, user, address, product
}

func newTestOrder(user *model.User, address *model.Address, product *model.Product) *model.Order {
	return &model.Order{
		Reference:   uuid.NewString(),
		UserID:      user.ID,
		AddressID:   address.ID,
		TotalAmount: decimal.NewFromInt(1500),
		Currency:    model.DefaultCurrency,
		OrderItems: []model.OrderItem{
			{
				ProductID: uintPtr(product.ID),
				Quantity:  2,
				UnitPrice: decimal.NewFromInt(750),
				Currency:  model.DefaultCurrency,
				Total:     decimal.NewFromInt(1500),
			},
		},
		TrackingUpdates: []model.TrackingUpdate{
			{Status: model.OrderStatusPending},
		},
	}
}

func TestOrderRepository_Create(t *testing.T) {
	testDB, repo, user, address, product := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	order := newTestOrder(user, address, product)

	err := repo.Create(order)
	assert.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.NotZero(t, order.OrderItems[0].ID)
}

func TestOrderRepository_FindByID(t *testing.T) {
	testDB, repo, user, address, product := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	order := newTestOrder(user, address, product)
	require.NoError(t, repo.Create(order))

	found, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Reference, found.Reference)
	assert.Len(t, found.OrderItems, 1)
	assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(1500)))
	require.Len(t, found.TrackingUpdates, 1)
	assert.Equal(t, model.OrderStatusPending, found.TrackingUpdates[0].Status)
}

func TestOrderRepository_FindByReference(t *testing.T) {
	testDB, repo, user, address, product := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	order := newTestOrder(user, address, product)
	require.NoError(t, repo.Create(order))

	found, err := repo.FindByReference(order.Reference)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = repo.FindByReference("missing-ref")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrderRepository_FindByUserID(t *testing.T) {
	testDB, repo, user, address, product := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(newTestOrder(user, address, product)))
	require.NoError(t, repo.Create(newTestOrder(user, address, product)))

	orders, err := repo.FindByUserID(user.ID)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)

	orders, err = repo.FindByUserID(user.ID + 100)
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderRepository_AppendTracking(t *testing.T) {
	testDB, repo, user, address, product := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	order := newTestOrder(user, address, product)
	require.NoError(t, repo.Create(order))

	err := repo.AppendTracking(&model.TrackingUpdate{
		OrderID: order.ID,
		Status:  model.OrderStatusConfirmed,
	})
	assert.NoError(t, err)

	trail, err := repo.FindTrackingByOrderID(order.ID)
	require.NoError(t, err)
	require.Len(t, trail, 2)

	// Earlier entries survive; the newest entry is the current status
	assert.Equal(t, model.OrderStatusPending, trail[0].Status)
	assert.Equal(t, model.OrderStatusConfirmed, trail[1].Status)
}

func TestOrderRepository_FindAll(t *testing.T) {
	testDB, repo, user, address, product := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(newTestOrder(user, address, product)))
	require.NoError(t, repo.Create(newTestOrder(user, address, product)))

	orders, total, err := repo.FindAll(0, 10, "")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, orders, 2)

	orders, total, err = repo.FindAll(0, 10, string(model.OrderStatusPending))
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, orders, 2)
}
