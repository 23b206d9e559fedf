package service

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/internal/app/repository"
	"github.com/olumide/foodloan-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func setupUserAdminTest(t *testing.T) (UserAdminService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewUserAdminService(repository.NewUserRepository(testDB)), testDB
}

func validUserInput() UserInput {
	return UserInput{
		FirstName:        "Ada",
		LastName:         "Obi",
		Phone:            "+2348012345678",
		EmployeeID:       "EMP-001",
		Level:            "GL-08",
		GovernmentEntity: "Ministry of Works",
		SalaryPerMonth:   decimal.NewFromInt(90000),
	}
}

func TestUserAdminService_CreateUser_DerivesLoanUnit(t *testing.T) {
	svc, _ := setupUserAdminTest(t)

	user, err := svc.CreateUser(validUserInput())
	require.NoError(t, err)

	// 30% of 90000
	assert.True(t, user.LoanUnit.Equal(decimal.NewFromInt(27000)))
	assert.Equal(t, model.RoleUser, user.Role)
}

func TestUserAdminService_UpdateUser_SalaryChangeRederivesLoanUnit(t *testing.T) {
	svc, _ := setupUserAdminTest(t)

	user, err := svc.CreateUser(validUserInput())
	require.NoError(t, err)

	input := validUserInput()
	input.SalaryPerMonth = decimal.NewFromInt(120000)
	updated, err := svc.UpdateUser(user.ID, input)
	require.NoError(t, err)

	assert.True(t, updated.LoanUnit.Equal(decimal.NewFromInt(36000)))
}

func TestUserAdminService_UpdateUser_SameSalaryKeepsLoanUnit(t *testing.T) {
	svc, _ := setupUserAdminTest(t)

	user, err := svc.CreateUser(validUserInput())
	require.NoError(t, err)

	updated, err := svc.UpdateUser(user.ID, validUserInput())
	require.NoError(t, err)
	assert.True(t, updated.LoanUnit.Equal(user.LoanUnit))
}

func TestUserAdminService_GetUser_NotFound(t *testing.T) {
	svc, _ := setupUserAdminTest(t)

	_, err := svc.GetUser(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserAdminService_DeleteUser(t *testing.T) {
	svc, _ := setupUserAdminTest(t)

	user, err := svc.CreateUser(validUserInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(user.ID))
	_, err = svc.GetUser(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func buildImportXLSX(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	header := []interface{}{"First Name", "Last Name", "Email", "Phone", "Employee ID", "Level", "Government Entity", "Salary"}
	for col, v := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, v))
	}

	for rowIdx, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestUserAdminService_ImportUsersXLSX(t *testing.T) {
	svc, testDB := setupUserAdminTest(t)

	buf := buildImportXLSX(t, [][]interface{}{
		{"Ada", "Obi", "ada@example.com", "+2348012345671", "EMP-101", "GL-08", "Ministry of Works", "90000"},
		{"Chidi", "Eze", "", "+2348012345672", "EMP-102", "GL-10", "Ministry of Health", "150000"},
		{"", "Missing", "", "+2348012345673", "EMP-103", "GL-06", "Ministry of Works", "60000"},
		{"Bola", "Tunde", "", "+2348012345674", "EMP-104", "GL-06", "Ministry of Works", "not-a-number"},
	})

	result, err := svc.ImportUsersXLSX(buf)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	require.Len(t, result.Failed, 2)
	assert.Equal(t, 4, result.Failed[0].Row)
	assert.Equal(t, "missing required field", result.Failed[0].Reason)
	assert.Equal(t, 5, result.Failed[1].Row)
	assert.Equal(t, "invalid salary", result.Failed[1].Reason)

	// Imported users carry a derived loan unit
	var imported model.User
	require.NoError(t, testDB.Where("employee_id = ?", "EMP-102").First(&imported).Error)
	assert.True(t, imported.LoanUnit.Equal(decimal.NewFromInt(45000)))
}

func TestUserAdminService_ImportUsersXLSX_DuplicatesReported(t *testing.T) {
	svc, _ := setupUserAdminTest(t)

	_, err := svc.CreateUser(validUserInput())
	require.NoError(t, err)

	buf := buildImportXLSX(t, [][]interface{}{
		{"Ada", "Obi", "", "+2348012345678", "EMP-201", "GL-08", "Ministry of Works", "90000"},
	})

	result, err := svc.ImportUsersXLSX(buf)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	require.Len(t, result.Failed, 1)
	assert.Contains(t, result.Failed[0].Reason, "phone")
}

func TestUserAdminService_ImportUsersXLSX_EmptyFile(t *testing.T) {
	svc, _ := setupUserAdminTest(t)

	buf := buildImportXLSX(t, nil)
	_, err := svc.ImportUsersXLSX(buf)
	assert.ErrorIs(t, err, ErrEmptyImportFile)
}

func TestUserAdminService_ListUsers(t *testing.T) {
	svc, _ := setupUserAdminTest(t)

	for i := 0; i < 3; i++ {
		input := validUserInput()
		input.Phone = fmt.Sprintf("+234801234560%d", i)
		input.EmployeeID = fmt.Sprintf("EMP-30%d", i)
		_, err := svc.CreateUser(input)
		require.NoError(t, err)
	}

	users, total, err := svc.ListUsers(0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 2)
}
