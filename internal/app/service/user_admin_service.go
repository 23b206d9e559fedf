package service

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/internal/app/repository"
	"github.com/olumide/foodloan-backend/pkg/logger"
	"github.com/olumide/foodloan-backend/pkg/util"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var ErrEmptyImportFile = errors.New("import file contains no data rows")

// UserInput carries the admin-editable user fields. LoanUnit is never
// accepted from outside; it is derived from the salary here.
type UserInput struct {
	FirstName        string          `json:"firstname" binding:"required"`
	LastName         string          `json:"lastname" binding:"required"`
	Email            *string         `json:"email"`
	Phone            string          `json:"phone" binding:"required"`
	EmployeeID       string          `json:"employee_id" binding:"required"`
	Level            string          `json:"level"`
	GovernmentEntity string          `json:"government_entity"`
	SalaryPerMonth   decimal.Decimal `json:"salary_per_month" binding:"required"`
	Password         string          `json:"password"`
	Role             model.UserRole  `json:"role"`
}

// ImportRowError records why one spreadsheet row was rejected.
type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResult summarizes a bulk employee import.
type ImportResult struct {
	Created int              `json:"created"`
	Failed  []ImportRowError `json:"failed,omitempty"`
}

type UserAdminService interface {
	CreateUser(input UserInput) (*model.User, error)
	GetUser(id uint) (*model.User, error)
	ListUsers(offset, limit int) ([]model.User, int64, error)
	UpdateUser(id uint, input UserInput) (*model.User, error)
	DeleteUser(id uint) error
	ImportUsersXLSX(r io.Reader) (*ImportResult, error)
}

type userAdminService struct {
	userRepo repository.UserRepository
}

func NewUserAdminService(userRepo repository.UserRepository) UserAdminService {
	return &userAdminService{userRepo: userRepo}
}

func (s *userAdminService) CreateUser(input UserInput) (*model.User, error) {
	logger.Info("Creating user", map[string]interface{}{
		"employee_id": input.EmployeeID,
		"phone":       input.Phone,
	})

	user, err := s.buildUser(input)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("User created", map[string]interface{}{
		"user_id":   user.ID,
		"loan_unit": user.LoanUnit.String(),
	})
	return user, nil
}

func (s *userAdminService) GetUser(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userAdminService) ListUsers(offset, limit int) ([]model.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.userRepo.FindAll(offset, limit)
}

func (s *userAdminService) UpdateUser(id uint, input UserInput) (*model.User, error) {
	logger.Info("Updating user", map[string]interface{}{
		"user_id": id,
	})

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Email = input.Email
	user.Phone = input.Phone
	user.EmployeeID = input.EmployeeID
	user.Level = input.Level
	user.GovernmentEntity = input.GovernmentEntity

	// A salary change re-derives the ceiling at write time. Lines
	// already in the cart stay put; the next mutation is gated against
	// the new value.
	if !user.SalaryPerMonth.Equal(input.SalaryPerMonth) {
		user.SalaryPerMonth = input.SalaryPerMonth
		user.LoanUnit = model.DeriveLoanUnit(input.SalaryPerMonth)
		logger.Info("Salary changed, loan unit re-derived", map[string]interface{}{
			"user_id":   user.ID,
			"loan_unit": user.LoanUnit.String(),
		})
	}

	if input.Role != "" {
		user.Role = input.Role
	}
	if input.Password != "" {
		hash, err := util.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userAdminService) DeleteUser(id uint) error {
	logger.Info("Deleting user", map[string]interface{}{
		"user_id": id,
	})

	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.Delete(id)
}

// ImportUsersXLSX ingests an employee roster spreadsheet. Expected
// columns, in order: first name, last name, email, phone, employee ID,
// level, government entity, monthly salary. The first row is a header.
// Bad rows are reported individually and do not stop the import.
func (s *userAdminService) ImportUsersXLSX(r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrEmptyImportFile
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptyImportFile
	}

	logger.Info("Starting employee import", map[string]interface{}{
		"sheet": sheetName,
		"rows":  len(rows) - 1,
	})

	result := &ImportResult{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		rowNum := i + 1

		if len(row) < 8 {
			result.Failed = append(result.Failed, ImportRowError{Row: rowNum, Reason: "too few columns"})
			continue
		}

		firstName := strings.TrimSpace(row[0])
		lastName := strings.TrimSpace(row[1])
		email := strings.TrimSpace(row[2])
		phone := strings.TrimSpace(row[3])
		employeeID := strings.TrimSpace(row[4])
		level := strings.TrimSpace(row[5])
		entity := strings.TrimSpace(row[6])
		salaryStr := strings.TrimSpace(row[7])

		if firstName == "" || lastName == "" || phone == "" || employeeID == "" {
			result.Failed = append(result.Failed, ImportRowError{Row: rowNum, Reason: "missing required field"})
			continue
		}

		salary, err := decimal.NewFromString(salaryStr)
		if err != nil || salary.IsNegative() {
			result.Failed = append(result.Failed, ImportRowError{Row: rowNum, Reason: "invalid salary"})
			continue
		}

		input := UserInput{
			FirstName:        firstName,
			LastName:         lastName,
			Phone:            phone,
			EmployeeID:       employeeID,
			Level:            level,
			GovernmentEntity: entity,
			SalaryPerMonth:   salary,
		}
		if email != "" {
			input.Email = &email
		}

		user, err := s.buildUser(input)
		if err != nil {
			result.Failed = append(result.Failed, ImportRowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		if err := s.userRepo.Create(user); err != nil {
			result.Failed = append(result.Failed, ImportRowError{Row: rowNum, Reason: importFailureReason(err)})
			continue
		}
		result.Created++
	}

	logger.Info("Employee import finished", map[string]interface{}{
		"created": result.Created,
		"failed":  len(result.Failed),
	})
	return result, nil
}

func (s *userAdminService) buildUser(input UserInput) (*model.User, error) {
	role := input.Role
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Email:            input.Email,
		Phone:            input.Phone,
		EmployeeID:       input.EmployeeID,
		Level:            input.Level,
		GovernmentEntity: input.GovernmentEntity,
		SalaryPerMonth:   input.SalaryPerMonth,
		LoanUnit:         model.DeriveLoanUnit(input.SalaryPerMonth),
		Role:             role,
	}

	if input.Password != "" {
		hash, err := util.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	return user, nil
}

func importFailureReason(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "phone"):
		return "phone already registered"
	case strings.Contains(msg, "email"):
		return "email already registered"
	case strings.Contains(msg, "employee_id"):
		return "employee ID already registered"
	}
	return "could not save row"
}
