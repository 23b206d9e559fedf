package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"  // registered employee
	RoleAdmin UserRole = "admin" // scheme administrator
)

// LoanUnitRate is the fraction of monthly salary an employee may spend
// through the loan payment method. Applied whenever salary is written,
// never recomputed at read time.
var LoanUnitRate = decimal.NewFromFloat(0.30)

type User struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	FirstName        string          `gorm:"size:100;not null" json:"firstname"`
	LastName         string          `gorm:"size:100;not null" json:"lastname"`
	Email            *string         `gorm:"uniqueIndex" json:"email,omitempty"`              // optional, some employees register phone-only
	Phone            string          `gorm:"size:30;uniqueIndex;not null" json:"phone"`       // digits only, e.g. 2348012345678
	EmployeeID       string          `gorm:"size:50;uniqueIndex;not null" json:"employee_id"` // payroll identifier
	Level            string          `gorm:"size:50" json:"level"`                            // civil service grade level
	GovernmentEntity string          `gorm:"size:150" json:"government_entity"`               // employing ministry/agency
	SalaryPerMonth   decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"salary_per_month"`
	LoanUnit         decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"loan_unit"` // spending ceiling, 30% of salary
	IsAddressSet     bool            `gorm:"default:false" json:"is_address_set"`
	PasswordHash     string          `json:"-"` // empty until the employee sets a password
	Role             UserRole        `gorm:"type:varchar(20);default:'user'" json:"role"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`

	Addresses     []Address      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
	CartItems     []CartItem     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart_items,omitempty"`
	WishlistItems []WishlistItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"wishlist_items,omitempty"`
	Orders        []Order        `gorm:"foreignKey:UserID" json:"orders,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// DeriveLoanUnit computes the credit ceiling from a monthly salary.
func DeriveLoanUnit(salary decimal.Decimal) decimal.Decimal {
	return salary.Mul(LoanUnitRate).Round(2)
}
