package service

import (
	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/shopspring/decimal"
)

// PaymentMethodLoan is the only ceiling-gated payment method. Other
// methods skip the credit check entirely.
const PaymentMethodLoan = "loan"

// CreditLedger answers the single question "would this cart total
// exceed the user's credit ceiling". It trusts the stored loan unit;
// re-deriving it from salary is the user-management side's job.
type CreditLedger interface {
	Ceiling(user *model.User) decimal.Decimal
	WouldExceed(currentTotalExcludingLine, candidateLineValue, ceiling decimal.Decimal) bool
}

type creditLedger struct{}

func NewCreditLedger() CreditLedger {
	return &creditLedger{}
}

func (l *creditLedger) Ceiling(user *model.User) decimal.Decimal {
	return user.LoanUnit
}

// WouldExceed is strict greater-than. A cart that lands exactly on the
// ceiling is allowed.
func (l *creditLedger) WouldExceed(currentTotalExcludingLine, candidateLineValue, ceiling decimal.Decimal) bool {
	return currentTotalExcludingLine.Add(candidateLineValue).GreaterThan(ceiling)
}
