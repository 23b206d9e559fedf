package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is the parsed result of a low-level error.
type ErrorInfo struct {
	Code    string
	Message string
}

// IsUniqueViolation reports whether err is a unique-constraint breach.
// The cart store uses this to retry a racing insert as a merge.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "unique failed") // sqlite phrasing
}

// ParseError converts database and infrastructure errors into a stable
// code plus a message safe to show users. Sensitive detail stays in the
// logs, not in the response.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Something went wrong"}
	}

	errStr := err.Error()
	errLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	if IsUniqueViolation(err) {
		return parseDuplicateKeyError(errLower)
	}

	if strings.Contains(errLower, "foreign key constraint") {
		if strings.Contains(errLower, "still referenced") {
			return ErrorInfo{Code: ResourceConflict, Message: "Linked records exist, deletion is not possible"}
		}
		return ErrorInfo{Code: ResourceNotFound, Message: "A referenced record does not exist"}
	}

	if strings.Contains(errLower, "violates not-null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
	}

	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{Code: InternalExternalAPI, Message: "Upstream service unavailable. Please try again later"}
	}

	return ErrorInfo{Code: InternalServerError, Message: "Something went wrong. Please try again later"}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "email"):
		return ErrorInfo{Code: AuthIdentifierExists, Message: "Email is already registered"}
	case strings.Contains(errLower, "phone"):
		return ErrorInfo{Code: AuthIdentifierExists, Message: "Phone number is already registered"}
	case strings.Contains(errLower, "employee_id"):
		return ErrorInfo{Code: AuthIdentifierExists, Message: "Employee ID is already registered"}
	case strings.Contains(errLower, "sku"):
		return ErrorInfo{Code: CatalogSKUExists, Message: "SKU already exists"}
	case strings.Contains(errLower, "idx_cart_user"):
		return ErrorInfo{Code: ResourceConflict, Message: "Item is already in the cart"}
	case strings.Contains(errLower, "idx_wishlist_user"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Item is already on the wishlist"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "Record already exists"}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)
	switch {
	case strings.Contains(contextLower, "user"):
		return "User not found"
	case strings.Contains(contextLower, "product"):
		return "Product not found"
	case strings.Contains(contextLower, "variant"):
		return "Product variant not found"
	case strings.Contains(contextLower, "category"):
		return "Category not found"
	case strings.Contains(contextLower, "warehouse"):
		return "Warehouse not found"
	case strings.Contains(contextLower, "inventory"):
		return "Inventory record not found"
	case strings.Contains(contextLower, "address"):
		return "Address not found"
	case strings.Contains(contextLower, "order"):
		return "Order not found"
	case strings.Contains(contextLower, "cart"):
		return "Cart item not found"
	}
	return "Requested record not found"
}
