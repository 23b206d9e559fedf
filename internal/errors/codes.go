package errors

// Stable error code constants, format CATEGORY_SPECIFIC_DETAIL.
// Clients map these codes to their own copy; the message field is only
// a human-readable fallback.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthIdentifierExists   = "AUTH_IDENTIFIER_EXISTS" // email/phone/employee id already registered
	AuthOTPInvalid         = "AUTH_OTP_INVALID"
	AuthOTPExpired         = "AUTH_OTP_EXPIRED"
	AuthPasswordNotSet     = "AUTH_PASSWORD_NOT_SET"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Cart (CART_) ====================
	CartItemNotFound      = "CART_ITEM_NOT_FOUND"
	CartInvalidSelection  = "CART_INVALID_SELECTION" // not exactly one of product/variant
	CartInvalidQuantity   = "CART_INVALID_QUANTITY"
	CartLoanLimitExceeded = "CART_LOAN_LIMIT_EXCEEDED"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound      = "ORDER_NOT_FOUND"
	OrderEmptyCart     = "ORDER_EMPTY_CART"
	OrderAddressNotSet = "ORDER_ADDRESS_NOT_SET"
	OrderInvalidAddr   = "ORDER_INVALID_ADDRESS"
	OrderPriceMissing  = "ORDER_PRICE_MISSING" // unpriceable line; catalog integrity breach

	// ==================== Catalog (CATALOG_) ====================
	CatalogProductNotFound  = "CATALOG_PRODUCT_NOT_FOUND"
	CatalogVariantNotFound  = "CATALOG_VARIANT_NOT_FOUND"
	CatalogCategoryNotFound = "CATALOG_CATEGORY_NOT_FOUND"
	CatalogSKUExists        = "CATALOG_SKU_EXISTS"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Bulk import (IMPORT_) ====================
	ImportFileRequired = "IMPORT_FILE_REQUIRED"
	ImportBadWorkbook  = "IMPORT_BAD_WORKBOOK"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
