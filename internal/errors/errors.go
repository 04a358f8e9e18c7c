// Package errors provides custom error types for the Farmbook API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrIdentifierRequired = &AppError{Code: "IDENTIFIER_REQUIRED", Message: "Username or email is required", StatusCode: http.StatusBadRequest}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid identifier or password", StatusCode: http.StatusUnauthorized}
	ErrUserLocked         = &AppError{Code: "USER_LOCKED", Message: "User account is not active", StatusCode: http.StatusForbidden}
	ErrRoleMissing        = &AppError{Code: "ROLE_MISSING", Message: "User has no assigned roles", StatusCode: http.StatusForbidden}
	ErrUnauthenticated    = &AppError{Code: "UNAUTHENTICATED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail    = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "A user with this username already exists", StatusCode: http.StatusConflict}
	ErrRoleNotFound      = &AppError{Code: "ROLE_NOT_FOUND", Message: "Role not found", StatusCode: http.StatusNotFound}
)

// Farm structure errors.
var (
	ErrFarmNotFound   = &AppError{Code: "FARM_NOT_FOUND", Message: "Farm not found", StatusCode: http.StatusNotFound}
	ErrPlotNotFound   = &AppError{Code: "PLOT_NOT_FOUND", Message: "Plot not found", StatusCode: http.StatusNotFound}
	ErrSeasonNotFound = &AppError{Code: "SEASON_NOT_FOUND", Message: "Season not found", StatusCode: http.StatusNotFound}
	ErrPlotInUse      = &AppError{Code: "PLOT_IN_USE", Message: "Plot has seasons that are not finished", StatusCode: http.StatusConflict}
	ErrSeasonLocked   = &AppError{Code: "SEASON_LOCKED", Message: "Season is in a terminal status", StatusCode: http.StatusConflict}
)

// Season record errors.
var (
	ErrExpenseNotFound      = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrExpensePeriodLocked  = &AppError{Code: "EXPENSE_PERIOD_LOCKED", Message: "Season no longer accepts expense changes", StatusCode: http.StatusConflict}
	ErrInvalidSeasonDates   = &AppError{Code: "INVALID_SEASON_DATES", Message: "Date falls outside the season bounds", StatusCode: http.StatusBadRequest}
	ErrExpenseAmountInvalid = &AppError{Code: "EXPENSE_AMOUNT_INVALID", Message: "Expense total must be greater than zero", StatusCode: http.StatusBadRequest}
	ErrHarvestNotFound      = &AppError{Code: "HARVEST_NOT_FOUND", Message: "Harvest not found", StatusCode: http.StatusNotFound}
	ErrIncidentNotFound     = &AppError{Code: "INCIDENT_NOT_FOUND", Message: "Incident not found", StatusCode: http.StatusNotFound}
	ErrTaskNotFound         = &AppError{Code: "TASK_NOT_FOUND", Message: "Task not found", StatusCode: http.StatusNotFound}
	ErrTaskAlreadyClosed    = &AppError{Code: "TASK_ALREADY_CLOSED", Message: "Task is already done or cancelled", StatusCode: http.StatusConflict}
)

// Inventory errors.
var (
	ErrWarehouseNotFound  = &AppError{Code: "WAREHOUSE_NOT_FOUND", Message: "Warehouse not found", StatusCode: http.StatusNotFound}
	ErrSupplyItemNotFound = &AppError{Code: "SUPPLY_ITEM_NOT_FOUND", Message: "Supply item not found", StatusCode: http.StatusNotFound}
	ErrSupplyLotNotFound  = &AppError{Code: "SUPPLY_LOT_NOT_FOUND", Message: "Supply lot not found", StatusCode: http.StatusNotFound}
)

// Document errors.
var (
	ErrDocumentNotFound = &AppError{Code: "DOCUMENT_NOT_FOUND", Message: "Document not found", StatusCode: http.StatusNotFound}
)
