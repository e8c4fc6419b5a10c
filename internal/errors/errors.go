package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound         = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists    = new(ErrCodeAlreadyExists, "resource already exists")
	ErrConflict         = new(ErrCodeConflict, "conflicting resource state")
	ErrValidation       = new(ErrCodeValidation, "validation error")
	ErrInvalidOperation = new(ErrCodeInvalidOperation, "invalid operation")
	ErrPermissionDenied = new(ErrCodePermissionDenied, "permission denied")
	ErrDatabase         = new(ErrCodeDatabase, "database error")
	ErrSystem           = new(ErrCodeSystemError, "system error")

	// Entitlement domain errors
	ErrMembershipRequired  = new(ErrCodeMembershipRequired, "active membership required")
	ErrPendingChange       = new(ErrCodePendingChange, "a plan change is already pending")
	ErrConcurrentChange    = new(ErrCodeConcurrentChange, "another change is in progress")
	ErrInsufficientCredits = new(ErrCodeInsufficientCredits, "insufficient credits")
	ErrPromoCodeInvalid    = new(ErrCodePromoCodeInvalid, "promo code is not valid")
	ErrDrawClosed          = new(ErrCodeDrawClosed, "draw is closed")
	ErrDrawSoldOut         = new(ErrCodeDrawSoldOut, "draw is sold out")
	ErrPaymentDeclined     = new(ErrCodePaymentDeclined, "payment was declined")

	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrNotFound:            http.StatusNotFound,
		ErrAlreadyExists:       http.StatusConflict,
		ErrConflict:            http.StatusConflict,
		ErrValidation:          http.StatusBadRequest,
		ErrInvalidOperation:    http.StatusBadRequest,
		ErrPermissionDenied:    http.StatusForbidden,
		ErrDatabase:            http.StatusInternalServerError,
		ErrSystem:              http.StatusInternalServerError,
		ErrMembershipRequired:  http.StatusForbidden,
		ErrPendingChange:       http.StatusConflict,
		ErrConcurrentChange:    http.StatusConflict,
		ErrInsufficientCredits: http.StatusPaymentRequired,
		ErrPromoCodeInvalid:    http.StatusBadRequest,
		ErrDrawClosed:          http.StatusGone,
		ErrDrawSoldOut:         http.StatusConflict,
		ErrPaymentDeclined:     http.StatusPaymentRequired,
	}
)

const (
	ErrCodeSystemError         = "system_error"
	ErrCodeNotFound            = "not_found"
	ErrCodeAlreadyExists       = "already_exists"
	ErrCodeConflict            = "conflict"
	ErrCodeValidation          = "validation_error"
	ErrCodeInvalidOperation    = "invalid_operation"
	ErrCodePermissionDenied    = "permission_denied"
	ErrCodeDatabase            = "database_error"
	ErrCodeMembershipRequired  = "membership_required"
	ErrCodePendingChange       = "pending_change"
	ErrCodeConcurrentChange    = "concurrent_change"
	ErrCodeInsufficientCredits = "insufficient_credits"
	ErrCodePromoCodeInvalid    = "promo_code_invalid"
	ErrCodeDrawClosed          = "draw_closed"
	ErrCodeDrawSoldOut         = "draw_sold_out"
	ErrCodePaymentDeclined     = "payment_declined"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// new creates a new InternalError
func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsMembershipRequired checks if an error is a membership required error
func IsMembershipRequired(err error) bool {
	return errors.Is(err, ErrMembershipRequired)
}

// IsPendingChange checks if an error is a pending change error
func IsPendingChange(err error) bool {
	return errors.Is(err, ErrPendingChange)
}

// IsConcurrentChange checks if an error is a concurrent change error
func IsConcurrentChange(err error) bool {
	return errors.Is(err, ErrConcurrentChange)
}

// IsInsufficientCredits checks if an error is an insufficient credits error
func IsInsufficientCredits(err error) bool {
	return errors.Is(err, ErrInsufficientCredits)
}

// IsPromoCodeInvalid checks if an error is a promo code invalid error
func IsPromoCodeInvalid(err error) bool {
	return errors.Is(err, ErrPromoCodeInvalid)
}

// IsPaymentDeclined checks if an error is a payment declined error
func IsPaymentDeclined(err error) bool {
	return errors.Is(err, ErrPaymentDeclined)
}

// Hint returns the user-facing hint attached to the error, if any
func Hint(err error) string {
	hints := errors.GetAllHints(err)
	if len(hints) == 0 {
		return ""
	}
	return hints[0]
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}
