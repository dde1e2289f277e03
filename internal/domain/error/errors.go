package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientBalance = 4001
	CodeInvalidAmount       = 4002
	CodeInvalidUserID       = 4003
	CodeDuplicatePayment    = 4004
	CodeUserNotFound        = 4040

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeStorageUnavailable = 5030
)

// Base error types
var (
	// ErrInsufficientBalance is returned when a debit would drive the balance negative
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAmount is returned when a payment amount cannot be parsed
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrInvalidTokenCount is returned when a credit or debit amount is negative
	ErrInvalidTokenCount = errors.New("token count cannot be negative")

	// ErrDuplicatePayment is returned when a payment ID has already been credited
	ErrDuplicatePayment = errors.New("payment has already been credited")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrStorageUnavailable is returned when the underlying persistence layer
	// is unreachable or failed. This is the only genuine fault in the credit
	// path; everything else is an expected-branch outcome.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNotificationFailed is returned by the notifier when a message could
	// not be delivered. It is always caught and logged, never propagated.
	ErrNotificationFailed = errors.New("notification failed")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidTokenCount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrDuplicatePayment):
		return CodeDuplicatePayment
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrStorageUnavailable):
		return CodeStorageUnavailable
	default:
		return CodeInternalServer
	}
}

// InsufficientBalanceError provides detailed error information for a rejected debit
type InsufficientBalanceError struct {
	UserID      int64
	Tokens      int64
	CurrBalance int64
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %d: required %d tokens, available %d",
		e.UserID, e.Tokens, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"user_id":         e.UserID,
		"tokens":          e.Tokens,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID, tokens, currentBalance int64) error {
	return &InsufficientBalanceError{
		UserID:      userID,
		Tokens:      tokens,
		CurrBalance: currentBalance,
	}
}

// DuplicatePaymentError provides detailed information about a redelivered payment event
type DuplicatePaymentError struct {
	PaymentID string
	UserID    int64
}

// Error implements the error interface
func (e *DuplicatePaymentError) Error() string {
	return fmt.Sprintf("duplicate payment detected: paymentID=%s for user %d", e.PaymentID, e.UserID)
}

// Is checks if the target error is an ErrDuplicatePayment
func (e *DuplicatePaymentError) Is(target error) bool {
	return target == ErrDuplicatePayment
}

// LogFields returns a map of fields for structured logging
func (e *DuplicatePaymentError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "duplicate_payment",
		"payment_id": e.PaymentID,
		"user_id":    e.UserID,
		"error_code": CodeDuplicatePayment,
	}
}

// IsDuplicatePaymentError checks if the error is a duplicate payment error
func IsDuplicatePaymentError(err error) bool {
	return errors.Is(err, ErrDuplicatePayment)
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsStorageUnavailableError checks if the error indicates a persistence failure
func IsStorageUnavailableError(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
