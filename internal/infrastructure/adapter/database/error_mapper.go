package database

import (
	"errors"
	"fmt"
	"strings"

	domainErr "github.com/savelyko/token-ledger/internal/domain/error"
	"gorm.io/gorm"
)

// ErrorMapper maps database errors to domain errors. Everything that smells
// like the database being unreachable, timing out or otherwise failing maps
// to ErrStorageUnavailable so the caller sees exactly one fault kind.
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError maps a database error to a domain error
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr.ErrUserNotFound
	}

	errMsg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint"):
		if strings.Contains(errMsg, "payment") {
			return domainErr.ErrDuplicatePayment
		}
		return fmt.Errorf("%w: duplicate key on %s", domainErr.ErrInternalServer, operation)

	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no connection") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "broken pipe") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "deadline exceeded"):
		return fmt.Errorf("%w: %s failed: %s", domainErr.ErrStorageUnavailable, operation, err.Error())

	default:
		return fmt.Errorf("%w: %s failed: %s", domainErr.ErrStorageUnavailable, operation, err.Error())
	}
}
