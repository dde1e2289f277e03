package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	domainErr "github.com/savelyko/token-ledger/internal/domain/error"
)

func TestErrorMapper_MapError(t *testing.T) {
	mapper := NewErrorMapper()

	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, mapper.MapError(nil, "get balance"))
	})

	t.Run("record not found maps to user not found", func(t *testing.T) {
		err := mapper.MapError(gorm.ErrRecordNotFound, "get balance")
		assert.ErrorIs(t, err, domainErr.ErrUserNotFound)
	})

	t.Run("payment unique violation maps to duplicate payment", func(t *testing.T) {
		dbErr := errors.New(`ERROR: duplicate key value violates unique constraint "payment_credits_pkey"`)
		err := mapper.MapError(dbErr, "credit payment")
		assert.ErrorIs(t, err, domainErr.ErrDuplicatePayment)
	})

	t.Run("other unique violations are internal errors", func(t *testing.T) {
		dbErr := errors.New(`ERROR: duplicate key value violates unique constraint "users_pkey"`)
		err := mapper.MapError(dbErr, "register user")
		assert.ErrorIs(t, err, domainErr.ErrInternalServer)
		assert.NotErrorIs(t, err, domainErr.ErrDuplicatePayment)
	})

	t.Run("connection failures map to storage unavailable", func(t *testing.T) {
		for _, msg := range []string{
			"dial tcp 127.0.0.1:5432: connect: connection refused",
			"write tcp: broken pipe",
			"context deadline exceeded",
		} {
			err := mapper.MapError(errors.New(msg), "debit")
			assert.ErrorIs(t, err, domainErr.ErrStorageUnavailable, msg)
		}
	})

	t.Run("unrecognized errors default to storage unavailable", func(t *testing.T) {
		err := mapper.MapError(errors.New("something unexpected"), "count users")
		assert.ErrorIs(t, err, domainErr.ErrStorageUnavailable)
	})
}
