package entity

import (
	"time"

	errs "github.com/savelyko/token-ledger/internal/domain/error"
	coreport "github.com/savelyko/token-ledger/internal/domain/port/core"
)

// User represents a bot user with a token balance. The ID is the stable
// external Telegram identifier; balances are whole tokens and never negative.
// Balance arithmetic happens in storage as single atomic statements, so the
// aggregate carries state and construction rules, not mutation methods.
type User struct {
	ID        int64
	Balance   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a new user with the given Telegram ID and initial balance
func NewUser(id int64, initialBalance int64, timeProvider coreport.TimeProvider) (*User, error) {
	if id <= 0 {
		return nil, errs.ErrInvalidUserID
	}
	if initialBalance < 0 {
		return nil, errs.ErrInvalidTokenCount
	}

	now := timeProvider.Now()
	return &User{
		ID:        id,
		Balance:   initialBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
