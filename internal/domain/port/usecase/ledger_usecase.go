package usecase

import "context"

// BalanceResponse represents a user balance lookup result
type BalanceResponse struct {
	UserID  int64
	Balance int64
}

// LedgerUseCase exposes the balance ledger operations consumed by the bot
type LedgerUseCase interface {
	// GetBalance returns the user's balance; unknown users read as 0
	GetBalance(ctx context.Context, userID int64) (*BalanceResponse, error)

	// RegisterUser creates the user with a seeded starting balance if absent
	// and reports whether a new record was created
	RegisterUser(ctx context.Context, userID int64) (bool, error)

	// Credit adds an arbitrary token delta and returns the new balance
	Credit(ctx context.Context, userID, tokens int64) (int64, error)

	// Debit spends tokens if the balance suffices
	Debit(ctx context.Context, userID, tokens int64) (bool, error)

	// CountUsers returns the number of registered users
	CountUsers(ctx context.Context) (int64, error)

	// ListUserIDs enumerates all user identifiers
	ListUserIDs(ctx context.Context) ([]int64, error)
}
