package persistence

import (
	"context"

	"github.com/savelyko/token-ledger/internal/domain/entity"
)

// LedgerRepository is the persistence port for the user token ledger. All
// cross-request safety lives behind this interface: Credit, Debit and
// CreditPayment must be atomic with respect to concurrent calls for the same
// user. Implementations surface persistence failures as ErrStorageUnavailable.
type LedgerRepository interface {
	// GetBalance returns the user's balance, or 0 for unknown users. It never
	// creates a record.
	GetBalance(ctx context.Context, userID int64) (int64, error)

	// RegisterUser persists the user only if absent, and reports whether a
	// new record was created. Safe to call repeatedly.
	RegisterUser(ctx context.Context, user *entity.User) (bool, error)

	// Credit atomically adds tokens to the user's balance, creating the
	// record with that balance if the user does not exist. Returns the
	// resulting balance. Must be a single insert-or-update statement so
	// concurrent credits cannot lose updates.
	Credit(ctx context.Context, userID, tokens int64) (int64, error)

	// CreditPayment applies Credit at most once per payment ID. The
	// idempotency record and the balance change commit in the same database
	// transaction. Reports whether this call applied the credit; when it did
	// not (redelivered event), the current balance is returned unchanged.
	CreditPayment(ctx context.Context, paymentID string, userID, tokens int64) (balance int64, applied bool, err error)

	// Debit atomically checks balance sufficiency and decrements. Reports
	// whether the debit was applied; the check and the write are indivisible.
	Debit(ctx context.Context, userID, tokens int64) (bool, error)

	// CountUsers returns the number of ledger records.
	CountUsers(ctx context.Context) (int64, error)

	// ListUserIDs returns all user identifiers, in no particular order.
	ListUserIDs(ctx context.Context) ([]int64, error)
}
