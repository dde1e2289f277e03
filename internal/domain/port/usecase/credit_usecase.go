package usecase

import (
	"context"

	"github.com/savelyko/token-ledger/internal/domain/entity"
)

// CreditUseCase is the webhook-facing credit pipeline: resolve the paid tier,
// apply the ledger credit exactly once, notify the user best-effort.
type CreditUseCase interface {
	ApplyPayment(ctx context.Context, event entity.PaymentEvent) (*entity.CreditOutcome, error)
}
