package credit

import (
	"context"
	"time"

	"github.com/savelyko/token-ledger/internal/domain/entity"
	errs "github.com/savelyko/token-ledger/internal/domain/error"
	coreport "github.com/savelyko/token-ledger/internal/domain/port/core"
	"github.com/savelyko/token-ledger/internal/domain/port/notification"
	"github.com/savelyko/token-ledger/internal/domain/port/persistence"
	"github.com/savelyko/token-ledger/internal/domain/port/usecase"
)

// Service orchestrates a payment event into a ledger credit and a best-effort
// user notification. The ledger write is the durability boundary: once it
// succeeds the credit is final, whatever happens to the notification.
type Service struct {
	ledger        persistence.LedgerRepository
	tiers         *entity.TierTable
	notifier      notification.Notifier
	timeProvider  coreport.TimeProvider
	logger        coreport.Logger
	notifyTimeout time.Duration
}

// NewService creates the credit pipeline
func NewService(
	ledger persistence.LedgerRepository,
	tiers *entity.TierTable,
	notifier notification.Notifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	notifyTimeout time.Duration,
) usecase.CreditUseCase {
	return &Service{
		ledger:        ledger,
		tiers:         tiers,
		notifier:      notifier,
		timeProvider:  timeProvider,
		logger:        logger,
		notifyTimeout: notifyTimeout,
	}
}

// ApplyPayment resolves the paid tier, credits the user exactly once and
// notifies them. Only a storage failure is returned as an error; every other
// path is encoded in the outcome.
func (s *Service) ApplyPayment(ctx context.Context, event entity.PaymentEvent) (*entity.CreditOutcome, error) {
	if event.UserID <= 0 {
		return nil, errs.ErrInvalidUserID
	}

	res := s.tiers.Resolve(event.Amount, event.Description)
	if !res.Matched() {
		// Never guess a grant. Zero tokens, loud log, manual review.
		s.logger.Warn("Payment did not resolve to any tier, no credit applied", map[string]any{
			"user_id":     event.UserID,
			"payment_id":  event.PaymentID,
			"amount":      event.Amount.String(),
			"description": event.Description,
		})
		return &entity.CreditOutcome{TierLabel: entity.LabelUnknown}, nil
	}

	balance, applied, err := s.credit(ctx, event, res.Tokens)
	if err != nil {
		s.logger.Error("Failed to credit payment", map[string]any{
			"user_id":    event.UserID,
			"payment_id": event.PaymentID,
			"tokens":     res.Tokens,
			"tier":       res.Label,
			"error":      err.Error(),
		})
		return nil, err
	}

	if !applied {
		s.logger.Warn("Payment already credited, duplicate delivery suppressed", map[string]any{
			"user_id":    event.UserID,
			"payment_id": event.PaymentID,
			"balance":    balance,
		})
		return &entity.CreditOutcome{
			Duplicate:  true,
			NewBalance: balance,
			TierLabel:  res.Label,
		}, nil
	}

	s.logger.Info("Payment credited", map[string]any{
		"user_id":     event.UserID,
		"payment_id":  event.PaymentID,
		"tokens":      res.Tokens,
		"tier":        res.Label,
		"new_balance": balance,
	})

	outcome := &entity.CreditOutcome{
		Credited:    true,
		TokensAdded: res.Tokens,
		NewBalance:  balance,
		TierLabel:   res.Label,
	}

	s.notify(ctx, event.UserID, outcome)

	return outcome, nil
}

// credit applies the grant through the idempotent path when the provider sent
// a payment ID, and through the plain upsert otherwise.
func (s *Service) credit(ctx context.Context, event entity.PaymentEvent, tokens int64) (int64, bool, error) {
	if event.PaymentID != "" {
		return s.ledger.CreditPayment(ctx, event.PaymentID, event.UserID, tokens)
	}

	balance, err := s.ledger.Credit(ctx, event.UserID, tokens)
	return balance, err == nil, err
}

// notify sends the user message after the durability point. Failures are
// visible only in logs; they never undo the credit and never reach the
// webhook caller.
func (s *Service) notify(ctx context.Context, userID int64, outcome *entity.CreditOutcome) {
	notifyCtx, cancel := s.timeProvider.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()

	err := s.notifier.NotifyCredit(notifyCtx, notification.CreditNotification{
		UserID:      userID,
		TokensAdded: outcome.TokensAdded,
		NewBalance:  outcome.NewBalance,
		TierLabel:   outcome.TierLabel,
	})
	if err != nil {
		s.logger.Warn("Failed to notify user about credit", map[string]any{
			"user_id": userID,
			"tokens":  outcome.TokensAdded,
			"error":   err.Error(),
		})
	}
}
