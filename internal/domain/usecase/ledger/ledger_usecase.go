package ledger

import (
	"context"

	"github.com/savelyko/token-ledger/internal/domain/entity"
	errs "github.com/savelyko/token-ledger/internal/domain/error"
	coreport "github.com/savelyko/token-ledger/internal/domain/port/core"
	"github.com/savelyko/token-ledger/internal/domain/port/persistence"
	"github.com/savelyko/token-ledger/internal/domain/port/usecase"
)

// UseCase implements the ledger operations consumed by the bot
type UseCase struct {
	repo           persistence.LedgerRepository
	welcomeBalance int64
	timeProvider   coreport.TimeProvider
	logger         coreport.Logger
}

// NewUseCase creates a new ledger use case. welcomeBalance seeds every newly
// registered user.
func NewUseCase(
	repo persistence.LedgerRepository,
	welcomeBalance int64,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) usecase.LedgerUseCase {
	return &UseCase{
		repo:           repo,
		welcomeBalance: welcomeBalance,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// GetBalance returns the user's balance; unknown users read as 0
func (u *UseCase) GetBalance(ctx context.Context, userID int64) (*usecase.BalanceResponse, error) {
	if userID <= 0 {
		return nil, errs.ErrInvalidUserID
	}

	balance, err := u.repo.GetBalance(ctx, userID)
	if err != nil {
		u.logger.Error("Failed to get balance", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}

	return &usecase.BalanceResponse{UserID: userID, Balance: balance}, nil
}

// RegisterUser creates the user with the seeded starting balance if absent.
// Repeated calls are no-ops.
func (u *UseCase) RegisterUser(ctx context.Context, userID int64) (bool, error) {
	user, err := entity.NewUser(userID, u.welcomeBalance, u.timeProvider)
	if err != nil {
		return false, err
	}

	created, err := u.repo.RegisterUser(ctx, user)
	if err != nil {
		u.logger.Error("Failed to register user", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return false, err
	}

	if created {
		u.logger.Info("User registered", map[string]any{
			"user_id":         userID,
			"initial_balance": u.welcomeBalance,
		})
	}
	return created, nil
}

// Credit adds an arbitrary token delta and returns the new balance
func (u *UseCase) Credit(ctx context.Context, userID, tokens int64) (int64, error) {
	if userID <= 0 {
		return 0, errs.ErrInvalidUserID
	}
	if tokens < 0 {
		return 0, errs.ErrInvalidTokenCount
	}

	balance, err := u.repo.Credit(ctx, userID, tokens)
	if err != nil {
		u.logger.Error("Failed to credit user", map[string]any{
			"user_id": userID,
			"tokens":  tokens,
			"error":   err.Error(),
		})
		return 0, err
	}

	u.logger.Info("Balance credited", map[string]any{
		"user_id":     userID,
		"tokens":      tokens,
		"new_balance": balance,
	})
	return balance, nil
}

// Debit spends tokens if the balance suffices. An insufficient balance is an
// expected branch, reported in the return value rather than as an error.
func (u *UseCase) Debit(ctx context.Context, userID, tokens int64) (bool, error) {
	if userID <= 0 {
		return false, errs.ErrInvalidUserID
	}
	if tokens < 0 {
		return false, errs.ErrInvalidTokenCount
	}

	ok, err := u.repo.Debit(ctx, userID, tokens)
	if err != nil {
		u.logger.Error("Failed to debit user", map[string]any{
			"user_id": userID,
			"tokens":  tokens,
			"error":   err.Error(),
		})
		return false, err
	}

	if !ok {
		u.logger.Info("Debit rejected, insufficient balance", map[string]any{
			"user_id": userID,
			"tokens":  tokens,
		})
		return false, nil
	}

	u.logger.Info("Balance debited", map[string]any{
		"user_id": userID,
		"tokens":  tokens,
	})
	return true, nil
}

// CountUsers returns the number of registered users
func (u *UseCase) CountUsers(ctx context.Context) (int64, error) {
	count, err := u.repo.CountUsers(ctx)
	if err != nil {
		u.logger.Error("Failed to count users", map[string]any{
			"error": err.Error(),
		})
		return 0, err
	}
	return count, nil
}

// ListUserIDs enumerates all user identifiers
func (u *UseCase) ListUserIDs(ctx context.Context) ([]int64, error) {
	ids, err := u.repo.ListUserIDs(ctx)
	if err != nil {
		u.logger.Error("Failed to list user ids", map[string]any{
			"error": err.Error(),
		})
		return nil, err
	}
	return ids, nil
}
