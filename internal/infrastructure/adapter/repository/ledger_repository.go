package repository

import (
	"context"
	"errors"

	"github.com/savelyko/token-ledger/internal/domain/entity"
	coreport "github.com/savelyko/token-ledger/internal/domain/port/core"
	"github.com/savelyko/token-ledger/internal/domain/port/persistence"
	"github.com/savelyko/token-ledger/internal/infrastructure/adapter/database"
	"github.com/savelyko/token-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepository implements the LedgerRepository port using GORM on
// Postgres. Every mutation is a single statement (or a single transaction for
// the idempotent payment path), so concurrent webhooks for the same user
// cannot lose updates.
type LedgerRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	errorMapper  *database.ErrorMapper
}

// NewLedgerRepository creates a new LedgerRepository instance
func NewLedgerRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) persistence.LedgerRepository {
	return &LedgerRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
		errorMapper:  database.NewErrorMapper(),
	}
}

// GetBalance returns the user's balance, or 0 for unknown users
func (r *LedgerRepository) GetBalance(ctx context.Context, userID int64) (int64, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, "telegram_id = ?", userID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			// Unknown users read as zero; no implicit creation.
			return 0, nil
		}
		return 0, r.errorMapper.MapError(result.Error, "get balance")
	}

	return userModel.Balance, nil
}

// RegisterUser creates the user only if absent and reports whether a new
// record was created. INSERT ... ON CONFLICT DO NOTHING makes repeated calls
// harmless.
func (r *LedgerRepository) RegisterUser(ctx context.Context, user *entity.User) (bool, error) {
	userModel := model.User{
		TelegramID: user.ID,
		Balance:    user.Balance,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "telegram_id"}},
			DoNothing: true,
		}).
		Create(&userModel)

	if result.Error != nil {
		return false, r.errorMapper.MapError(result.Error, "register user")
	}

	return result.RowsAffected > 0, nil
}

// Credit atomically adds tokens to the user's balance, creating the record
// if needed, and returns the resulting balance. The upsert and the read-back
// happen in one statement so concurrent credits are never lost.
func (r *LedgerRepository) Credit(ctx context.Context, userID, tokens int64) (int64, error) {
	balance, err := r.creditTx(r.db.WithContext(ctx), userID, tokens)
	if err != nil {
		return 0, r.errorMapper.MapError(err, "credit")
	}
	return balance, nil
}

// CreditPayment applies Credit at most once per payment ID. The idempotency
// record and the balance change commit together; a redelivered event inserts
// nothing and leaves the balance alone.
func (r *LedgerRepository) CreditPayment(ctx context.Context, paymentID string, userID, tokens int64) (int64, bool, error) {
	var balance int64
	applied := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := model.PaymentCredit{
			PaymentID:  paymentID,
			TelegramID: userID,
			Tokens:     tokens,
			CreatedAt:  r.timeProvider.Now(),
		}

		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "payment_id"}},
			DoNothing: true,
		}).Create(&record)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			// Already credited by an earlier delivery; report the current
			// balance unchanged.
			var userModel model.User
			if err := tx.First(&userModel, "telegram_id = ?", userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil
				}
				return err
			}
			balance = userModel.Balance
			return nil
		}

		newBalance, err := r.creditTx(tx, userID, tokens)
		if err != nil {
			return err
		}
		balance = newBalance
		applied = true
		return nil
	})

	if err != nil {
		return 0, false, r.errorMapper.MapError(err, "credit payment")
	}

	return balance, applied, nil
}

// creditTx runs the single-statement insert-or-update credit on the given
// handle (plain connection or open transaction).
func (r *LedgerRepository) creditTx(tx *gorm.DB, userID, tokens int64) (int64, error) {
	now := r.timeProvider.Now()

	var balance int64
	err := tx.Raw(`
		INSERT INTO users (telegram_id, balance, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (telegram_id)
		DO UPDATE SET balance = users.balance + EXCLUDED.balance, updated_at = EXCLUDED.updated_at
		RETURNING balance`,
		userID, tokens, now, now,
	).Scan(&balance).Error

	if err != nil {
		return 0, err
	}

	return balance, nil
}

// Debit checks balance sufficiency and decrements in one conditional UPDATE;
// the row count tells whether it applied. No row means the user is unknown or
// the balance was too low — either way, no tokens moved.
func (r *LedgerRepository) Debit(ctx context.Context, userID, tokens int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("telegram_id = ? AND balance >= ?", userID, tokens).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", tokens),
			"updated_at": r.timeProvider.Now(),
		})

	if result.Error != nil {
		return false, r.errorMapper.MapError(result.Error, "debit")
	}

	return result.RowsAffected > 0, nil
}

// CountUsers returns the number of ledger records
func (r *LedgerRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.User{}).Count(&count)
	if result.Error != nil {
		return 0, r.errorMapper.MapError(result.Error, "count users")
	}
	return count, nil
}

// ListUserIDs returns all user identifiers, in no particular order
func (r *LedgerRepository) ListUserIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	result := r.db.WithContext(ctx).Model(&model.User{}).Pluck("telegram_id", &ids)
	if result.Error != nil {
		return nil, r.errorMapper.MapError(result.Error, "list user ids")
	}
	return ids, nil
}
