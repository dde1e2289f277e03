package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/savelyko/token-ledger/internal/domain/entity"
	errs "github.com/savelyko/token-ledger/internal/domain/error"
	mockcore "github.com/savelyko/token-ledger/mocks/port/core"
	mockpersistence "github.com/savelyko/token-ledger/mocks/port/persistence"
)

const welcomeBalance = int64(15)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testClock() *mockcore.FixedTimeProvider {
	return mockcore.NewFixedTimeProvider(fixedNow)
}

func newTestLogger() *mockcore.MockLogger {
	logger := new(mockcore.MockLogger)
	logger.On("Debug", mock.Anything, mock.Anything).Return().Maybe()
	logger.On("Info", mock.Anything, mock.Anything).Return().Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Return().Maybe()
	logger.On("Error", mock.Anything, mock.Anything).Return().Maybe()
	return logger
}

func TestUseCase_GetBalance(t *testing.T) {
	t.Run("returns balance for known user", func(t *testing.T) {
		ctx := context.Background()
		repo := new(mockpersistence.MockLedgerRepository)
		repo.On("GetBalance", ctx, int64(42)).Return(int64(530), nil)

		uc := NewUseCase(repo, welcomeBalance, testClock(), newTestLogger())

		resp, err := uc.GetBalance(ctx, 42)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), resp.UserID)
		assert.Equal(t, int64(530), resp.Balance)
		repo.AssertExpectations(t)
	})

	t.Run("unknown user reads as zero", func(t *testing.T) {
		ctx := context.Background()
		repo := new(mockpersistence.MockLedgerRepository)
		repo.On("GetBalance", ctx, int64(7)).Return(int64(0), nil)

		uc := NewUseCase(repo, welcomeBalance, testClock(), newTestLogger())

		resp, err := uc.GetBalance(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), resp.Balance)
	})

	t.Run("rejects invalid user id without touching storage", func(t *testing.T) {
		repo := new(mockpersistence.MockLedgerRepository)
		uc := NewUseCase(repo, welcomeBalance, testClock(), newTestLogger())

		_, err := uc.GetBalance(context.Background(), 0)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		repo.AssertNotCalled(t, "GetBalance")
	})

	t.Run("surfaces storage failure", func(t *testing.T) {
		ctx := context.Background()
		repo := new(mockpersistence.MockLedgerRepository)
		repo.On("GetBalance", ctx, int64(42)).Return(int64(0), errs.ErrStorageUnavailable)

		uc := NewUseCase(repo, welcomeBalance, testClock(), newTestLogger())

		_, err := uc.GetBalance(ctx, 42)
		assert.ErrorIs(t, err, errs.ErrStorageUnavailable)
	})
}

func TestUseCase_RegisterUser(t *testing.T) {
	t.Run("seeds welcome balance on first registration", func(t *testing.T) {
		ctx := context.Background()
		repo := new(mockpersistence.MockLedgerRepository)
		repo.On("RegisterUser", ctx, &entity.User{
			ID:        42,
			Balance:   welcomeBalance,
			CreatedAt: fixedNow,
			UpdatedAt: fixedNow,
		}).Return(true, nil)

		uc := NewUseCase(repo, welcomeBalance, testClock(), newTestLogger())

		created, err := uc.RegisterUser(ctx, 42)
		assert.NoError(t, err)
		assert.True(t, created)
		repo.AssertExpectations(t)
	})

	t.Run("second registration is a no-op", func(t *testing.T) {
		ctx := context.Background()
		repo := new(mockpersistence.MockLedgerRepository)
		repo.On("RegisterUser", ctx, mock.AnythingOfType("*entity.User")).Return(false, nil)

		uc := NewUseCase(repo, welcomeBalance, testClock(), newTestLogger())

		created, err := uc.RegisterUser(ctx, 42)
		assert.NoError(t, err)
		assert.False(t, created)
	})
}

func TestUseCase_Credit(t *testing.T) {
	t.Run("returns new balance", func(t *testing.T) {
		ctx := context.Background()
		repo := new(mockpersistence.MockLedgerRepository)
		repo.On("Credit", ctx, int64(42), int64(100)).Return(int64(115), nil)

		uc := NewUseCase(repo, welcomeBalance, testClock(), newTestLogger())

		balance, err := uc.Credit(ctx, 42, 100)
		assert.NoError(t, err)
		assert.Equal(t, int64(115), balance)
	})

	t.Run("rejects negative token count", func(t *testing.T) {
		repo := new(mockpersistence.MockLedgerRepository)
		uc := NewUseCase(repo, welcomeBalance, testClock(), newTestLogger())

		_, err := uc.Credit(context.Background(), 42, -5)
		assert.ErrorIs(t, err, errs.ErrInvalidTokenCount)
		repo.AssertNotCalled(t, "Credit")
	})
}

func TestUseCase_Debit(t *testing.T) {
	t.Run("succeeds with sufficient balance", func(t *testing.T) {
		ctx := context.Background()
		repo := new(mockpersistence.MockLedgerRepository)
		repo.On("Debit", ctx, int64(42), int64(10)).Return(true, nil)

		uc := NewUseCase(repo, welcomeBalance, testClock(), newTestLogger())

		ok, err := uc.Debit(ctx, 42, 10)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("insufficient balance is a non-error outcome", func(t *testing.T) {
		ctx := context.Background()
		repo := new(mockpersistence.MockLedgerRepository)
		repo.On("Debit", ctx, int64(42), int64(9999)).Return(false, nil)

		uc := NewUseCase(repo, welcomeBalance, testClock(), newTestLogger())

		ok, err := uc.Debit(ctx, 42, 9999)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("surfaces storage failure", func(t *testing.T) {
		ctx := context.Background()
		repo := new(mockpersistence.MockLedgerRepository)
		repo.On("Debit", ctx, int64(42), int64(10)).Return(false, errs.ErrStorageUnavailable)

		uc := NewUseCase(repo, welcomeBalance, testClock(), newTestLogger())

		_, err := uc.Debit(ctx, 42, 10)
		assert.ErrorIs(t, err, errs.ErrStorageUnavailable)
	})
}

func TestUseCase_Enumeration(t *testing.T) {
	ctx := context.Background()
	repo := new(mockpersistence.MockLedgerRepository)
	repo.On("CountUsers", ctx).Return(int64(3), nil)
	repo.On("ListUserIDs", ctx).Return([]int64{1, 42, 1001}, nil)

	uc := NewUseCase(repo, welcomeBalance, testClock(), newTestLogger())

	count, err := uc.CountUsers(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	ids, err := uc.ListUserIDs(ctx)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 42, 1001}, ids)
}
