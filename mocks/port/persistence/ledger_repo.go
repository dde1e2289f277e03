package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/savelyko/token-ledger/internal/domain/entity"
)

// MockLedgerRepository is a testify mock for the persistence.LedgerRepository port
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) GetBalance(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) RegisterUser(ctx context.Context, user *entity.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) Credit(ctx context.Context, userID, tokens int64) (int64, error) {
	args := m.Called(ctx, userID, tokens)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) CreditPayment(ctx context.Context, paymentID string, userID, tokens int64) (int64, bool, error) {
	args := m.Called(ctx, paymentID, userID, tokens)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockLedgerRepository) Debit(ctx context.Context, userID, tokens int64) (bool, error) {
	args := m.Called(ctx, userID, tokens)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) ListUserIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if ids := args.Get(0); ids != nil {
		return ids.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}
