package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/savelyko/token-ledger/internal/domain/entity"
	"github.com/savelyko/token-ledger/internal/domain/port/usecase"
)

// MockLedgerUseCase is a testify mock for the usecase.LedgerUseCase port
type MockLedgerUseCase struct {
	mock.Mock
}

func (m *MockLedgerUseCase) GetBalance(ctx context.Context, userID int64) (*usecase.BalanceResponse, error) {
	args := m.Called(ctx, userID)
	if resp := args.Get(0); resp != nil {
		return resp.(*usecase.BalanceResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerUseCase) RegisterUser(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerUseCase) Credit(ctx context.Context, userID, tokens int64) (int64, error) {
	args := m.Called(ctx, userID, tokens)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerUseCase) Debit(ctx context.Context, userID, tokens int64) (bool, error) {
	args := m.Called(ctx, userID, tokens)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerUseCase) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerUseCase) ListUserIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if ids := args.Get(0); ids != nil {
		return ids.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCreditUseCase is a testify mock for the usecase.CreditUseCase port
type MockCreditUseCase struct {
	mock.Mock
}

func (m *MockCreditUseCase) ApplyPayment(ctx context.Context, event entity.PaymentEvent) (*entity.CreditOutcome, error) {
	args := m.Called(ctx, event)
	if outcome := args.Get(0); outcome != nil {
		return outcome.(*entity.CreditOutcome), args.Error(1)
	}
	return nil, args.Error(1)
}
