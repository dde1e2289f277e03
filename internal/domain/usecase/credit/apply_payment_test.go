package credit

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/savelyko/token-ledger/internal/domain/entity"
	errs "github.com/savelyko/token-ledger/internal/domain/error"
	"github.com/savelyko/token-ledger/internal/domain/port/notification"
	mockcore "github.com/savelyko/token-ledger/mocks/port/core"
	mocknotification "github.com/savelyko/token-ledger/mocks/port/notification"
	mockpersistence "github.com/savelyko/token-ledger/mocks/port/persistence"
)

func testTiers() *entity.TierTable {
	return entity.NewTierTable([]entity.Tier{
		{Low: decimal.NewFromInt(450), High: decimal.NewFromInt(550), Tokens: 530, Label: "Старт"},
		{Low: decimal.NewFromInt(800), High: decimal.NewFromInt(900), Tokens: 1100, Label: "Оптимальный"},
	}, "докупка токенов", 10)
}

func newTestLogger() *mockcore.MockLogger {
	logger := new(mockcore.MockLogger)
	logger.On("Debug", mock.Anything, mock.Anything).Return().Maybe()
	logger.On("Info", mock.Anything, mock.Anything).Return().Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Return().Maybe()
	logger.On("Error", mock.Anything, mock.Anything).Return().Maybe()
	return logger
}

func newService(ledger *mockpersistence.MockLedgerRepository, notifier *mocknotification.MockNotifier) *Service {
	tp := mockcore.NewFixedTimeProvider(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc := NewService(ledger, testTiers(), notifier, tp, newTestLogger(), 5*time.Second)
	return svc.(*Service)
}

func TestService_ApplyPayment_CreditsAndNotifies(t *testing.T) {
	ctx := context.Background()
	ledger := new(mockpersistence.MockLedgerRepository)
	notifier := new(mocknotification.MockNotifier)

	ledger.On("CreditPayment", mock.Anything, "pay-1", int64(42), int64(1100)).
		Return(int64(1115), true, nil)
	notifier.On("NotifyCredit", mock.Anything, notification.CreditNotification{
		UserID:      42,
		TokensAdded: 1100,
		NewBalance:  1115,
		TierLabel:   "Оптимальный",
	}).Return(nil)

	svc := newService(ledger, notifier)

	outcome, err := svc.ApplyPayment(ctx, entity.PaymentEvent{
		PaymentID:   "pay-1",
		UserID:      42,
		Amount:      decimal.RequireFromString("890.00"),
		Description: "Оптимальный",
	})

	assert.NoError(t, err)
	assert.True(t, outcome.Credited)
	assert.False(t, outcome.Duplicate)
	assert.Equal(t, int64(1100), outcome.TokensAdded)
	assert.Equal(t, int64(1115), outcome.NewBalance)
	assert.Equal(t, "Оптимальный", outcome.TierLabel)

	ledger.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestService_ApplyPayment_NotificationFailureDoesNotUndoCredit(t *testing.T) {
	ctx := context.Background()
	ledger := new(mockpersistence.MockLedgerRepository)
	notifier := new(mocknotification.MockNotifier)

	ledger.On("CreditPayment", mock.Anything, "pay-2", int64(42), int64(530)).
		Return(int64(545), true, nil)
	notifier.On("NotifyCredit", mock.Anything, mock.Anything).
		Return(errs.ErrNotificationFailed)

	svc := newService(ledger, notifier)

	outcome, err := svc.ApplyPayment(ctx, entity.PaymentEvent{
		PaymentID:   "pay-2",
		UserID:      42,
		Amount:      decimal.NewFromInt(500),
		Description: "Старт",
	})

	// The credit is final once the ledger write returned; the failed send is
	// log-only.
	assert.NoError(t, err)
	assert.True(t, outcome.Credited)
	assert.Equal(t, int64(545), outcome.NewBalance)
	ledger.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestService_ApplyPayment_DuplicatePaymentSuppressed(t *testing.T) {
	ctx := context.Background()
	ledger := new(mockpersistence.MockLedgerRepository)
	notifier := new(mocknotification.MockNotifier)

	ledger.On("CreditPayment", mock.Anything, "pay-3", int64(42), int64(530)).
		Return(int64(545), false, nil)

	svc := newService(ledger, notifier)

	outcome, err := svc.ApplyPayment(ctx, entity.PaymentEvent{
		PaymentID:   "pay-3",
		UserID:      42,
		Amount:      decimal.NewFromInt(500),
		Description: "Старт",
	})

	assert.NoError(t, err)
	assert.False(t, outcome.Credited)
	assert.True(t, outcome.Duplicate)
	assert.Equal(t, int64(545), outcome.NewBalance)

	// A suppressed duplicate must not re-notify the user.
	notifier.AssertNotCalled(t, "NotifyCredit")
}

func TestService_ApplyPayment_UnresolvedTierAppliesNothing(t *testing.T) {
	ctx := context.Background()
	ledger := new(mockpersistence.MockLedgerRepository)
	notifier := new(mocknotification.MockNotifier)

	svc := newService(ledger, notifier)

	outcome, err := svc.ApplyPayment(ctx, entity.PaymentEvent{
		PaymentID:   "pay-4",
		UserID:      42,
		Amount:      decimal.NewFromInt(50),
		Description: "nonsense",
	})

	assert.NoError(t, err)
	assert.False(t, outcome.Credited)
	assert.Equal(t, entity.LabelUnknown, outcome.TierLabel)
	assert.Equal(t, int64(0), outcome.TokensAdded)

	ledger.AssertNotCalled(t, "Credit")
	ledger.AssertNotCalled(t, "CreditPayment")
	notifier.AssertNotCalled(t, "NotifyCredit")
}

func TestService_ApplyPayment_StorageFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	ledger := new(mockpersistence.MockLedgerRepository)
	notifier := new(mocknotification.MockNotifier)

	ledger.On("CreditPayment", mock.Anything, "pay-5", int64(42), int64(530)).
		Return(int64(0), false, errs.ErrStorageUnavailable)

	svc := newService(ledger, notifier)

	outcome, err := svc.ApplyPayment(ctx, entity.PaymentEvent{
		PaymentID:   "pay-5",
		UserID:      42,
		Amount:      decimal.NewFromInt(500),
		Description: "Старт",
	})

	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, errs.ErrStorageUnavailable)
	notifier.AssertNotCalled(t, "NotifyCredit")
}

func TestService_ApplyPayment_NoPaymentIDUsesPlainCredit(t *testing.T) {
	ctx := context.Background()
	ledger := new(mockpersistence.MockLedgerRepository)
	notifier := new(mocknotification.MockNotifier)

	ledger.On("Credit", mock.Anything, int64(42), int64(110)).Return(int64(125), nil)
	notifier.On("NotifyCredit", mock.Anything, mock.Anything).Return(nil)

	svc := newService(ledger, notifier)

	outcome, err := svc.ApplyPayment(ctx, entity.PaymentEvent{
		UserID:      42,
		Amount:      decimal.NewFromInt(999999),
		Description: "докупка токенов: 100",
	})

	assert.NoError(t, err)
	assert.True(t, outcome.Credited)
	assert.Equal(t, int64(110), outcome.TokensAdded)
	assert.Equal(t, entity.LabelDirectPurchase, outcome.TierLabel)
	ledger.AssertNotCalled(t, "CreditPayment")
}

func TestService_ApplyPayment_InvalidUserID(t *testing.T) {
	svc := newService(new(mockpersistence.MockLedgerRepository), new(mocknotification.MockNotifier))

	_, err := svc.ApplyPayment(context.Background(), entity.PaymentEvent{
		UserID:      0,
		Amount:      decimal.NewFromInt(500),
		Description: "Старт",
	})
	assert.ErrorIs(t, err, errs.ErrInvalidUserID)
}
