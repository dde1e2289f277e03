package notification

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/savelyko/token-ledger/internal/domain/port/notification"
)

// MockNotifier is a testify mock for the notification.Notifier port
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyCredit(ctx context.Context, n notification.CreditNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
