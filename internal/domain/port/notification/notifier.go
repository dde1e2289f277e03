package notification

import "context"

// CreditNotification describes a successful credit to announce to the user.
type CreditNotification struct {
	UserID      int64
	TokensAdded int64
	NewBalance  int64
	TierLabel   string
}

// Notifier is a fire-and-forget message sink. Sends must be time-bounded;
// the caller logs and swallows any error, so implementations never need to
// retry.
type Notifier interface {
	NotifyCredit(ctx context.Context, n CreditNotification) error
}
