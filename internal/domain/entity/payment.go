package entity

import "github.com/shopspring/decimal"

// PaymentEvent carries the inputs the credit pipeline needs from a provider
// webhook. It is ephemeral and never persisted; only the credit it produces
// is durable.
type PaymentEvent struct {
	// PaymentID is the provider's payment identifier, used as the idempotency
	// key. Empty when the provider did not supply one.
	PaymentID string
	// UserID is the Telegram identifier extracted from payment metadata.
	UserID int64
	// Amount is the paid amount as reported by the provider.
	Amount decimal.Decimal
	// Description is the free-text order description. It may encode a direct
	// token purchase or a tier name.
	Description string
}

// CreditOutcome reports what the credit pipeline did with a payment. It is
// returned for logging and tests; the webhook response never depends on it.
type CreditOutcome struct {
	// Credited is true when the ledger balance was increased by this call.
	Credited bool
	// Duplicate is true when the payment ID was already credited earlier and
	// the event was suppressed.
	Duplicate bool
	// TokensAdded is the grant applied to the ledger (zero when not credited).
	TokensAdded int64
	// NewBalance is the balance after the credit, when known.
	NewBalance int64
	// TierLabel names the tier that resolved the payment, LabelDirectPurchase
	// for explicit purchases, or LabelUnknown when nothing matched.
	TierLabel string
}
