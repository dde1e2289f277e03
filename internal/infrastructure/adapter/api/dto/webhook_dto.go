package dto

// Webhook outcome values returned in the acknowledgment body. Every inbound
// event is acknowledged with HTTP 200 so the provider does not redeliver;
// the outcome tells operators what actually happened.
const (
	OutcomeOK         = "ok"
	OutcomeIgnored    = "ignored"
	OutcomeParseError = "parse_error"
	OutcomeNoUserID   = "no_user_id"
	OutcomeBadUserID  = "bad_user_id"
)

// EventPaymentSucceeded is the only provider event kind that credits tokens
const EventPaymentSucceeded = "payment.succeeded"

// WebhookRequest is the provider's payment notification shape
type WebhookRequest struct {
	Event  string        `json:"event"`
	Object WebhookObject `json:"object"`
}

// WebhookObject carries the payment details inside a provider event
type WebhookObject struct {
	ID          string            `json:"id"`
	Amount      WebhookAmount     `json:"amount"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
}

// WebhookAmount is the provider's decimal-string money representation
type WebhookAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// WebhookResponse is the acknowledgment body
type WebhookResponse struct {
	Status string `json:"status"`
}
