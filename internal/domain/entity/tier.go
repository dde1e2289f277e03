package entity

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Reserved labels returned by Resolve for non-tier resolutions.
const (
	// LabelDirectPurchase marks a credit parsed from the purchase marker in
	// the payment description rather than matched against the tier table.
	LabelDirectPurchase = "direct-purchase"
	// LabelUnknown marks a payment that matched no rule. The caller must not
	// credit anything for it; it is a manual-review signal.
	LabelUnknown = "unknown"
)

// Tier is a named pricing bracket mapping a paid amount range to a token grant.
type Tier struct {
	Low    decimal.Decimal
	High   decimal.Decimal
	Tokens int64
	Label  string
}

// Contains reports whether amount falls inside the tier's inclusive range
func (t Tier) Contains(amount decimal.Decimal) bool {
	return amount.Cmp(t.Low) >= 0 && amount.Cmp(t.High) <= 0
}

// TierTable resolves a paid amount and free-text description into a token
// grant. It is built once from configuration and consulted read-only, so it
// is safe for concurrent use.
type TierTable struct {
	tiers          []Tier
	purchaseMarker string
	bonusPercent   int64
}

// Resolution is the outcome of resolving a payment against the tier table
type Resolution struct {
	Tokens int64
	Label  string
}

// Matched reports whether any rule resolved the payment
func (r Resolution) Matched() bool {
	return r.Label != LabelUnknown
}

// NewTierTable creates a tier table. Tier order matters: the first matching
// tier wins, and ranges may overlap.
func NewTierTable(tiers []Tier, purchaseMarker string, bonusPercent int64) *TierTable {
	return &TierTable{
		tiers:          tiers,
		purchaseMarker: strings.ToLower(purchaseMarker),
		bonusPercent:   bonusPercent,
	}
}

// Resolve maps a paid amount and description to a token grant. Pure and
// deterministic; rules are tried in order and the first hit wins:
//  1. direct token purchase encoded in the description ("<marker>: <n>")
//  2. first tier whose amount range contains the paid amount
//  3. first tier whose label appears in the description
//  4. zero tokens with LabelUnknown
func (t *TierTable) Resolve(amount decimal.Decimal, description string) Resolution {
	if tokens, ok := t.parseDirectPurchase(description); ok {
		return Resolution{Tokens: tokens, Label: LabelDirectPurchase}
	}

	for _, tier := range t.tiers {
		if tier.Contains(amount) {
			return Resolution{Tokens: tier.Tokens, Label: tier.Label}
		}
	}

	lowered := strings.ToLower(description)
	for _, tier := range t.tiers {
		if strings.Contains(lowered, strings.ToLower(tier.Label)) {
			return Resolution{Tokens: tier.Tokens, Label: tier.Label}
		}
	}

	return Resolution{Tokens: 0, Label: LabelUnknown}
}

// parseDirectPurchase extracts an explicit token count from descriptions of
// the form "<marker>: <integer>". A malformed payload after the marker is not
// an error; the caller falls through to range matching.
func (t *TierTable) parseDirectPurchase(description string) (int64, bool) {
	if t.purchaseMarker == "" {
		return 0, false
	}

	idx := strings.Index(strings.ToLower(description), t.purchaseMarker)
	if idx < 0 {
		return 0, false
	}

	rest := strings.TrimLeftFunc(description[idx+len(t.purchaseMarker):], unicode.IsSpace)
	if !strings.HasPrefix(rest, ":") {
		return 0, false
	}
	rest = strings.TrimSpace(rest[1:])

	digits := leadingDigits(rest)
	if digits == "" {
		return 0, false
	}

	tokens, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}

	// Fixed purchase bonus, truncating toward zero.
	return tokens * (100 + t.bonusPercent) / 100, true
}

func leadingDigits(s string) string {
	for i, r := range s {
		if r < '0' || r > '9' {
			return s[:i]
		}
	}
	return s
}
