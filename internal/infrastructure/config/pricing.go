package config

import (
	"github.com/shopspring/decimal"

	"github.com/savelyko/token-ledger/internal/domain/entity"
)

// TierTable builds the domain tier table from the pricing configuration,
// preserving the declared tier order.
func (p PricingConfig) TierTable() *entity.TierTable {
	tiers := make([]entity.Tier, 0, len(p.Tiers))
	for _, t := range p.Tiers {
		tiers = append(tiers, entity.Tier{
			Low:    decimal.NewFromFloat(t.Low),
			High:   decimal.NewFromFloat(t.High),
			Tokens: t.Tokens,
			Label:  t.Label,
		})
	}
	return entity.NewTierTable(tiers, p.PurchaseMarker, p.PurchaseBonusPercent)
}
