package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPricingConfig_TierTable(t *testing.T) {
	cfg := PricingConfig{
		PurchaseMarker:       "докупка токенов",
		PurchaseBonusPercent: 10,
		Tiers: []TierConfig{
			{Label: "Старт", Low: 450, High: 550, Tokens: 530},
			{Label: "Оптимальный", Low: 800, High: 900, Tokens: 1100},
		},
	}

	table := cfg.TierTable()

	t.Run("configured brackets resolve by amount", func(t *testing.T) {
		res := table.Resolve(decimal.NewFromInt(500), "оплата")
		assert.Equal(t, int64(530), res.Tokens)
		assert.Equal(t, "Старт", res.Label)
	})

	t.Run("configured marker drives direct purchases", func(t *testing.T) {
		res := table.Resolve(decimal.NewFromInt(1), "докупка токенов: 100")
		assert.Equal(t, int64(110), res.Tokens)
	})

	t.Run("declared order is preserved", func(t *testing.T) {
		res := table.Resolve(decimal.NewFromInt(890), "оплата")
		assert.Equal(t, "Оптимальный", res.Label)
	})
}
