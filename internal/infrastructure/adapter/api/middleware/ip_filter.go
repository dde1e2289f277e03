package middleware

import (
	coreport "github.com/savelyko/token-ledger/internal/domain/port/core"
	"github.com/gin-gonic/gin"
)

// ProviderIPFilter is a stub gate for the payment webhook. It currently only
// records the source address; it is not a decision point.
// TODO: load the provider's published notification subnets and reject
// everything else once they are pinned in configuration.
func ProviderIPFilter(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger.Debug("Webhook source address", map[string]any{
			"ip":         c.ClientIP(),
			"request_id": c.GetString(RequestIDKey),
		})
		c.Next()
	}
}
