package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/savelyko/token-ledger/internal/domain/entity"
	coreport "github.com/savelyko/token-ledger/internal/domain/port/core"
	"github.com/savelyko/token-ledger/internal/domain/port/usecase"
	"github.com/savelyko/token-ledger/internal/infrastructure/adapter/api/dto"
)

// WebhookHandler turns inbound provider events into credit pipeline calls.
// It is a classifier with short-circuit gates: each gate maps to a distinct
// outcome so operators can tell "ignored" from "malformed" from "missing
// data". Every path acknowledges with HTTP 200 — a non-2xx response would
// make the provider redeliver the event; duplicate suppression lives in the
// pipeline instead.
type WebhookHandler struct {
	creditUseCase usecase.CreditUseCase
	logger        coreport.Logger
}

// NewWebhookHandler creates a new webhook handler instance
func NewWebhookHandler(creditUseCase usecase.CreditUseCase, logger coreport.Logger) *WebhookHandler {
	return &WebhookHandler{
		creditUseCase: creditUseCase,
		logger:        logger,
	}
}

// HandlePayment handles the POST /payment-webhook endpoint
func (h *WebhookHandler) HandlePayment(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Webhook body not parseable", map[string]any{
			"error": err.Error(),
		})
		h.acknowledge(c, dto.OutcomeParseError)
		return
	}

	if req.Event != dto.EventPaymentSucceeded {
		h.logger.Info("Ignoring webhook event", map[string]any{
			"event": req.Event,
		})
		h.acknowledge(c, dto.OutcomeIgnored)
		return
	}

	amount, err := decimal.NewFromString(req.Object.Amount.Value)
	if err != nil {
		h.logger.Warn("Webhook amount not parseable", map[string]any{
			"payment_id": req.Object.ID,
			"amount":     req.Object.Amount.Value,
		})
		h.acknowledge(c, dto.OutcomeParseError)
		return
	}

	rawUserID, ok := req.Object.Metadata["telegram_id"]
	if !ok || rawUserID == "" {
		// Never credit without a positive identification of the recipient.
		h.logger.Warn("Webhook event has no telegram_id, funds not credited", map[string]any{
			"payment_id":  req.Object.ID,
			"amount":      req.Object.Amount.Value,
			"description": req.Object.Description,
		})
		h.acknowledge(c, dto.OutcomeNoUserID)
		return
	}

	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil || userID <= 0 {
		h.logger.Warn("Webhook event has malformed telegram_id", map[string]any{
			"payment_id":  req.Object.ID,
			"telegram_id": rawUserID,
		})
		h.acknowledge(c, dto.OutcomeBadUserID)
		return
	}

	outcome, err := h.creditUseCase.ApplyPayment(c.Request.Context(), entity.PaymentEvent{
		PaymentID:   req.Object.ID,
		UserID:      userID,
		Amount:      amount,
		Description: req.Object.Description,
	})
	if err != nil {
		// The credit failed internally; the event is still acknowledged so
		// the provider does not hammer us with retries. The failure is
		// visible in monitoring through this log line.
		h.logger.Error("Failed to apply payment", map[string]any{
			"payment_id": req.Object.ID,
			"user_id":    userID,
			"error":      err.Error(),
		})
		h.acknowledge(c, dto.OutcomeOK)
		return
	}

	h.logger.Info("Webhook processed", map[string]any{
		"payment_id":   req.Object.ID,
		"user_id":      userID,
		"credited":     outcome.Credited,
		"duplicate":    outcome.Duplicate,
		"tokens_added": outcome.TokensAdded,
		"tier":         outcome.TierLabel,
	})
	h.acknowledge(c, dto.OutcomeOK)
}

func (h *WebhookHandler) acknowledge(c *gin.Context, outcome string) {
	c.JSON(http.StatusOK, dto.WebhookResponse{Status: outcome})
}
