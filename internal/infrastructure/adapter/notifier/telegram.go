package notifier

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/savelyko/token-ledger/internal/domain/entity"
	errs "github.com/savelyko/token-ledger/internal/domain/error"
	coreport "github.com/savelyko/token-ledger/internal/domain/port/core"
	"github.com/savelyko/token-ledger/internal/domain/port/notification"
)

// TelegramNotifier sends credit notifications through the Telegram Bot API.
// The HTTP client timeout bounds every send, so a slow Telegram can never
// stall a webhook response.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	logger coreport.Logger
}

// NewTelegramNotifier creates a Telegram-backed notifier. sendTimeout bounds
// each outbound API call.
func NewTelegramNotifier(token string, sendTimeout time.Duration, logger coreport.Logger) (notification.Notifier, error) {
	client := &http.Client{Timeout: sendTimeout}
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}

	logger.Info("Telegram notifier initialized", map[string]any{
		"bot_username": bot.Self.UserName,
	})

	return &TelegramNotifier{bot: bot, logger: logger}, nil
}

// NotifyCredit sends the user a message about a credited payment
func (n *TelegramNotifier) NotifyCredit(ctx context.Context, msg notification.CreditNotification) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrNotificationFailed, err.Error())
	}

	text := creditMessage(msg)
	if _, err := n.bot.Send(tgbotapi.NewMessage(msg.UserID, text)); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrNotificationFailed, err.Error())
	}

	n.logger.Debug("Credit notification sent", map[string]any{
		"user_id": msg.UserID,
		"tokens":  msg.TokensAdded,
	})
	return nil
}

func creditMessage(msg notification.CreditNotification) string {
	if msg.TierLabel == entity.LabelDirectPurchase {
		return fmt.Sprintf(
			"✅ Оплата получена!\nНачислено %d токенов.\nВаш баланс: %d токенов.",
			msg.TokensAdded, msg.NewBalance,
		)
	}
	return fmt.Sprintf(
		"✅ Оплата получена!\nНачислено %d токенов (тариф «%s»).\nВаш баланс: %d токенов.",
		msg.TokensAdded, msg.TierLabel, msg.NewBalance,
	)
}

// NoopNotifier discards every notification. Used when the Telegram channel is
// disabled in configuration.
type NoopNotifier struct{}

// NewNoopNotifier creates a notifier that does nothing
func NewNoopNotifier() notification.Notifier {
	return &NoopNotifier{}
}

// NotifyCredit discards the notification
func (n *NoopNotifier) NotifyCredit(ctx context.Context, msg notification.CreditNotification) error {
	return nil
}
