// Package telegram notifies a chat when a decision run completes.
package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"tradecouncil/internal/state"
	"tradecouncil/pkg/errors"
	"tradecouncil/pkg/logger"
)

// Notifier pushes decision summaries to a single Telegram chat.
type Notifier struct {
	api     *tgbotapi.BotAPI
	chatID  int64
	limiter *rate.Limiter
	log     *logger.Logger
}

// NewNotifier creates the notifier. Telegram allows short bursts, so
// the limiter is generous but keeps repeated runs from flooding a chat.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	if token == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "telegram bot token is required")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrUnavailable, "telegram bot: %v", err)
	}

	return &Notifier{
		api:     api,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Limit(1), 5),
		log:     logger.Get().With("component", "telegram_notifier"),
	}, nil
}

// NotifyDecision sends a formatted summary of a finished run.
func (n *Notifier) NotifyDecision(st *state.DecisionState) error {
	if !n.limiter.Allow() {
		n.log.Warnf("decision notification for %s dropped by rate limit", st.Symbol)
		return nil
	}

	text := fmt.Sprintf(
		"*%s* — %s\nSignal: *%s*\n\n%s",
		st.Symbol,
		st.Date.Format("2006-01-02"),
		st.FinalSignal,
		truncate(st.RiskManagerDecision, 1000),
	)

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.api.Send(msg); err != nil {
		return errors.Wrapf(errors.ErrUnavailable, "send telegram notification: %v", err)
	}

	n.log.Debugf("Sent decision notification for %s", st.Symbol)
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
