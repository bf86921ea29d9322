// Package notify delivers staff notifications.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gimnasio/gym-system/internal/core/ports"
)

// LogNotifier writes each notification to the structured log. It stands in
// for an email or push channel.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) Notify(_ context.Context, msg ports.Notification) error {
	ev := n.log.Info().
		Str("kind", string(msg.Kind)).
		Str("subject", msg.Subject).
		Str("title", msg.Title)
	if msg.Kind == ports.NotifyPasswordReset {
		// the token is a credential
		ev.Bool("token_issued", true).Msg("notification")
		return nil
	}
	ev.Str("message", msg.Message).Msg("notification")
	return nil
}
