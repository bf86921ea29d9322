package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gimnasio/gym-system/internal/core/ports"
)

func TestLogNotifier_WritesMessage(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))

	err := n.Notify(context.Background(), ports.Notification{
		Kind:    ports.NotifySocioWelcome,
		Subject: "socio-1",
		Message: "¡Bienvenido Ana!",
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message":"¡Bienvenido Ana!"`)
	assert.Contains(t, buf.String(), `"component":"notifier"`)
}

func TestLogNotifier_HidesResetToken(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))

	err := n.Notify(context.Background(), ports.Notification{
		Kind:    ports.NotifyPasswordReset,
		Subject: "ana@gym.mx",
		Message: "secret-token",
	})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "secret-token")
	assert.Contains(t, buf.String(), `"token_issued":true`)
}
