package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	appconfig "ingressos_checkout/internal/config"
	"ingressos_checkout/internal/domain/entities"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestNewTelegramNotifier_RequiresConfig(t *testing.T) {
	_, err := NewTelegramNotifier(appconfig.TelegramConfig{Token: "abc"})
	assert.ErrorIs(t, err, ErrTelegramNotConfigured)
}

func TestTelegramNotifier_NotifyApproved(t *testing.T) {
	fake := &fakeSender{}
	n := &TelegramNotifier{bot: fake, chatID: 42}

	p := entities.PaymentPreference{
		ID:             "pref456",
		EventID:        "evt123",
		TicketQuantity: 2,
		TotalAmount:    100,
		Environment:    entities.EnvironmentTest,
		Metadata:       &entities.GuestInfo{Name: "Ana Lima", Email: "ana@example.com"},
	}
	require.NoError(t, n.NotifyApproved(context.Background(), p))
	require.Len(t, fake.sent, 1)

	msg, ok := fake.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Contains(t, msg.Text, "Total: R$ 100.00")
	assert.Contains(t, msg.Text, "convidado Ana Lima <ana@example.com>")
	assert.True(t, strings.HasSuffix(msg.Text, "(ambiente de teste)"))
}

func TestTelegramNotifier_SendError(t *testing.T) {
	n := &TelegramNotifier{bot: &fakeSender{err: errors.New("forbidden")}, chatID: 42}
	err := n.NotifyApproved(context.Background(), entities.PaymentPreference{ID: "pref456", UserID: "user789"})
	assert.ErrorContains(t, err, "forbidden")
}

func TestApprovedMessage_AuthenticatedBuyer(t *testing.T) {
	text := ApprovedMessage(entities.PaymentPreference{ID: "pref456", UserID: "user789", Environment: entities.EnvironmentProduction})
	assert.Contains(t, text, "Comprador: usuário user789")
	assert.NotContains(t, text, "ambiente de teste")
}
