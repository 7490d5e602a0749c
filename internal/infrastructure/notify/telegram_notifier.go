package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	appconfig "ingressos_checkout/internal/config"
	"ingressos_checkout/internal/domain/entities"
	"ingressos_checkout/internal/usecase/interfaces"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var ErrTelegramNotConfigured = errors.New("telegram notifier not configured")

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts approved payments to the admin chat.
type TelegramNotifier struct {
	bot    sender
	chatID int64
}

var _ interfaces.IPaymentNotifier = (*TelegramNotifier)(nil)

func NewTelegramNotifier(cfg appconfig.TelegramConfig) (*TelegramNotifier, error) {
	if cfg.Token == "" || cfg.AdminChatID == 0 {
		return nil, ErrTelegramNotConfigured
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	log.Printf("[checkout][notify] telegram bot authorized account=%s", bot.Self.UserName)
	return &TelegramNotifier{bot: bot, chatID: cfg.AdminChatID}, nil
}

func (n *TelegramNotifier) NotifyApproved(_ context.Context, p entities.PaymentPreference) error {
	msg := tgbotapi.NewMessage(n.chatID, ApprovedMessage(p))
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func ApprovedMessage(p entities.PaymentPreference) string {
	buyer := "usuário " + p.UserID
	if p.IsGuest() {
		buyer = "convidado"
		if p.Metadata != nil {
			buyer = fmt.Sprintf("convidado %s <%s>", p.Metadata.Name, p.Metadata.Email)
		}
	}

	var b strings.Builder
	b.WriteString("Pagamento aprovado\n")
	fmt.Fprintf(&b, "Evento: %s\n", p.EventID)
	fmt.Fprintf(&b, "Ingressos: %d\n", p.TicketQuantity)
	fmt.Fprintf(&b, "Total: R$ %.2f\n", p.TotalAmount)
	fmt.Fprintf(&b, "Comprador: %s\n", buyer)
	fmt.Fprintf(&b, "Preferência: %s", p.ID)
	if p.Environment == entities.EnvironmentTest {
		b.WriteString("\n(ambiente de teste)")
	}
	return b.String()
}
