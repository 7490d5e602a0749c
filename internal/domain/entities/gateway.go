package entities

import "time"

// PreferencePayload is the gateway-agnostic request built for one checkout.
//
// Payer is nil for authenticated buyers: the gateway schema changes when the
// block is present, so it is omitted rather than sent empty.
type PreferencePayload struct {
	ExternalReference string
	Items             []PreferenceItem
	BackURLs          BackURLs
	AutoReturn        string
	NotificationURL   string
	Payer             *PreferencePayer
	Metadata          map[string]any
}

type PreferenceItem struct {
	ID         string
	Title      string
	Quantity   int
	CurrencyID string
	UnitPrice  float64
}

type BackURLs struct {
	Success string
	Failure string
	Pending string
}

type PreferencePayer struct {
	Name           string
	Surname        string
	Email          string
	DocumentType   string
	DocumentNumber string
	PhoneAreaCode  string
	PhoneNumber    string
}

// GatewayPreference is what the gateway answers for a created preference.
type GatewayPreference struct {
	ID               string
	InitPoint        string
	SandboxInitPoint string
	CheckoutURL      string
}

// PixPayload requests a PIX charge for an existing preference.
type PixPayload struct {
	ExternalReference string
	Description       string
	Amount            float64
	PayerEmail        string
	PayerFirstName    string
	PayerCPF          string
	NotificationURL   string
	ExpiresAt         time.Time
}

type PixCharge struct {
	PaymentID    string
	Status       string
	QRCode       string
	QRCodeBase64 string
	TicketURL    string
}

// GatewayPayment is the gateway view of a payment, read by the reconciler.
type GatewayPayment struct {
	ID                string
	Status            string
	StatusDetail      string
	ExternalReference string
	TransactionAmount float64
}

// GatewayNotification is the webhook body sent by the gateway.
type GatewayNotification struct {
	ID        string
	Type      string
	Action    string
	DataID    string
	LiveMode  bool
	RequestID string
}

// Key identifies the notification for deduplication.
func (n GatewayNotification) Key() string {
	if n.ID != "" {
		return n.Type + ":" + n.ID
	}
	return n.Type + ":" + n.DataID + ":" + n.Action
}
