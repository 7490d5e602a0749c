package entities

import "time"

// PreferenceStatus represents the lifecycle of a checkout attempt.
//
// A preference starts pending and moves to one terminal status through the
// gateway callback. Terminal statuses are never reverted; regeneration creates
// a new preference instead.
type PreferenceStatus string

const (
	PreferenceStatusPending   PreferenceStatus = "pending"
	PreferenceStatusApproved  PreferenceStatus = "approved"
	PreferenceStatusRejected  PreferenceStatus = "rejected"
	PreferenceStatusCancelled PreferenceStatus = "cancelled"
)

func (s PreferenceStatus) IsTerminal() bool {
	switch s {
	case PreferenceStatusApproved, PreferenceStatusRejected, PreferenceStatusCancelled:
		return true
	}
	return false
}

func (s PreferenceStatus) Valid() bool {
	return s == PreferenceStatusPending || s.IsTerminal()
}

// Environment selects which gateway credential pair is used.
type Environment string

const (
	EnvironmentTest       Environment = "test"
	EnvironmentProduction Environment = "production"
)

// GuestInfo is the buyer metadata kept when there is no authenticated user.
type GuestInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf"`
	Phone string `json:"phone,omitempty"`
}

// PixData holds the PIX charge issued for a preference.
type PixData struct {
	PaymentID    string    `json:"payment_id"`
	QRCode       string    `json:"qr_code"`
	QRCodeBase64 string    `json:"qr_code_base64,omitempty"`
	TicketURL    string    `json:"ticket_url,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
}

// PaymentPreference is one checkout attempt persisted by the checkout service.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (event_id-index): event_id
//
// TotalAmount must match UnitPrice * TicketQuantity within one cent.
type PaymentPreference struct {
	ID                  string           `json:"id"`
	EventID             string           `json:"event_id"`
	BatchID             string           `json:"batch_id,omitempty"`
	UserID              string           `json:"user_id,omitempty"`
	TicketQuantity      int              `json:"ticket_quantity"`
	UnitPrice           float64          `json:"unit_price"`
	TotalAmount         float64          `json:"total_amount"`
	Status              PreferenceStatus `json:"status"`
	Metadata            *GuestInfo       `json:"metadata,omitempty"`
	ExternalReference   string           `json:"external_reference"`
	Environment         Environment      `json:"environment"`
	GatewayPreferenceID string           `json:"gateway_preference_id,omitempty"`
	CheckoutURL         string           `json:"checkout_url,omitempty"`
	GatewayPaymentID    string           `json:"gateway_payment_id,omitempty"`
	Pix                 *PixData         `json:"pix,omitempty"`
	RegeneratedFrom     string           `json:"regenerated_from,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

func (p PaymentPreference) IsGuest() bool {
	return p.UserID == ""
}

// Buyer identifies who is paying: either an authenticated user or a guest.
type Buyer struct {
	UserID string
	Role   string
	Guest  *GuestInfo
}

func (b Buyer) IsGuest() bool {
	return b.UserID == ""
}
