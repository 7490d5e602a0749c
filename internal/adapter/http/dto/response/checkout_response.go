package response

import (
	"time"

	"ingressos_checkout/internal/domain/entities"
	"ingressos_checkout/internal/pix"
	"ingressos_checkout/internal/usecase"
)

type CheckoutResponse struct {
	CheckoutURL         string `json:"checkout_url"`
	PreferenceID        string `json:"preference_id"`
	ExternalReference   string `json:"external_reference"`
	GatewayPreferenceID string `json:"gateway_preference_id"`
	Environment         string `json:"environment"`
}

func FromCheckoutResult(r usecase.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{
		CheckoutURL:         r.CheckoutURL,
		PreferenceID:        r.PreferenceID,
		ExternalReference:   r.ExternalReference,
		GatewayPreferenceID: r.GatewayPreferenceID,
		Environment:         string(r.Environment),
	}
}

type PixResponse struct {
	PaymentID       string     `json:"payment_id"`
	QRCode          string     `json:"qr_code"`
	QRCodeBase64    string     `json:"qr_code_base64,omitempty"`
	TicketURL       string     `json:"ticket_url,omitempty"`
	BeneficiaryName string     `json:"beneficiary_name"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
}

// PreferenceStatusResponse is what the client poller reads.
type PreferenceStatusResponse struct {
	ID                string       `json:"id"`
	EventID           string       `json:"event_id"`
	BatchID           string       `json:"batch_id,omitempty"`
	Status            string       `json:"status"`
	TicketQuantity    int          `json:"ticket_quantity"`
	TotalAmount       float64      `json:"total_amount"`
	ExternalReference string       `json:"external_reference"`
	Environment       string       `json:"environment"`
	CheckoutURL       string       `json:"checkout_url,omitempty"`
	Guest             bool         `json:"guest"`
	RegeneratedFrom   string       `json:"regenerated_from,omitempty"`
	Pix               *PixResponse `json:"pix,omitempty"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

func FromPaymentPreference(p entities.PaymentPreference) PreferenceStatusResponse {
	res := PreferenceStatusResponse{
		ID:                p.ID,
		EventID:           p.EventID,
		BatchID:           p.BatchID,
		Status:            string(p.Status),
		TicketQuantity:    p.TicketQuantity,
		TotalAmount:       p.TotalAmount,
		ExternalReference: p.ExternalReference,
		Environment:       string(p.Environment),
		CheckoutURL:       p.CheckoutURL,
		Guest:             p.IsGuest(),
		RegeneratedFrom:   p.RegeneratedFrom,
		UpdatedAt:         p.UpdatedAt,
	}
	if p.Pix != nil && p.Pix.QRCode != "" {
		res.Pix = &PixResponse{
			PaymentID:       p.Pix.PaymentID,
			QRCode:          p.Pix.QRCode,
			QRCodeBase64:    p.Pix.QRCodeBase64,
			TicketURL:       p.Pix.TicketURL,
			BeneficiaryName: pix.BeneficiaryName(p.Pix.QRCode),
		}
		if !p.Pix.ExpiresAt.IsZero() {
			exp := p.Pix.ExpiresAt
			res.Pix.ExpiresAt = &exp
		}
	}
	return res
}

func FromPaymentPreferences(list []entities.PaymentPreference) []PreferenceStatusResponse {
	out := make([]PreferenceStatusResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromPaymentPreference(p))
	}
	return out
}
