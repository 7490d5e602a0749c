package request

import (
	"strings"

	"ingressos_checkout/internal/domain/entities"
)

type GuestRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf"`
	Phone string `json:"phone"`
}

// CreateCheckoutRequest is the body sent by the ticket UI.
// guest is required when the request carries no session; batch_id picks the
// ticket batch when the event sells more than one.
type CreateCheckoutRequest struct {
	EventID     string        `json:"event_id" binding:"required"`
	BatchID     string        `json:"batch_id"`
	Quantity    int           `json:"quantity" binding:"required"`
	TotalAmount float64       `json:"total_amount" binding:"required"`
	Guest       *GuestRequest `json:"guest"`
}

// ResolveBuyer returns the buyer for this request. A verified user id always
// wins over guest data sent in the body.
func (r CreateCheckoutRequest) ResolveBuyer(userID, role string) entities.Buyer {
	if id := strings.TrimSpace(userID); id != "" {
		return entities.Buyer{UserID: id, Role: role}
	}
	if r.Guest == nil {
		return entities.Buyer{}
	}
	return entities.Buyer{Guest: &entities.GuestInfo{
		Name:  strings.TrimSpace(r.Guest.Name),
		Email: strings.TrimSpace(r.Guest.Email),
		CPF:   strings.TrimSpace(r.Guest.CPF),
		Phone: strings.TrimSpace(r.Guest.Phone),
	}}
}

func (r CreateCheckoutRequest) ResolveEventID() string {
	return strings.TrimSpace(r.EventID)
}

type CreatePixRequest struct {
	PayerEmail string `json:"payer_email"`
}
