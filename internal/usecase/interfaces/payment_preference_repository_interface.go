package interfaces

import (
	"context"
	"ingressos_checkout/internal/domain/entities"
)

// IPaymentPreferenceRepository abstracts DynamoDB persistence for PaymentPreference.
//
// Lookups return a zero value (empty ID) when the record does not exist.
// UpdateStatus only moves a pending record; it returns a zero value when the
// record is missing or already terminal.

type IPaymentPreferenceRepository interface {
	Create(ctx context.Context, p entities.PaymentPreference) (entities.PaymentPreference, error)
	GetByID(ctx context.Context, id string) (entities.PaymentPreference, error)
	ListByEventID(ctx context.Context, eventID string) ([]entities.PaymentPreference, error)
	UpdateGatewayData(ctx context.Context, id string, gw entities.GatewayPreference) (entities.PaymentPreference, error)
	UpdatePix(ctx context.Context, id string, pix entities.PixData) (entities.PaymentPreference, error)
	UpdateStatus(ctx context.Context, id string, status entities.PreferenceStatus, gatewayPaymentID string) (entities.PaymentPreference, error)
}
