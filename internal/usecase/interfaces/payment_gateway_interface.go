package interfaces

import (
	"context"
	"ingressos_checkout/internal/domain/entities"
)

// IPaymentGateway abstracts the external payment provider (Mercado Pago).
//
// Implementations are bound to one environment at construction and never
// retry on their own: resubmitting the same payload would create a duplicate
// preference on the provider side.
type IPaymentGateway interface {
	Environment() entities.Environment
	CreatePreference(ctx context.Context, payload entities.PreferencePayload) (entities.GatewayPreference, error)
	CreatePixPayment(ctx context.Context, payload entities.PixPayload) (entities.PixCharge, error)
	GetPayment(ctx context.Context, paymentID string) (entities.GatewayPayment, error)
}
