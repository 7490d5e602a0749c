package interfaces

import (
	"context"
	"ingressos_checkout/internal/domain/entities"
)

// IPaymentNotifier tells the back office about approved payments.
type IPaymentNotifier interface {
	NotifyApproved(ctx context.Context, p entities.PaymentPreference) error
}
