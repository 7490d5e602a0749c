package interfaces

import (
	"context"
	"ingressos_checkout/internal/domain/entities"
)

// IPreferenceStatusCache keeps short-lived copies of preferences for the
// status endpoint polled by the browser. A miss returns ok=false.
type IPreferenceStatusCache interface {
	Get(ctx context.Context, id string) (p entities.PaymentPreference, ok bool, err error)
	Set(ctx context.Context, p entities.PaymentPreference) error
	Invalidate(ctx context.Context, id string) error
}

// IWebhookDeduplicator guards against processing the same notification twice.
type IWebhookDeduplicator interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
