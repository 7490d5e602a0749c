package interfaces

import (
	"context"
	"ingressos_checkout/internal/domain/entities"
)

// IEventRepository reads events from the backend relational store.
// Missing rows come back as zero values with a nil error.

type IEventRepository interface {
	GetByID(ctx context.Context, id string) (entities.Event, error)
	GetBatch(ctx context.Context, eventID, batchID string) (entities.TicketBatch, error)
}
