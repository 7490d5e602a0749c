package repository

import (
	"context"
	"database/sql"
	"errors"

	"ingressos_checkout/internal/domain/entities"
	"ingressos_checkout/internal/usecase/interfaces"
)

// The price is the cheapest active batch; events without batches report 0.
const selectEventByID = `
	SELECT e.id,
	       e.title,
	       COALESCE(e.is_active, false),
	       COALESCE((
	           SELECT b.price
	           FROM ticket_batches b
	           WHERE b.event_id = e.id AND b.is_active
	           ORDER BY b.price ASC
	           LIMIT 1
	       ), 0),
	       (
	           SELECT COUNT(*)
	           FROM ticket_batches b
	           WHERE b.event_id = e.id AND b.is_active
	       )
	FROM events e
	WHERE e.id = $1
`

const selectBatchByID = `
	SELECT b.id,
	       b.event_id,
	       b.name,
	       COALESCE(b.price, 0),
	       COALESCE(b.is_active, false)
	FROM ticket_batches b
	WHERE b.id = $1 AND b.event_id = $2
`

type rowScanner interface {
	Scan(dest ...any) error
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) rowScanner
}

type sqlQuerier struct {
	db *sql.DB
}

func (q sqlQuerier) QueryRowContext(ctx context.Context, query string, args ...any) rowScanner {
	return q.db.QueryRowContext(ctx, query, args...)
}

// EventPostgresRepository reads events from the backend's relational tables.
// It never writes: events are owned by the ticketing backend.

type EventPostgresRepository struct {
	db rowQuerier
}

var _ interfaces.IEventRepository = (*EventPostgresRepository)(nil)

func NewEventPostgresRepository(db *sql.DB) *EventPostgresRepository {
	return &EventPostgresRepository{db: sqlQuerier{db: db}}
}

func (r *EventPostgresRepository) GetByID(ctx context.Context, id string) (entities.Event, error) {
	var (
		ev      entities.Event
		title   sql.NullString
		batches int64
	)
	err := r.db.QueryRowContext(ctx, selectEventByID, id).Scan(&ev.ID, &title, &ev.Active, &ev.TicketPrice, &batches)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.Event{}, nil
		}
		return entities.Event{}, err
	}
	ev.Title = title.String
	ev.ActiveBatches = int(batches)
	return ev, nil
}

func (r *EventPostgresRepository) GetBatch(ctx context.Context, eventID, batchID string) (entities.TicketBatch, error) {
	var (
		b    entities.TicketBatch
		name sql.NullString
	)
	err := r.db.QueryRowContext(ctx, selectBatchByID, batchID, eventID).Scan(&b.ID, &b.EventID, &name, &b.Price, &b.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.TicketBatch{}, nil
		}
		return entities.TicketBatch{}, err
	}
	b.Name = name.String
	return b, nil
}
