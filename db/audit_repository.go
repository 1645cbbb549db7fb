package db

import (
	"context"
	"encoding/json"
	"fmt"

	"kirana/entities"
)

type IAuditRepository interface {
	Store(ctx context.Context, event entities.Event) error
}

// AuditRepository archives every published domain event. Inserts are keyed by
// event id, so redelivered outbox messages are no-ops.
type AuditRepository struct {
	db *DB
}

func NewAuditRepository(db *DB) AuditRepository {
	if db == nil {
		panic("db is nil")
	}
	return AuditRepository{
		db: db,
	}
}

func (ar AuditRepository) Store(ctx context.Context, event entities.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("error marshaling event payload: %w", err)
	}

	_, err = ar.db.Conn.ExecContext(ctx, `
		INSERT INTO
		    audit_events (event_id, published_at, event_name, event_payload)
		VALUES
		    ($1, $2, $3, $4)
		ON CONFLICT (event_id) DO NOTHING`,
		event.EventID, event.PublishedAt, event.EventName, payload,
	)
	if err != nil {
		return wrapStorageError("archive event", err)
	}

	return nil
}
