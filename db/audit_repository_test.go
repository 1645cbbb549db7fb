package db

import (
	"context"
	"testing"
	"time"

	"kirana/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreEventIsIdempotent(t *testing.T) {
	db := getDb()
	ctx := context.Background()

	auditRepo := NewAuditRepository(&db)

	event := entities.Event{
		EventID:     uuid.NewString(),
		PublishedAt: time.Now().UTC(),
		EventName:   "StockMovementRecorded_v1",
		Payload: entities.StockMovementRecorded_v1{
			Header:      entities.NewEventHeader(),
			MovementID:  1,
			ProductID:   1,
			Action:      entities.ActionSale,
			Quantity:    3,
			NewQuantity: 7,
		},
	}

	require.NoError(t, auditRepo.Store(ctx, event))
	// redelivered outbox messages must not duplicate archive rows
	require.NoError(t, auditRepo.Store(ctx, event))

	count := 0
	err := db.Conn.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM audit_events WHERE event_id = $1`, event.EventID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
