package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: uuid.NewString(),
	}
}

type ProductRegistered_v1 struct {
	Header EventHeader `json:"header"`

	ProductID       int64           `json:"product_id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	InitialQuantity int             `json:"initial_quantity"`
}

type StockMovementRecorded_v1 struct {
	Header EventHeader `json:"header"`

	MovementID  int64          `json:"movement_id"`
	ProductID   int64          `json:"product_id"`
	Action      MovementAction `json:"action"`
	Quantity    int            `json:"quantity"`
	NewQuantity int            `json:"new_quantity"`
}

// Event is the generic envelope kept in the audit archive.
type Event struct {
	EventID     string    `json:"event_id" db:"event_id"`
	PublishedAt time.Time `json:"published_at" db:"published_at"`
	EventName   string    `json:"event_name" db:"event_name"`
	Payload     any       `json:"payload"`
}
