package entities

import "time"

// StockProjection is the derived current quantity for a product. It is kept
// consistent with the movement ledger inside the same transaction that
// appends a movement; it never goes negative.
type StockProjection struct {
	ProductID   int64     `json:"product_id" db:"product_id"`
	Quantity    int       `json:"quantity" db:"quantity"`
	LastUpdated time.Time `json:"last_updated" db:"last_updated"`
}

type StockLevel struct {
	ProductID int64 `json:"product_id" db:"product_id"`
	Quantity  int   `json:"quantity" db:"quantity"`
}
