package entities

import (
	"fmt"
	"time"
)

// MovementAction is the closed set of recorded stock changes. The sign of a
// movement is implied by its action; quantities are always stored positive.
type MovementAction string

const (
	ActionStockIn       MovementAction = "stock_in"
	ActionSale          MovementAction = "sale"
	ActionManualRemoval MovementAction = "manual_removal"
)

func ParseMovementAction(raw string) (MovementAction, error) {
	switch action := MovementAction(raw); action {
	case ActionStockIn, ActionSale, ActionManualRemoval:
		return action, nil
	}
	return "", ValidationError{Reason: fmt.Sprintf("unknown stock action %q", raw)}
}

// IsDebit reports whether the action decreases stock.
func (a MovementAction) IsDebit() bool {
	return a == ActionSale || a == ActionManualRemoval
}

// SignedDelta maps the stored positive quantity to the delta applied to the
// stock projection.
func (a MovementAction) SignedDelta(quantity int) (int, error) {
	switch a {
	case ActionStockIn:
		return quantity, nil
	case ActionSale, ActionManualRemoval:
		return -quantity, nil
	}
	return 0, ValidationError{Reason: fmt.Sprintf("unknown stock action %q", string(a))}
}

// StockMovement is one immutable entry of the append-only ledger.
type StockMovement struct {
	ID         int64          `json:"id" db:"id"`
	ProductID  int64          `json:"product_id" db:"product_id"`
	Action     MovementAction `json:"action" db:"action"`
	Quantity   int            `json:"quantity" db:"quantity"`
	RecordedAt time.Time      `json:"recorded_at" db:"recorded_at"`
}
