package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"kirana/entities"
	"kirana/message/event"
	"kirana/message/outbox"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

type IStockRepository interface {
	ApplyMovement(ctx context.Context, productID int64, action entities.MovementAction, quantity int) (int, error)
	CurrentStock(ctx context.Context, productID int64) (int, error)
	CurrentStockAll(ctx context.Context) ([]entities.StockLevel, error)
	History(ctx context.Context, productID int64) ([]entities.StockMovement, error)
}

type StockRepository struct {
	db *DB
}

func NewStockRepository(db *DB) StockRepository {
	if db == nil {
		panic("db is nil")
	}
	return StockRepository{
		db: db,
	}
}

// ApplyMovement appends one ledger entry and moves the projection by the
// action's signed delta, both inside a serializable transaction. A debit that
// exceeds the projected quantity is rejected before anything is written.
func (sr StockRepository) ApplyMovement(ctx context.Context, productID int64, action entities.MovementAction, quantity int) (newQuantity int, err error) {
	if quantity <= 0 {
		return 0, entities.ValidationError{Reason: "quantity must be a positive number"}
	}
	delta, err := action.SignedDelta(quantity)
	if err != nil {
		return 0, err
	}

	tx, err := sr.db.Conn.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable})
	if err != nil {
		return 0, wrapStorageError("begin movement transaction", err)
	}

	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = wrapStorageError("commit stock movement", commitErr)
		}
	}()

	currentQuantity := 0
	err = tx.GetContext(ctx, &currentQuantity, `
		SELECT
		    quantity
		FROM
		    current_stock
		WHERE
		    product_id = $1`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, sr.resolveMissingProjection(ctx, productID)
	}
	if err != nil {
		return 0, wrapStorageError("read stock projection", err)
	}

	if action.IsDebit() && quantity > currentQuantity {
		err = entities.InsufficientStockError{
			ProductID: productID,
			Available: currentQuantity,
			Requested: quantity,
		}
		return 0, err
	}

	newQuantity = currentQuantity + delta
	now := time.Now().UTC()

	var movementID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO
		    stock_movements (product_id, action, quantity, recorded_at)
		VALUES
		    ($1, $2, $3, $4)
		RETURNING id`,
		productID, action, quantity, now,
	).Scan(&movementID)
	if err != nil {
		return 0, wrapStorageError("insert stock movement", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE
		    current_stock
		SET
		    quantity = quantity + $1, last_updated = $2
		WHERE
		    product_id = $3`,
		delta, now, productID,
	)
	if err != nil {
		return 0, wrapStorageError("update stock projection", err)
	}

	outboxPublisher, err := outbox.NewPublisherForDb(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("could not create outbox publisher: %w", err)
	}
	err = event.NewBus(outboxPublisher).Publish(ctx, entities.StockMovementRecorded_v1{
		Header:      entities.NewEventHeader(),
		MovementID:  movementID,
		ProductID:   productID,
		Action:      action,
		Quantity:    quantity,
		NewQuantity: newQuantity,
	})
	if err != nil {
		return 0, fmt.Errorf("could not publish movement recorded event: %w", err)
	}

	return newQuantity, nil
}

// CurrentStock is the authoritative read of a product's projected quantity.
func (sr StockRepository) CurrentStock(ctx context.Context, productID int64) (int, error) {
	quantity := 0
	err := sr.db.Conn.GetContext(ctx, &quantity, `
		SELECT
		    quantity
		FROM
		    current_stock
		WHERE
		    product_id = $1`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, sr.resolveMissingProjection(ctx, productID)
	}
	if err != nil {
		return 0, wrapStorageError("read stock projection", err)
	}

	return quantity, nil
}

func (sr StockRepository) CurrentStockAll(ctx context.Context) ([]entities.StockLevel, error) {
	var levels []entities.StockLevel
	err := sr.db.Conn.SelectContext(ctx, &levels, `
		SELECT
		    product_id, quantity
		FROM
		    current_stock
		ORDER BY
		    product_id`)
	if err != nil {
		return nil, wrapStorageError("list stock levels", err)
	}

	return levels, nil
}

// History returns the full movement ledger of one product, oldest first.
func (sr StockRepository) History(ctx context.Context, productID int64) ([]entities.StockMovement, error) {
	var movements []entities.StockMovement
	err := sr.db.Conn.SelectContext(ctx, &movements, `
		SELECT
		    id, product_id, action, quantity, recorded_at
		FROM
		    stock_movements
		WHERE
		    product_id = $1
		ORDER BY
		    id`, productID)
	if err != nil {
		return nil, wrapStorageError("read movement history", err)
	}

	if len(movements) == 0 {
		var productExists bool
		err = sr.db.Conn.GetContext(ctx, &productExists, `
			SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID)
		if err != nil {
			return nil, wrapStorageError("check product existence", err)
		}
		if !productExists {
			return nil, entities.NotFoundError{ProductID: productID}
		}
	}

	return movements, nil
}

// resolveMissingProjection tells apart a product that was never registered
// from one whose projection row is gone. The second case breaks the
// one-projection-per-product invariant and is logged loudly before the typed
// error is returned; no auto-repair is attempted.
func (sr StockRepository) resolveMissingProjection(ctx context.Context, productID int64) error {
	var productExists bool
	err := sr.db.Conn.GetContext(ctx, &productExists, `
		SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID)
	if err != nil {
		return wrapStorageError("check product existence", err)
	}

	if productExists {
		log.FromContext(ctx).
			WithField("product_id", productID).
			Error("Product exists but its stock projection is missing")
		return entities.NotFoundError{ProductID: productID, ProjectionMissing: true}
	}

	return entities.NotFoundError{ProductID: productID}
}
