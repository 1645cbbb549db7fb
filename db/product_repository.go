package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"kirana/entities"
	"kirana/message/event"
	"kirana/message/outbox"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/shopspring/decimal"
)

type IProductRepository interface {
	Register(ctx context.Context, name string, price decimal.Decimal, initialQuantity int) (int64, error)
	List(ctx context.Context) ([]entities.ProductListing, error)
}

type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) ProductRepository {
	if db == nil {
		panic("db is nil")
	}
	return ProductRepository{
		db: db,
	}
}

// Register creates the product, its stock projection and, for a non-zero
// initial quantity, the opening stock_in movement as one transaction. A
// duplicate name fails the whole registration with no partial rows left
// behind.
func (pr ProductRepository) Register(ctx context.Context, name string, price decimal.Decimal, initialQuantity int) (productID int64, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, entities.ValidationError{Reason: "product name cannot be empty"}
	}
	if price.IsNegative() {
		return 0, entities.ValidationError{Reason: "price cannot be negative"}
	}
	if initialQuantity < 0 {
		return 0, entities.ValidationError{Reason: "initial quantity cannot be negative"}
	}

	tx, err := pr.db.Conn.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable})
	if err != nil {
		return 0, wrapStorageError("begin registration transaction", err)
	}

	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = wrapStorageError("commit registration", commitErr)
		}
	}()

	now := time.Now().UTC()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO
		    products (name, price, created_at)
		VALUES
		    ($1, $2, $3)
		RETURNING id`,
		name, price, now,
	).Scan(&productID)
	if err != nil {
		if isErrorUniqueViolation(err) {
			return 0, entities.DuplicateNameError{Name: name}
		}
		return 0, wrapStorageError("insert product", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO
		    current_stock (product_id, quantity, last_updated)
		VALUES
		    ($1, $2, $3)`,
		productID, initialQuantity, now,
	)
	if err != nil {
		return 0, wrapStorageError("insert stock projection", err)
	}

	var movementID int64
	if initialQuantity > 0 {
		err = tx.QueryRowContext(ctx, `
			INSERT INTO
			    stock_movements (product_id, action, quantity, recorded_at)
			VALUES
			    ($1, $2, $3, $4)
			RETURNING id`,
			productID, entities.ActionStockIn, initialQuantity, now,
		).Scan(&movementID)
		if err != nil {
			return 0, wrapStorageError("insert opening stock movement", err)
		}
	}

	outboxPublisher, err := outbox.NewPublisherForDb(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("could not create outbox publisher: %w", err)
	}
	eventBus := event.NewBus(outboxPublisher)

	err = eventBus.Publish(ctx, entities.ProductRegistered_v1{
		Header:          entities.NewEventHeader(),
		ProductID:       productID,
		Name:            name,
		Price:           price,
		InitialQuantity: initialQuantity,
	})
	if err != nil {
		return 0, fmt.Errorf("could not publish product registered event: %w", err)
	}

	if initialQuantity > 0 {
		err = eventBus.Publish(ctx, entities.StockMovementRecorded_v1{
			Header:      entities.NewEventHeader(),
			MovementID:  movementID,
			ProductID:   productID,
			Action:      entities.ActionStockIn,
			Quantity:    initialQuantity,
			NewQuantity: initialQuantity,
		})
		if err != nil {
			return 0, fmt.Errorf("could not publish movement recorded event: %w", err)
		}
	}

	return productID, nil
}

// List returns all products ordered by id, each joined with its projected
// quantity. A product without a projection is reported as zero and logged,
// the read itself does not fail.
func (pr ProductRepository) List(ctx context.Context) ([]entities.ProductListing, error) {
	var rows []struct {
		ID       int64           `db:"id"`
		Name     string          `db:"name"`
		Price    decimal.Decimal `db:"price"`
		Quantity sql.NullInt64   `db:"quantity"`
	}
	err := pr.db.Conn.SelectContext(ctx, &rows, `
		SELECT
		    p.id, p.name, p.price, cs.quantity
		FROM
		    products p
		LEFT JOIN
		    current_stock cs ON p.id = cs.product_id
		ORDER BY
		    p.id`)
	if err != nil {
		return nil, wrapStorageError("list products", err)
	}

	listings := make([]entities.ProductListing, 0, len(rows))
	for _, row := range rows {
		if !row.Quantity.Valid {
			log.FromContext(ctx).
				WithField("product_id", row.ID).
				Warn("Product has no stock projection, reporting zero")
		}
		listings = append(listings, entities.ProductListing{
			ID:       row.ID,
			Name:     row.Name,
			Price:    row.Price,
			Quantity: int(row.Quantity.Int64),
		})
	}

	return listings, nil
}
