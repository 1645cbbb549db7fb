package db

import (
	"context"
	"os"
	"sync"
	"testing"

	"kirana/entities"
	"kirana/message/outbox"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jmoiron/sqlx"
	"github.com/lithammer/shortuuid/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testConn *sqlx.DB
var getDbOnce sync.Once

func getDb() DB {
	getDbOnce.Do(func() {
		var err error
		testConn, err = sqlx.Open("postgres", os.Getenv("POSTGRES_URL"))
		if err != nil {
			panic(err)
		}

		db := DB{Conn: testConn}
		db.MigrateSchema()

		if err := outbox.InitializeTopic(testConn, watermill.NopLogger{}); err != nil {
			panic(err)
		}
	})
	return DB{Conn: testConn}
}

// uniqueName keeps test runs independent of leftover rows in the database.
func uniqueName(prefix string) string {
	return prefix + "-" + shortuuid.New()
}

func registerProduct(t *testing.T, db DB, name string, price string, initialQuantity int) int64 {
	t.Helper()

	productRepo := NewProductRepository(&db)
	productID, err := productRepo.Register(context.Background(), name, decimal.RequireFromString(price), initialQuantity)
	require.NoError(t, err)
	require.Greater(t, productID, int64(0))

	return productID
}

func sumSignedDeltas(t *testing.T, movements []entities.StockMovement) int {
	t.Helper()

	total := 0
	for _, movement := range movements {
		delta, err := movement.Action.SignedDelta(movement.Quantity)
		require.NoError(t, err)
		total += delta
	}
	return total
}
