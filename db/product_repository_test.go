package db

import (
	"context"
	"testing"

	"kirana/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterProductWithInitialStock(t *testing.T) {
	db := getDb()
	ctx := context.Background()

	name := uniqueName("Sugar")
	productID := registerProduct(t, db, name, "50", 100)

	stockRepo := NewStockRepository(&db)

	quantity, err := stockRepo.CurrentStock(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 100, quantity)

	movements, err := stockRepo.History(ctx, productID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entities.ActionStockIn, movements[0].Action)
	assert.Equal(t, 100, movements[0].Quantity)
	assert.Equal(t, productID, movements[0].ProductID)
}

func TestRegisterProductZeroInitialStock(t *testing.T) {
	db := getDb()
	ctx := context.Background()

	productID := registerProduct(t, db, uniqueName("Salt"), "20", 0)

	stockRepo := NewStockRepository(&db)

	quantity, err := stockRepo.CurrentStock(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 0, quantity)

	// a zero opening balance leaves no ledger entry behind
	movements, err := stockRepo.History(ctx, productID)
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestRegisterProductValidation(t *testing.T) {
	db := getDb()
	ctx := context.Background()

	productRepo := NewProductRepository(&db)

	testCases := []struct {
		testName        string
		name            string
		price           string
		initialQuantity int
	}{
		{testName: "empty name", name: "   ", price: "50", initialQuantity: 10},
		{testName: "negative price", name: uniqueName("Rice"), price: "-1", initialQuantity: 10},
		{testName: "negative initial quantity", name: uniqueName("Rice"), price: "50", initialQuantity: -1},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			_, err := productRepo.Register(ctx, tc.name, decimal.RequireFromString(tc.price), tc.initialQuantity)

			var validationErr entities.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestRegisterProductDuplicateName(t *testing.T) {
	db := getDb()
	ctx := context.Background()

	name := uniqueName("Sugar")
	firstID := registerProduct(t, db, name, "50", 100)

	productRepo := NewProductRepository(&db)
	stockRepo := NewStockRepository(&db)

	_, err := productRepo.Register(ctx, name, decimal.RequireFromString("10"), 5)

	var duplicateErr entities.DuplicateNameError
	require.ErrorAs(t, err, &duplicateErr)
	assert.Equal(t, name, duplicateErr.Name)

	// the first registration is unaffected and no partial rows exist
	quantity, err := stockRepo.CurrentStock(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, 100, quantity)

	movements, err := stockRepo.History(ctx, firstID)
	require.NoError(t, err)
	assert.Len(t, movements, 1)

	listings, err := productRepo.List(ctx)
	require.NoError(t, err)

	occurrences := 0
	for _, listing := range listings {
		if listing.Name == name {
			occurrences++
		}
	}
	assert.Equal(t, 1, occurrences)
}

func TestListProductsOrderedByID(t *testing.T) {
	db := getDb()
	ctx := context.Background()

	firstID := registerProduct(t, db, uniqueName("Tea"), "120.50", 10)
	secondID := registerProduct(t, db, uniqueName("Coffee"), "300", 5)

	productRepo := NewProductRepository(&db)

	listings, err := productRepo.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, listings)

	for i := 1; i < len(listings); i++ {
		assert.Less(t, listings[i-1].ID, listings[i].ID)
	}

	byID := map[int64]entities.ProductListing{}
	for _, listing := range listings {
		byID[listing.ID] = listing
	}

	require.Contains(t, byID, firstID)
	require.Contains(t, byID, secondID)
	assert.Equal(t, 10, byID[firstID].Quantity)
	assert.True(t, byID[firstID].Price.Equal(decimal.RequireFromString("120.50")))
	assert.Equal(t, 5, byID[secondID].Quantity)

	// repeated read with no writes in between returns the same result
	listingsAgain, err := productRepo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, listings, listingsAgain)
}
