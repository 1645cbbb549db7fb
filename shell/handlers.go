package shell

import (
	"context"
	"fmt"

	"kirana/entities"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

func (a *App) addProduct(ctx context.Context, c *cli.Context) error {
	price, err := decimal.NewFromString(c.String("price"))
	if err != nil {
		return entities.ValidationError{Reason: "price must be a valid number"}
	}

	name := c.String("name")
	quantity := c.Int("quantity")

	productID, err := a.svc.ProductRepo.Register(ctx, name, price, quantity)
	if err != nil {
		return err
	}

	fmt.Printf("Product '%s' added with ID: %d and initial stock: %d!\n", name, productID, quantity)
	return nil
}

func (a *App) applyMovement(ctx context.Context, c *cli.Context, rawAction string) error {
	action, err := entities.ParseMovementAction(rawAction)
	if err != nil {
		return err
	}

	productID := c.Int64("product")

	newQuantity, err := a.svc.StockRepo.ApplyMovement(ctx, productID, action, c.Int("quantity"))
	if err != nil {
		return err
	}

	fmt.Printf("Stock updated successfully for Product ID %d!\n", productID)
	fmt.Printf("New stock level: %d\n", newQuantity)
	return nil
}

func (a *App) viewStock(ctx context.Context, c *cli.Context) error {
	listings, err := a.svc.ProductRepo.List(ctx)
	if err != nil {
		return err
	}

	if len(listings) == 0 {
		fmt.Println("No stock data found. Add some products first.")
		return nil
	}

	fmt.Println("Current Stock Levels:")
	printStockTable(listings)
	return nil
}

func (a *App) viewHistory(ctx context.Context, c *cli.Context) error {
	productID := c.Int64("product")

	movements, err := a.svc.StockRepo.History(ctx, productID)
	if err != nil {
		return err
	}

	if len(movements) == 0 {
		fmt.Printf("No movements recorded for Product ID %d.\n", productID)
		return nil
	}

	printHistoryTable(movements)
	return nil
}

func (a *App) verifyProjections(ctx context.Context, c *cli.Context) error {
	drifts, err := a.svc.StockRepo.CheckProjections(ctx)
	if err != nil {
		return err
	}

	if len(drifts) == 0 {
		fmt.Println("All stock projections match the movement ledger.")
		return nil
	}

	for _, drift := range drifts {
		if drift.ProjectionMissing {
			fmt.Printf("Product ID %d has no stock record; ledger says %d.\n",
				drift.ProductID, drift.LedgerQuantity)
			continue
		}
		fmt.Printf("Product ID %d projects %d but the ledger says %d.\n",
			drift.ProductID, drift.ProjectedQuantity, drift.LedgerQuantity)
	}

	return cli.Exit(fmt.Sprintf("%d product(s) drifted. Please check data integrity.", len(drifts)), 1)
}
