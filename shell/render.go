package shell

import (
	"errors"
	"fmt"
	"strings"

	"kirana/entities"

	"github.com/urfave/cli/v2"
)

func printStockTable(listings []entities.ProductListing) {
	fmt.Printf("%-5s %-20s %-13s %-10s\n", "ID", "Product", "Price", "Quantity")
	fmt.Println(strings.Repeat("-", 50))
	for _, listing := range listings {
		fmt.Printf("%-5d %-20s Rs. %-9s %-10d\n",
			listing.ID, listing.Name, listing.Price.StringFixed(2), listing.Quantity)
	}
	fmt.Println(strings.Repeat("-", 50))
}

func printHistoryTable(movements []entities.StockMovement) {
	fmt.Printf("%-5s %-16s %-10s %-20s\n", "ID", "Action", "Quantity", "Recorded at")
	fmt.Println(strings.Repeat("-", 54))
	for _, movement := range movements {
		fmt.Printf("%-5d %-16s %-10d %-20s\n",
			movement.ID, movement.Action, movement.Quantity,
			movement.RecordedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Println(strings.Repeat("-", 54))
}

// renderError maps the ledger's typed errors to the shell's user-facing
// messages. Anything untyped surfaces as-is, never swallowed.
func renderError(err error) error {
	if err == nil {
		return nil
	}

	var validationErr entities.ValidationError
	if errors.As(err, &validationErr) {
		return cli.Exit(fmt.Sprintf("Error: %s.", validationErr.Reason), 1)
	}

	var duplicateErr entities.DuplicateNameError
	if errors.As(err, &duplicateErr) {
		return cli.Exit(fmt.Sprintf("Error: Product name '%s' already exists.", duplicateErr.Name), 1)
	}

	var notFoundErr entities.NotFoundError
	if errors.As(err, &notFoundErr) {
		if notFoundErr.ProjectionMissing {
			return cli.Exit(fmt.Sprintf("Error: Product ID %d found but has no stock record. Please check data integrity.", notFoundErr.ProductID), 1)
		}
		return cli.Exit(fmt.Sprintf("Error: Product with ID %d does not exist.", notFoundErr.ProductID), 1)
	}

	var insufficientErr entities.InsufficientStockError
	if errors.As(err, &insufficientErr) {
		return cli.Exit(fmt.Sprintf("Error: Insufficient stock for Product ID %d. Available: %d, Requested: %d.",
			insufficientErr.ProductID, insufficientErr.Available, insufficientErr.Requested), 1)
	}

	var storageErr entities.StorageError
	if errors.As(err, &storageErr) {
		return cli.Exit(fmt.Sprintf("Error: The store failed during %s. No changes were saved.", storageErr.Op), 1)
	}

	return cli.Exit(err.Error(), 1)
}
