package entities

import "fmt"

// ValidationError rejects malformed input before any write happens.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return "invalid input: " + e.Reason
}

type DuplicateNameError struct {
	Name string
}

func (e DuplicateNameError) Error() string {
	return fmt.Sprintf("product name %q already exists", e.Name)
}

// NotFoundError covers two cases: the product was never registered, or the
// product row exists but its stock projection is gone. The second one is a
// data-integrity fault and is reported as such instead of a plain not-found.
type NotFoundError struct {
	ProductID         int64
	ProjectionMissing bool
}

func (e NotFoundError) Error() string {
	if e.ProjectionMissing {
		return fmt.Sprintf("product %d exists but has no stock record, check data integrity", e.ProductID)
	}
	return fmt.Sprintf("product %d does not exist", e.ProductID)
}

type InsufficientStockError struct {
	ProductID int64
	Available int
	Requested int
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: available %d, requested %d", e.ProductID, e.Available, e.Requested)
}

// StorageError wraps a failure of the underlying store. The in-flight
// operation is rolled back before it is returned.
type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e StorageError) Unwrap() error {
	return e.Err
}
