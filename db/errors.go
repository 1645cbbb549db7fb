package db

import (
	"errors"
	"kirana/entities"

	"github.com/lib/pq"
)

const (
	postgresUniqueValueViolationErrorCode = "23505"
	postgresSerializationFailureErrorCode = "40001"
	postgresDeadlockDetectedErrorCode     = "40P01"
)

func isErrorUniqueViolation(err error) bool {
	var psqlErr *pq.Error
	return errors.As(err, &psqlErr) && psqlErr.Code == postgresUniqueValueViolationErrorCode
}

// isErrorTxContention matches aborts caused by two serializable transactions
// touching the same rows. The loser is safe to retry.
func isErrorTxContention(err error) bool {
	var psqlErr *pq.Error
	if !errors.As(err, &psqlErr) {
		return false
	}
	return psqlErr.Code == postgresSerializationFailureErrorCode ||
		psqlErr.Code == postgresDeadlockDetectedErrorCode
}

func wrapStorageError(op string, err error) error {
	if isErrorTxContention(err) {
		op = op + " (transaction contention, safe to retry)"
	}
	return entities.StorageError{Op: op, Err: err}
}
