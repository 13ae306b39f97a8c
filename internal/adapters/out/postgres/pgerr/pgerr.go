// Package pgerr translates PostgreSQL failures into rejection reasons.
package pgerr

import (
	"errors"

	"morna/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL error codes the repositories react to.
const (
	ErrStringTooLong       = "22001" // string_data_right_truncation
	ErrNumericOutOfRange   = "22003" // numeric_value_out_of_range
	ErrForeignKeyViolation = "23503" // foreign_key_violation
	ErrUniqueViolation     = "23505" // unique_violation
	ErrSerializationFailed = "40001" // serialization_failure
	ErrDeadlockDetected    = "40P01" // deadlock_detected
	ErrLockNotAvailable    = "55P03" // lock_not_available
)

// Translate maps a store error raised while working on entity id.
//
//   - record not found becomes NOT_FOUND
//   - unique violations and lost races become CONFLICT
//   - a foreign key violation means the referenced or referencing row
//     changed, reported as INVALID_TRANSITION
//   - a value the column cannot hold is INVALID_INPUT
//   - anything else is a STORE_FAILURE
func Translate(err error, entity string, id any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundErrorWithCause(entity, id, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case ErrUniqueViolation, ErrSerializationFailed, ErrDeadlockDetected, ErrLockNotAvailable:
			conflict := errs.NewConflictError(entity, id)
			conflict.Cause = err
			return conflict
		case ErrNumericOutOfRange, ErrStringTooLong:
			param := pgErr.ColumnName
			if param == "" {
				param = entity
			}
			return errs.NewValueIsInvalidErrorWithCause(param, err)
		case ErrForeignKeyViolation:
			rejection := errs.NewInvalidTransitionError(entity, id, pgErr.Detail)
			rejection.Cause = err
			return rejection
		}
	}

	return errs.NewStoreFailureError(err)
}
