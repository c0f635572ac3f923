package database

import (
	"errors"

	"github.com/lib/pq"

	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

const uniqueViolation = "23505"

// wrapWriteError converts driver errors from insert/update statements into
// the application taxonomy. Unique-index violations become Conflict errors
// with the supplied message so both storage backends signal duplicates the
// same way.
func wrapWriteError(err error, conflictMessage, internalMessage string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return apperrors.NewConflictError(conflictMessage)
	}
	return apperrors.NewInternalError(internalMessage, err)
}
