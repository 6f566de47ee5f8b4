package ledger

import (
	"errors"

	"github.com/Mothroom/D-D-Lite/internal/repos/ledger"
	"github.com/jackc/pgx/v5/pgconn"
)

// isRetryable reports whether err is a Postgres serialization failure
// or deadlock, both of which are safe to retry as a whole transaction.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}

	return false
}

// mapConflict translates retryable Postgres failures into
// ledger.ErrConflict and leaves everything else untouched.
func mapConflict(err error) error {
	if isRetryable(err) {
		return ledger.ErrConflict
	}

	return err
}
