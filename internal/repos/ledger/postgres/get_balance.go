package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Mothroom/D-D-Lite/internal/repos/ledger"
)

func (r *ledgerRepo) GetBalance(ctx context.Context, userID uint64) (int64, error) {
	var gold int64

	err := r.db.QueryRowContext(ctx, `
		SELECT gold
		FROM users
		WHERE id = $1
	`, userID).Scan(&gold)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ledger.ErrUserNotFound
		}

		return 0, fmt.Errorf("get balance: %w", err)
	}

	return gold, nil
}
