package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Mothroom/D-D-Lite/internal/repos/ledger"
)

func (r *ledgerRepo) GetInventoryID(ctx context.Context, userID uint64) (int64, error) {
	var inventoryID int64

	err := r.db.QueryRowContext(ctx, `
		SELECT id
		FROM inventories
		WHERE user_id = $1
	`, userID).Scan(&inventoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ledger.ErrInventoryNotFound
		}

		return 0, fmt.Errorf("get inventory id: %w", err)
	}

	return inventoryID, nil
}
