package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Mothroom/D-D-Lite/internal/infra/pgutils"
	"github.com/Mothroom/D-D-Lite/internal/repos/ledger"
)

// ApplySell mirrors ApplyBuy: one DB transaction, user row locked
// first. The line decrement is a conditional UPDATE guarded by
// owned > 0, so the count can never go negative; zero-owned lines are
// kept, not deleted.
func (r *ledgerRepo) ApplySell(ctx context.Context, userID uint64, inventoryID int64, itemName string, price int64) (int64, error) {
	var newGold int64

	err := pgutils.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		gold, err := lockAndGetGold(tx, userID)
		if err != nil {
			return fmt.Errorf("lock user row: %w", err)
		}

		res, err := tx.Exec(`
			UPDATE equipment
			SET owned = owned - 1
			WHERE inventory_id = $1
			  AND name = $2
			  AND owned > 0
		`, inventoryID, itemName)
		if err != nil {
			return fmt.Errorf("decrement line: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}

		if affected == 0 {
			return ledger.ErrNotOwned
		}

		_, err = tx.Exec(`
			UPDATE users
			SET gold = gold + $2
			WHERE id = $1
		`, userID, price)
		if err != nil {
			return fmt.Errorf("increment gold: %w", err)
		}

		newGold = gold + price

		return nil
	})
	if err != nil {
		return 0, mapConflict(err)
	}

	return newGold, nil
}
