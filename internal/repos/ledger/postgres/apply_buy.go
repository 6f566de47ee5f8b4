package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Mothroom/D-D-Lite/internal/infra/pgutils"
	"github.com/Mothroom/D-D-Lite/internal/repos/ledger"
)

// ApplyBuy runs the whole buy effect in a single DB transaction:
//
// 1) Lock the user row (FOR UPDATE) and read gold.
// 2) Verify funds against the locked balance.
// 3) Decrement gold.
// 4) Upsert the equipment line (+1, or created at owned = 1).
//
// The row lock is the per-user serialization point: concurrent buys
// and sells for one user queue on it, so no update is ever lost.
func (r *ledgerRepo) ApplyBuy(ctx context.Context, userID uint64, inventoryID int64, itemName string, price int64) (int64, error) {
	var newGold int64

	err := pgutils.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		gold, err := lockAndGetGold(tx, userID)
		if err != nil {
			return fmt.Errorf("lock user row: %w", err)
		}

		if gold < price {
			return ledger.ErrInsufficientFunds
		}

		_, err = tx.Exec(`
			UPDATE users
			SET gold = gold - $2
			WHERE id = $1
		`, userID, price)
		if err != nil {
			return fmt.Errorf("decrement gold: %w", err)
		}

		_, err = tx.Exec(`
			INSERT INTO equipment (inventory_id, name, owned)
			VALUES ($1, $2, 1)
			ON CONFLICT (inventory_id, name)
			DO UPDATE SET owned = equipment.owned + 1
		`, inventoryID, itemName)
		if err != nil {
			return fmt.Errorf("upsert line: %w", err)
		}

		newGold = gold - price

		return nil
	})
	if err != nil {
		return 0, mapConflict(err)
	}

	return newGold, nil
}

func lockAndGetGold(tx *sql.Tx, userID uint64) (int64, error) {
	var gold int64

	err := tx.QueryRow(`
		SELECT gold
		FROM users
		WHERE id = $1
		FOR UPDATE
	`, userID).Scan(&gold)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ledger.ErrUserNotFound
		}

		return 0, fmt.Errorf("lock/get gold: %w", err)
	}

	return gold, nil
}
