package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Mothroom/D-D-Lite/internal/repos/ledger"
)

func (r *ledgerRepo) GetLine(ctx context.Context, inventoryID int64, itemName string) (ledger.Line, error) {
	var line ledger.Line

	err := r.db.QueryRowContext(ctx, `
		SELECT id, owned
		FROM equipment
		WHERE inventory_id = $1
		  AND name = $2
	`, inventoryID, itemName).Scan(&line.ID, &line.Owned)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.Line{}, ledger.ErrLineNotFound
		}

		return ledger.Line{}, fmt.Errorf("get line: %w", err)
	}

	return line, nil
}
