package ledger

import (
	"database/sql"
	"testing"
)

// seedUser inserts a user with gold and an inventory, returning the
// inventory id.
func seedUser(t *testing.T, db *sql.DB, userID uint64, gold int64) int64 {
	t.Helper()

	_, err := db.Exec(`INSERT INTO users (id, gold) VALUES ($1, $2)`, userID, gold)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	var invID int64

	err = db.QueryRow(`INSERT INTO inventories (user_id) VALUES ($1) RETURNING id`, userID).Scan(&invID)
	if err != nil {
		t.Fatalf("seed inventory: %v", err)
	}

	return invID
}

func seedLine(t *testing.T, db *sql.DB, inventoryID int64, name string, owned int64) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO equipment (inventory_id, name, owned) VALUES ($1, $2, $3)
	`, inventoryID, name, owned)
	if err != nil {
		t.Fatalf("seed line: %v", err)
	}
}

func getGold(t *testing.T, db *sql.DB, userID uint64) int64 {
	t.Helper()

	var gold int64

	err := db.QueryRow(`SELECT gold FROM users WHERE id = $1`, userID).Scan(&gold)
	if err != nil {
		t.Fatalf("query gold: %v", err)
	}

	return gold
}

func getOwned(t *testing.T, db *sql.DB, inventoryID int64, name string) (int64, bool) {
	t.Helper()

	var owned int64

	err := db.QueryRow(`
		SELECT owned FROM equipment WHERE inventory_id = $1 AND name = $2
	`, inventoryID, name).Scan(&owned)
	if err == sql.ErrNoRows {
		return 0, false
	}
	if err != nil {
		t.Fatalf("query owned: %v", err)
	}

	return owned, true
}
