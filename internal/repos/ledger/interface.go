package ledger

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInventoryNotFound = errors.New("inventory not found")
	ErrLineNotFound      = errors.New("equipment line not found")
	ErrInsufficientFunds = errors.New("insufficient gold")
	ErrNotOwned          = errors.New("item not owned")
	// ErrConflict signals storage-level contention (serialization
	// failure or deadlock). Callers may retry the whole transaction.
	ErrConflict = errors.New("storage conflict")
)

// Line is one inventory line: how many units of a named equipment kind
// an inventory holds. Owned may be zero; zero lines are never pruned.
type Line struct {
	ID    int64
	Owned int64
}

// Ledger is durable storage for gold balances and inventory lines.
//
// ApplyBuy and ApplySell are all-or-nothing: the balance mutation and
// the line mutation commit together or not at all, and concurrent
// applies for the same user serialize against each other.
type Ledger interface {
	GetBalance(ctx context.Context, userID uint64) (int64, error)
	GetInventoryID(ctx context.Context, userID uint64) (int64, error)
	GetLine(ctx context.Context, inventoryID int64, itemName string) (Line, error)

	// ApplyBuy decrements gold by price and upserts the line (+1, or
	// created at 1). Returns the new balance. Fails with
	// ErrInsufficientFunds without any mutation when gold < price.
	ApplyBuy(ctx context.Context, userID uint64, inventoryID int64, itemName string, price int64) (int64, error)

	// ApplySell increments gold by price and decrements the line.
	// Returns the new balance. Fails with ErrNotOwned without any
	// mutation when no line exists or owned is already zero.
	ApplySell(ctx context.Context, userID uint64, inventoryID int64, itemName string, price int64) (int64, error)
}
