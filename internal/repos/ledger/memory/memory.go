// Package memory holds an in-process Ledger used by tests and local
// runs without Postgres. A single mutex guards all state, so the
// all-or-nothing and per-user serialization guarantees of the apply
// operations hold by construction.
package memory

import (
	"context"
	"sync"

	"github.com/Mothroom/D-D-Lite/internal/repos/ledger"
)

var _ ledger.Ledger = (*Store)(nil)

type lineState struct {
	id    int64
	owned int64
}

type Store struct {
	mu          sync.Mutex
	gold        map[uint64]int64
	inventories map[uint64]int64                // userID -> inventoryID
	lines       map[int64]map[string]*lineState // inventoryID -> item name
	nextID      int64

	applyFault    error
	midApplyFault error
}

func New() *Store {
	return &Store{
		gold:        make(map[uint64]int64),
		inventories: make(map[uint64]int64),
		lines:       make(map[int64]map[string]*lineState),
	}
}

// AddUser registers a user with the given starting gold and an empty
// inventory, returning the inventory id.
func (s *Store) AddUser(userID uint64, gold int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gold[userID] = gold

	s.nextID++
	s.inventories[userID] = s.nextID
	s.lines[s.nextID] = make(map[string]*lineState)

	return s.nextID
}

// AddUserWithoutInventory registers a user with gold but no inventory
// record, for exercising the inventory-missing path.
func (s *Store) AddUserWithoutInventory(userID uint64, gold int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gold[userID] = gold
}

// SetLine seeds an equipment line directly.
func (s *Store) SetLine(inventoryID int64, itemName string, owned int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.lines[inventoryID]
	if !ok {
		inv = make(map[string]*lineState)
		s.lines[inventoryID] = inv
	}

	s.nextID++
	inv[itemName] = &lineState{id: s.nextID, owned: owned}
}

// SetApplyFault makes every subsequent apply operation fail with err
// (and mutate nothing) until cleared with SetApplyFault(nil).
func (s *Store) SetApplyFault(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.applyFault = err
}

// SetMidApplyFault makes every subsequent apply operation fail with
// err after its first field mutation has been staged. The store must
// still come out clean: the staged write is undone before the error
// returns, mirroring the rollback a real transaction would do.
func (s *Store) SetMidApplyFault(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.midApplyFault = err
}

func (s *Store) GetBalance(_ context.Context, userID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gold, ok := s.gold[userID]
	if !ok {
		return 0, ledger.ErrUserNotFound
	}

	return gold, nil
}

func (s *Store) GetInventoryID(_ context.Context, userID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.inventories[userID]
	if !ok {
		return 0, ledger.ErrInventoryNotFound
	}

	return id, nil
}

func (s *Store) GetLine(_ context.Context, inventoryID int64, itemName string) (ledger.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.lines[inventoryID]
	if !ok {
		return ledger.Line{}, ledger.ErrLineNotFound
	}

	ln, ok := inv[itemName]
	if !ok {
		return ledger.Line{}, ledger.ErrLineNotFound
	}

	return ledger.Line{ID: ln.id, Owned: ln.owned}, nil
}

func (s *Store) ApplyBuy(_ context.Context, userID uint64, inventoryID int64, itemName string, price int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.applyFault != nil {
		return 0, s.applyFault
	}

	gold, ok := s.gold[userID]
	if !ok {
		return 0, ledger.ErrUserNotFound
	}

	if gold < price {
		return 0, ledger.ErrInsufficientFunds
	}

	inv, ok := s.lines[inventoryID]
	if !ok {
		return 0, ledger.ErrInventoryNotFound
	}

	// Both mutations happen under the one lock: commit together.
	s.gold[userID] = gold - price

	if s.midApplyFault != nil {
		s.gold[userID] = gold // undo the staged balance write
		return 0, s.midApplyFault
	}

	ln, ok := inv[itemName]
	if ok {
		ln.owned++
	} else {
		s.nextID++
		inv[itemName] = &lineState{id: s.nextID, owned: 1}
	}

	return gold - price, nil
}

func (s *Store) ApplySell(_ context.Context, userID uint64, inventoryID int64, itemName string, price int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.applyFault != nil {
		return 0, s.applyFault
	}

	gold, ok := s.gold[userID]
	if !ok {
		return 0, ledger.ErrUserNotFound
	}

	inv, ok := s.lines[inventoryID]
	if !ok {
		return 0, ledger.ErrInventoryNotFound
	}

	ln, ok := inv[itemName]
	if !ok || ln.owned <= 0 {
		return 0, ledger.ErrNotOwned
	}

	ln.owned--

	if s.midApplyFault != nil {
		ln.owned++ // undo the staged line write
		return 0, s.midApplyFault
	}

	s.gold[userID] = gold + price

	return gold + price, nil
}
