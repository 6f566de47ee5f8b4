package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Mothroom/D-D-Lite/internal/repos/ledger"
)

func TestStore_ApplyBuy_CreatesAndStacksLine(t *testing.T) {
	t.Parallel()

	s := New()
	invID := s.AddUser(1, 120)
	ctx := context.Background()

	newGold, err := s.ApplyBuy(ctx, 1, invID, "Sword", 50)
	if err != nil {
		t.Fatalf("first buy: %v", err)
	}
	if newGold != 70 {
		t.Fatalf("gold after first buy: want 70, got %d", newGold)
	}

	newGold, err = s.ApplyBuy(ctx, 1, invID, "Sword", 50)
	if err != nil {
		t.Fatalf("second buy: %v", err)
	}
	if newGold != 20 {
		t.Fatalf("gold after second buy: want 20, got %d", newGold)
	}

	line, err := s.GetLine(ctx, invID, "Sword")
	if err != nil {
		t.Fatalf("get line: %v", err)
	}
	if line.Owned != 2 {
		t.Fatalf("owned: want 2, got %d", line.Owned)
	}
}

func TestStore_ApplyBuy_InsufficientFundsLeavesStateAlone(t *testing.T) {
	t.Parallel()

	s := New()
	invID := s.AddUser(1, 30)
	ctx := context.Background()

	_, err := s.ApplyBuy(ctx, 1, invID, "Sword", 50)
	if !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}

	gold, err := s.GetBalance(ctx, 1)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if gold != 30 {
		t.Fatalf("gold: want 30, got %d", gold)
	}

	_, err = s.GetLine(ctx, invID, "Sword")
	if !errors.Is(err, ledger.ErrLineNotFound) {
		t.Fatalf("want ErrLineNotFound, got %v", err)
	}
}

func TestStore_ApplySell_GuardsOwnedCount(t *testing.T) {
	t.Parallel()

	s := New()
	invID := s.AddUser(1, 0)
	s.SetLine(invID, "Sword", 1)
	ctx := context.Background()

	newGold, err := s.ApplySell(ctx, 1, invID, "Sword", 50)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if newGold != 50 {
		t.Fatalf("gold: want 50, got %d", newGold)
	}

	// Line dropped to zero but was not removed.
	line, err := s.GetLine(ctx, invID, "Sword")
	if err != nil {
		t.Fatalf("get line: %v", err)
	}
	if line.Owned != 0 {
		t.Fatalf("owned: want 0, got %d", line.Owned)
	}

	_, err = s.ApplySell(ctx, 1, invID, "Sword", 50)
	if !errors.Is(err, ledger.ErrNotOwned) {
		t.Fatalf("want ErrNotOwned, got %v", err)
	}

	gold, err := s.GetBalance(ctx, 1)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if gold != 50 {
		t.Fatalf("gold after failed sell: want 50, got %d", gold)
	}
}

func TestStore_ApplyFault_NothingMutates(t *testing.T) {
	t.Parallel()

	s := New()
	invID := s.AddUser(1, 100)
	ctx := context.Background()

	boom := errors.New("disk on fire")
	s.SetApplyFault(boom)

	_, err := s.ApplyBuy(ctx, 1, invID, "Sword", 50)
	if !errors.Is(err, boom) {
		t.Fatalf("want injected fault, got %v", err)
	}

	_, err = s.ApplySell(ctx, 1, invID, "Sword", 50)
	if !errors.Is(err, boom) {
		t.Fatalf("want injected fault, got %v", err)
	}

	s.SetApplyFault(nil)

	gold, err := s.GetBalance(ctx, 1)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if gold != 100 {
		t.Fatalf("gold: want 100, got %d", gold)
	}

	_, err = s.GetLine(ctx, invID, "Sword")
	if !errors.Is(err, ledger.ErrLineNotFound) {
		t.Fatalf("want ErrLineNotFound, got %v", err)
	}
}

func TestStore_MidApplyFault_FirstWriteRolledBack(t *testing.T) {
	t.Parallel()

	s := New()
	invID := s.AddUser(1, 100)
	s.SetLine(invID, "Sword", 2)
	ctx := context.Background()

	boom := errors.New("line write failed")
	s.SetMidApplyFault(boom)

	// Buy: the gold decrement stages first; when the line write fails
	// the balance must come back at its pre-transaction value.
	_, err := s.ApplyBuy(ctx, 1, invID, "Shield", 50)
	if !errors.Is(err, boom) {
		t.Fatalf("want injected fault, got %v", err)
	}

	s.SetMidApplyFault(nil)

	gold, err := s.GetBalance(ctx, 1)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if gold != 100 {
		t.Fatalf("gold after failed buy: want 100, got %d", gold)
	}

	if _, err := s.GetLine(ctx, invID, "Shield"); !errors.Is(err, ledger.ErrLineNotFound) {
		t.Fatalf("want ErrLineNotFound, got %v", err)
	}

	// Sell: the line decrement stages first; when the gold credit
	// fails the owned count must come back untouched.
	s.SetMidApplyFault(boom)

	_, err = s.ApplySell(ctx, 1, invID, "Sword", 50)
	if !errors.Is(err, boom) {
		t.Fatalf("want injected fault, got %v", err)
	}

	s.SetMidApplyFault(nil)

	line, err := s.GetLine(ctx, invID, "Sword")
	if err != nil {
		t.Fatalf("get line: %v", err)
	}
	if line.Owned != 2 {
		t.Fatalf("owned after failed sell: want 2, got %d", line.Owned)
	}

	gold, err = s.GetBalance(ctx, 1)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if gold != 100 {
		t.Fatalf("gold after failed sell: want 100, got %d", gold)
	}
}

func TestStore_ConcurrentMixedTrades_InvariantsHold(t *testing.T) {
	t.Parallel()

	const (
		startGold = 500
		rounds    = 20
	)

	s := New()
	invID := s.AddUser(1, startGold)
	ctx := context.Background()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		bought int64
		sold   int64
	)

	for range rounds {
		wg.Add(2)

		go func() {
			defer wg.Done()
			_, err := s.ApplyBuy(ctx, 1, invID, "Sword", 50)
			if err == nil {
				mu.Lock()
				bought++
				mu.Unlock()
			} else if !errors.Is(err, ledger.ErrInsufficientFunds) {
				t.Errorf("buy: %v", err)
			}
		}()

		go func() {
			defer wg.Done()
			_, err := s.ApplySell(ctx, 1, invID, "Sword", 50)
			if err == nil {
				mu.Lock()
				sold++
				mu.Unlock()
			} else if !errors.Is(err, ledger.ErrNotOwned) {
				t.Errorf("sell: %v", err)
			}
		}()
	}

	wg.Wait()

	gold, err := s.GetBalance(ctx, 1)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}

	wantGold := startGold - 50*bought + 50*sold
	if gold != wantGold {
		t.Fatalf("gold: want %d (bought=%d sold=%d), got %d", wantGold, bought, sold, gold)
	}
	if gold < 0 {
		t.Fatalf("gold went negative: %d", gold)
	}

	line, err := s.GetLine(ctx, invID, "Sword")
	if err != nil {
		t.Fatalf("get line: %v", err)
	}
	if line.Owned != bought-sold {
		t.Fatalf("owned: want %d, got %d", bought-sold, line.Owned)
	}
	if line.Owned < 0 {
		t.Fatalf("owned went negative: %d", line.Owned)
	}
}
