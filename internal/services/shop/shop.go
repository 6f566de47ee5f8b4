package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mothroom/D-D-Lite/internal/repos/ledger"
	"github.com/Mothroom/D-D-Lite/internal/services/pricing"
)

// maxConflictRetries bounds how many times a trade is re-run after the
// store reports contention before the failure is surfaced.
const maxConflictRetries = 3

type Service struct {
	store  ledger.Ledger
	prices pricing.Policy
}

func New(store ledger.Ledger, prices pricing.Policy) *Service {
	return &Service{
		store:  store,
		prices: prices,
	}
}

// Trade executes one buy-or-sell transaction:
//
// 1) Validate the request.
// 2) Resolve the price (fresh per call).
// 3) Check preconditions in order: user, inventory, funds/ownership.
// 4) Apply both mutations as one atomic unit via the store.
//
// Precondition failures leave the store untouched. Only ErrConflict is
// retried, and only up to maxConflictRetries.
func (s *Service) Trade(ctx context.Context, req TradeRequest) (TradeResult, error) {
	if req.UserID == 0 || req.ItemName == "" {
		return TradeResult{}, ErrInvalidRequest
	}

	if req.Kind != TradeBuy && req.Kind != TradeSell {
		return TradeResult{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, req.Kind)
	}

	price := s.prices.PriceOf(req.ItemName)

	var lastErr error

	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		res, err := s.tradeOnce(ctx, req, price)
		if err == nil {
			return res, nil
		}

		if !errors.Is(err, ledger.ErrConflict) {
			return TradeResult{}, err
		}

		lastErr = err
	}

	return TradeResult{}, fmt.Errorf("trade contention not resolved after %d retries: %w", maxConflictRetries, lastErr)
}

func (s *Service) tradeOnce(ctx context.Context, req TradeRequest, price int64) (TradeResult, error) {
	gold, err := s.store.GetBalance(ctx, req.UserID)
	if err != nil {
		return TradeResult{}, fmt.Errorf("get balance: %w", err)
	}

	inventoryID, err := s.store.GetInventoryID(ctx, req.UserID)
	if err != nil {
		return TradeResult{}, fmt.Errorf("get inventory: %w", err)
	}

	switch req.Kind {
	case TradeBuy:
		// Pre-check against the read balance; the store re-verifies
		// under its own lock, which is the authoritative check.
		if gold < price {
			return TradeResult{}, fmt.Errorf("pre-check buy: %w", ledger.ErrInsufficientFunds)
		}

		newGold, err := s.store.ApplyBuy(ctx, req.UserID, inventoryID, req.ItemName, price)
		if err != nil {
			return TradeResult{}, fmt.Errorf("apply buy: %w", err)
		}

		return TradeResult{Gold: newGold}, nil

	case TradeSell:
		line, err := s.store.GetLine(ctx, inventoryID, req.ItemName)
		if err != nil {
			if errors.Is(err, ledger.ErrLineNotFound) {
				return TradeResult{}, fmt.Errorf("pre-check sell: %w", ledger.ErrNotOwned)
			}

			return TradeResult{}, fmt.Errorf("get line: %w", err)
		}

		if line.Owned <= 0 {
			return TradeResult{}, fmt.Errorf("pre-check sell: %w", ledger.ErrNotOwned)
		}

		newGold, err := s.store.ApplySell(ctx, req.UserID, inventoryID, req.ItemName, price)
		if err != nil {
			return TradeResult{}, fmt.Errorf("apply sell: %w", err)
		}

		return TradeResult{Gold: newGold}, nil

	default:
		return TradeResult{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, req.Kind)
	}
}

// Balance returns the user's gold (no locks; suitable for the GET endpoint).
func (s *Service) Balance(ctx context.Context, userID uint64) (int64, error) {
	gold, err := s.store.GetBalance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}

	return gold, nil
}
