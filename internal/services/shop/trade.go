package shop

import "errors"

type TradeKind string

const (
	TradeBuy  TradeKind = "buy"
	TradeSell TradeKind = "sell"
)

// TradeRequest is one buy-or-sell order: exactly one user, one
// equipment kind, one unit.
type TradeRequest struct {
	UserID   uint64
	ItemName string
	Kind     TradeKind
}

// TradeResult carries the gold balance after the trade committed.
type TradeResult struct {
	Gold int64
}

var ErrInvalidRequest = errors.New("invalid trade request")
