package pricing

// DefaultPrice is the flat gold price the store charges and credits
// for every equipment kind.
const DefaultPrice = 50

// Policy resolves an equipment name to its gold price. Implementations
// must be pure; the trade engine queries the policy fresh on every
// transaction so pricing can change without engine changes.
type Policy interface {
	PriceOf(itemName string) int64
}

// Flat prices every item at the same amount, on buy and on sell alike.
// The identical sell credit is intentional observed behavior, pending
// a product decision on proportional refunds.
type Flat struct {
	Gold int64
}

func NewFlat() Flat {
	return Flat{Gold: DefaultPrice}
}

func (f Flat) PriceOf(string) int64 {
	return f.Gold
}
