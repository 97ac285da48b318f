package folio

// HoldingSnapshot is the valued state of one position on the snapshot date.
type HoldingSnapshot struct {
	Symbol         string
	Quantity       Quantity
	Price          Money
	MarketValue    Money
	CostBasis      Money
	UnrealizedGain Money
}

// Snapshot is the full valued state of a scope on a date.
type Snapshot struct {
	Scope    Scope
	On       Date
	Holdings []HoldingSnapshot
}

// TotalValue returns the market value of the whole snapshot.
func (s *Snapshot) TotalValue() Money {
	total := USD(0)
	for _, h := range s.Holdings {
		total = total.Add(h.MarketValue)
	}
	return total
}

// TotalCostBasis returns the acquisition cost of everything still held.
func (s *Snapshot) TotalCostBasis() Money {
	total := USD(0)
	for _, h := range s.Holdings {
		total = total.Add(h.CostBasis)
	}
	return total
}

// TotalUnrealizedGain returns the unrealized gain of the whole snapshot.
func (s *Snapshot) TotalUnrealizedGain() Money {
	total := USD(0)
	for _, h := range s.Holdings {
		total = total.Add(h.UnrealizedGain)
	}
	return total
}

// NewSnapshot values every open position of the scope on the given date.
// Positions sold down to zero are omitted. When no market price is known for
// a symbol the position is valued at its cost basis, so a snapshot never
// silently drops value. An empty scope yields an empty snapshot, not an error.
func NewSnapshot(l *Ledger, market *MarketData, scope Scope, on Date) (*Snapshot, error) {
	snapshot := &Snapshot{Scope: scope, On: on}
	for _, symbol := range l.Symbols(scope, on) {
		holding, err := ReplayHolding(l, scope, symbol, on)
		if err != nil {
			return nil, err
		}
		quantity := holding.Quantity()
		if quantity.IsZero() {
			continue
		}
		basis := holding.CostBasis()
		price, ok := market.PriceAsOf(symbol, on)
		if !ok {
			price = basis.Div(quantity)
		}
		value := price.Mul(quantity)
		snapshot.Holdings = append(snapshot.Holdings, HoldingSnapshot{
			Symbol:         symbol,
			Quantity:       quantity,
			Price:          price,
			MarketValue:    value,
			CostBasis:      basis,
			UnrealizedGain: value.Sub(basis),
		})
	}
	return snapshot, nil
}
