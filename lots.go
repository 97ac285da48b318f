package folio

// lot is a parcel of shares acquired together, the unit of FIFO cost basis.
type lot struct {
	Date     Date
	Quantity Quantity
	UnitCost Money
}

// lots is the open FIFO queue of lots for one symbol in one scope.
type lots []lot

// add appends a new lot at the back of the queue.
func (l *lots) add(on Date, quantity Quantity, unitCost Money) {
	*l = append(*l, lot{Date: on, Quantity: quantity, UnitCost: unitCost})
}

// quantity returns the total shares currently held across open lots.
func (l lots) quantity() Quantity {
	var total Quantity
	for _, lot := range l {
		total = total.Add(lot.Quantity)
	}
	return total
}

// costBasis returns the total acquisition cost of the open lots.
func (l lots) costBasis() Money {
	total := USD(0)
	for _, lot := range l {
		total = total.Add(lot.UnitCost.Mul(lot.Quantity))
	}
	return total
}

// sell consumes the given quantity from the front of the queue and returns
// the cost basis of the shares sold. Selling more than is held is reported
// with ok=false and the basis of everything that could be consumed.
func (l *lots) sell(quantity Quantity) (basis Money, ok bool) {
	basis = USD(0)
	remaining := quantity
	for len(*l) > 0 && remaining.IsPositive() {
		front := &(*l)[0]
		if front.Quantity.GreaterThan(remaining) {
			basis = basis.Add(front.UnitCost.Mul(remaining))
			front.Quantity = front.Quantity.Sub(remaining)
			return basis, true
		}
		basis = basis.Add(front.UnitCost.Mul(front.Quantity))
		remaining = remaining.Sub(front.Quantity)
		*l = (*l)[1:]
	}
	return basis, remaining.IsZero()
}

// RealizedSale records the outcome of one sell transaction: its proceeds, the
// FIFO cost basis of the shares sold, and the resulting gain.
type RealizedSale struct {
	Date      Date
	Account   Account
	Symbol    string
	Quantity  Quantity
	Proceeds  Money
	CostBasis Money
	Gain      Money
}

// Holding is the FIFO state of one symbol after replaying its ledger rows:
// the open lots still held and the sales realized along the way.
type Holding struct {
	Symbol string
	open   lots
	Sales  []RealizedSale
}

// Quantity returns the shares currently held.
func (h *Holding) Quantity() Quantity { return h.open.quantity() }

// CostBasis returns the acquisition cost of the shares currently held.
func (h *Holding) CostBasis() Money { return h.open.costBasis() }

// RealizedGain returns the sum of gains over all recorded sales.
func (h *Holding) RealizedGain() Money {
	total := USD(0)
	for _, sale := range h.Sales {
		total = total.Add(sale.Gain)
	}
	return total
}

// ReplayHolding replays all rows of a symbol within a scope up to the given
// date through the FIFO queue. It returns a NegativeHoldingError when a sell
// exceeds the open lots.
func ReplayHolding(l *Ledger, scope Scope, symbol string, on Date) (*Holding, error) {
	h := &Holding{Symbol: symbol}
	for _, tx := range l.Transactions(ByScope(scope), BySymbol(symbol), Until(on)) {
		switch {
		case tx.Action.AddsShares():
			unitCost := M(0, tx.Amount.Currency())
			if tx.Action != Distribution {
				unitCost = tx.UnitCost()
			}
			h.open.add(tx.Date, tx.Quantity, unitCost)
		case tx.Action == Sell:
			held := h.open.quantity()
			basis, ok := h.open.sell(tx.Quantity)
			if !ok {
				return nil, &NegativeHoldingError{
					Scope:  scope,
					Symbol: symbol,
					Date:   tx.Date,
					Held:   held.Sub(tx.Quantity),
				}
			}
			h.Sales = append(h.Sales, RealizedSale{
				Date:      tx.Date,
				Account:   tx.Account,
				Symbol:    symbol,
				Quantity:  tx.Quantity,
				Proceeds:  tx.Amount,
				CostBasis: basis,
				Gain:      tx.Amount.Sub(basis),
			})
		}
	}
	return h, nil
}
