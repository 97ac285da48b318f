package folio

// CashFlow is a dated external money movement, positive when money enters the
// portfolio from outside. Only external flows matter here: buys and sells
// shuffle value between cash and securities and never appear in this series.
type CashFlow struct {
	Date   Date
	Amount Money
}

// ExtractCashFlows filters the ledger down to the external cash flows of a
// scope within the window, in chronological order. Flows on the same day are
// merged into a single CashFlow.
//
// The sum of the extracted flows equals the net external capital invested in
// the scope over the window.
func ExtractCashFlows(l *Ledger, scope Scope, window Range) []CashFlow {
	var flows []CashFlow
	for _, tx := range l.Transactions(ByScope(scope)) {
		if tx.Date.After(window.To) {
			break
		}
		if tx.Date.Before(window.From) || !tx.Action.IsExternalFlow() {
			continue
		}
		if n := len(flows); n > 0 && flows[n-1].Date == tx.Date {
			flows[n-1].Amount = flows[n-1].Amount.Add(tx.Amount)
			continue
		}
		flows = append(flows, CashFlow{Date: tx.Date, Amount: tx.Amount})
	}
	return flows
}

// NetInvested returns the total external capital invested in a scope up to
// and including the given date.
func NetInvested(l *Ledger, scope Scope, on Date) Money {
	total := USD(0)
	for _, flow := range ExtractCashFlows(l, scope, Range{From: l.OldestTransactionDate(), To: on}) {
		total = total.Add(flow.Amount)
	}
	return total
}

// InvestedBreakdown decomposes the net invested capital into its sources.
type InvestedBreakdown struct {
	Transfers     Money // electronic fund transfers into the brokerage account
	ESPPCredits   Money // employer purchase credits
	Contributions Money // 401k payroll contributions
	Withdrawals   Money // money taken out (negative)
	Total         Money
}

// NetInvestedBreakdown computes where the invested capital came from, over the
// whole ledger up to the given date.
func NetInvestedBreakdown(l *Ledger, on Date) InvestedBreakdown {
	b := InvestedBreakdown{
		Transfers:     USD(0),
		ESPPCredits:   USD(0),
		Contributions: USD(0),
		Withdrawals:   USD(0),
	}
	for _, tx := range l.Transactions(Until(on)) {
		switch tx.Action {
		case Contribution:
			if tx.Account == Retirement {
				b.Contributions = b.Contributions.Add(tx.Amount)
			} else {
				b.Transfers = b.Transfers.Add(tx.Amount)
			}
		case Credit:
			b.ESPPCredits = b.ESPPCredits.Add(tx.Amount)
		case Withdrawal:
			b.Withdrawals = b.Withdrawals.Add(tx.Amount)
		}
	}
	b.Total = b.Transfers.Add(b.ESPPCredits).Add(b.Contributions).Add(b.Withdrawals)
	return b
}
