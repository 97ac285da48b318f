package folio

import (
	"math"
)

// XNPV computes the net present value of irregularly timed cash flows at the
// given annual rate, discounting each flow by (1+rate)^years where years is
// the day count from the first flow over 365.
func XNPV(rate float64, flows []CashFlow) float64 {
	if len(flows) == 0 {
		return 0
	}
	t0 := flows[0].Date
	var npv float64
	for _, flow := range flows {
		npv += flow.Amount.AsFloat() / math.Pow(1+rate, flow.Date.YearsSince(t0))
	}
	return npv
}

const (
	xirrTolerance  = 1e-6
	xirrIterations = 200
)

// XIRR solves for the annualized internal rate of return of irregularly timed
// cash flows. The flow series must contain at least one negative and one
// positive amount; otherwise, or when no root can be bracketed, it returns
// ErrNoConvergence and the caller reports the metric as undefined.
//
// The solver brackets a sign change of XNPV over a coarse rate scan, then
// narrows the bracket by bisection with a Newton step whenever it stays in
// range. The result is accurate to within 1e-6 of the true rate.
func XIRR(flows []CashFlow) (Percent, error) {
	var hasNegative, hasPositive bool
	for _, flow := range flows {
		if flow.Amount.IsNegative() {
			hasNegative = true
		}
		if flow.Amount.IsPositive() {
			hasPositive = true
		}
	}
	if !hasNegative || !hasPositive {
		return Percent(math.NaN()), ErrNoConvergence
	}

	// Bracket a sign change. Rates below -100%/year are meaningless.
	lo, hi, ok := bracketRoot(func(r float64) float64 { return XNPV(r, flows) })
	if !ok {
		return Percent(math.NaN()), ErrNoConvergence
	}

	flo := XNPV(lo, flows)
	rate := (lo + hi) / 2
	for i := 0; i < xirrIterations; i++ {
		f := XNPV(rate, flows)
		if math.Abs(f) < xirrTolerance || hi-lo < xirrTolerance {
			return Percent(rate * 100), nil
		}
		if (f < 0) == (flo < 0) {
			lo, flo = rate, f
		} else {
			hi = rate
		}
		// Newton step from a local slope estimate, falling back to
		// bisection when it would leave the bracket.
		h := math.Max(1e-8, (hi-lo)*1e-4)
		slope := (XNPV(rate+h, flows) - f) / h
		next := rate - f/slope
		if slope == 0 || math.IsNaN(next) || next <= lo || next >= hi {
			next = (lo + hi) / 2
		}
		rate = next
	}
	return Percent(math.NaN()), ErrNoConvergence
}

// bracketRoot scans annual rates starting just above -100% and returns the
// first interval over which f changes sign. Past 1000% the scan grows
// geometrically: a gain made days after funding annualizes to an enormous
// rate, which must still bracket.
func bracketRoot(f func(float64) float64) (lo, hi float64, ok bool) {
	grid := []float64{-0.9999, -0.99, -0.9, -0.75, -0.5, -0.25, -0.1, 0,
		0.1, 0.25, 0.5, 1, 2, 5, 10}
	prev := grid[0]
	fprev := f(prev)
	scan := func(r float64) bool {
		fr := f(r)
		if fprev == 0 {
			lo, hi, ok = prev, prev, true
			return true
		}
		if (fprev < 0) != (fr < 0) {
			lo, hi, ok = prev, r, true
			return true
		}
		prev, fprev = r, fr
		return false
	}
	for _, r := range grid[1:] {
		if scan(r) {
			return lo, hi, ok
		}
	}
	for r := 20.0; r <= 1e9; r *= 2 {
		if scan(r) {
			return lo, hi, ok
		}
	}
	return 0, 0, false
}

// TWR computes the time-weighted return of a scope over a window by chaining
// sub-period returns between external cash flows. Each sub-period contributes
// (end - start - flow) / start; a sub-period starting from an empty portfolio
// contributes zero, so the first funding event does not distort the chain.
func TWR(l *Ledger, market *MarketData, scope Scope, window Range) (Percent, error) {
	flows := ExtractCashFlows(l, scope, window)

	valueAt := func(on Date) (float64, error) {
		snapshot, err := NewSnapshot(l, market, scope, on)
		if err != nil {
			return 0, err
		}
		return snapshot.TotalValue().AsFloat(), nil
	}

	start, err := valueAt(window.From)
	if err != nil {
		return Percent(math.NaN()), err
	}

	growth := 1.0
	step := func(on Date, flow float64) error {
		end, err := valueAt(on)
		if err != nil {
			return err
		}
		if start > 0 {
			growth *= 1 + (end-start-flow)/start
		}
		start = end
		return nil
	}

	for _, flow := range flows {
		if !flow.Date.After(window.From) {
			continue
		}
		if err := step(flow.Date, flow.Amount.AsFloat()); err != nil {
			return Percent(math.NaN()), err
		}
	}
	if err := step(window.To, 0); err != nil {
		return Percent(math.NaN()), err
	}
	return Percent((growth - 1) * 100), nil
}

// CAGR annualizes a total growth factor over a number of years. It is left
// undefined (NaN) for windows shorter than a year, where annualizing would
// exaggerate short-term noise.
func CAGR(growthFactor, years float64) Percent {
	if years < 1 || growthFactor <= 0 {
		return Percent(math.NaN())
	}
	return Percent((math.Pow(growthFactor, 1/years) - 1) * 100)
}

// Metrics is the full set of performance figures for one scope on one date.
// Rate figures that cannot be computed are NaN and render as "N/A".
type Metrics struct {
	Scope          Scope
	On             Date
	TotalValue     Money
	NetInvested    Money
	RealizedGain   Money
	UnrealizedGain Money
	TotalGain      Money
	XIRR           Percent // money-weighted, since inception
	TWR            Percent // time-weighted, since inception
	OneYear        Percent // time-weighted, trailing year
	YTD            Percent // time-weighted, calendar year to date
	CAGR           Percent
}

// ComputeMetrics computes every performance figure of a scope as of a date.
// It fails only on data corruption (NegativeHoldingError); metrics that are
// merely undefined for the scope's history come back as NaN.
func ComputeMetrics(l *Ledger, market *MarketData, scope Scope, on Date) (*Metrics, error) {
	inception := l.OldestTransactionDate()
	lifetime := Range{From: inception, To: on}

	snapshot, err := NewSnapshot(l, market, scope, on)
	if err != nil {
		return nil, err
	}

	m := &Metrics{
		Scope:          scope,
		On:             on,
		TotalValue:     snapshot.TotalValue(),
		NetInvested:    NetInvested(l, scope, on),
		UnrealizedGain: snapshot.TotalUnrealizedGain(),
		RealizedGain:   USD(0),
	}
	for _, symbol := range l.Symbols(scope, on) {
		holding, err := ReplayHolding(l, scope, symbol, on)
		if err != nil {
			return nil, err
		}
		m.RealizedGain = m.RealizedGain.Add(holding.RealizedGain())
	}
	m.TotalGain = m.RealizedGain.Add(m.UnrealizedGain)

	m.XIRR = computeXIRR(l, scope, on, m.TotalValue)

	m.TWR, err = TWR(l, market, scope, lifetime)
	if err != nil {
		return nil, err
	}
	m.OneYear, err = TWR(l, market, scope, Range{From: on.AddYear(-1), To: on})
	if err != nil {
		return nil, err
	}
	m.YTD, err = TWR(l, market, scope, Range{From: NewDate(on.Year(), 1, 1), To: on})
	if err != nil {
		return nil, err
	}

	years := on.YearsSince(inception)
	m.CAGR = CAGR(1+float64(m.TWR)/100, years)
	return m, nil
}

// computeXIRR builds the investor-perspective flow series of a scope and
// solves it. External flows are negated (a contribution is money the investor
// paid in) and the terminal portfolio value closes the series as a positive
// inflow.
func computeXIRR(l *Ledger, scope Scope, on Date, terminal Money) Percent {
	external := ExtractCashFlows(l, scope, Range{From: l.OldestTransactionDate(), To: on})
	if len(external) == 0 {
		return Percent(math.NaN())
	}
	flows := make([]CashFlow, 0, len(external)+1)
	for _, flow := range external {
		flows = append(flows, CashFlow{Date: flow.Date, Amount: flow.Amount.Neg()})
	}
	if n := len(flows); flows[n-1].Date == on {
		flows[n-1].Amount = flows[n-1].Amount.Add(terminal)
	} else {
		flows = append(flows, CashFlow{Date: on, Amount: terminal})
	}
	rate, err := XIRR(flows)
	if err != nil {
		return Percent(math.NaN())
	}
	return rate
}
