// Package renderer turns computed portfolio figures into markdown reports.
// Reports are plain markdown strings so they can go to a terminal renderer, a
// file, or a test with equal ease.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"folio"
)

// SummaryMarkdown renders the dashboard front page: every scope's value,
// invested capital, gains and returns as of the report date.
func SummaryMarkdown(on folio.Date, metrics []*folio.Metrics, breakdown folio.InvestedBreakdown) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Portfolio Summary on %s\n\n", on)

	fmt.Fprintln(&b, "| Scope | Value | Invested | Gain | XIRR | TWR | 1Y | YTD |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|---:|")
	for _, m := range metrics {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			m.Scope,
			m.TotalValue,
			m.NetInvested,
			m.TotalGain.SignedString(),
			m.XIRR,
			m.TWR.SignedString(),
			m.OneYear.SignedString(),
			m.YTD.SignedString(),
		)
	}

	fmt.Fprint(&b, "\n## Invested Capital\n\n")
	fmt.Fprintln(&b, "| Source | Amount |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Transfers | %s |\n", breakdown.Transfers)
	fmt.Fprintf(&b, "| ESPP credits | %s |\n", breakdown.ESPPCredits)
	fmt.Fprintf(&b, "| 401k contributions | %s |\n", breakdown.Contributions)
	fmt.Fprintf(&b, "| Withdrawals | %s |\n", breakdown.Withdrawals.SignedString())
	fmt.Fprintf(&b, "| **Total** | **%s** |\n", breakdown.Total)

	return b.String()
}

// HoldingMarkdown renders the open positions of one scope.
func HoldingMarkdown(snapshot *folio.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Holdings on %s\n\n", snapshot.Scope, snapshot.On)
	if len(snapshot.Holdings) == 0 {
		fmt.Fprintln(&b, "No open positions.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Quantity | Price | Value | Cost | Unrealized |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")
	for _, h := range snapshot.Holdings {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			h.Symbol, h.Quantity, h.Price, h.MarketValue, h.CostBasis, h.UnrealizedGain.SignedString())
	}
	fmt.Fprintf(&b, "| **Total** | | | **%s** | **%s** | **%s** |\n",
		snapshot.TotalValue(), snapshot.TotalCostBasis(), snapshot.TotalUnrealizedGain().SignedString())

	return b.String()
}

// GainsMarkdown renders realized and unrealized gains per symbol, plus the
// individual sales of the period.
func GainsMarkdown(snapshot *folio.Snapshot, holdings []*folio.Holding) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Capital Gains on %s\n\n", snapshot.Scope, snapshot.On)

	fmt.Fprint(&b, "## Gains per Security\n\n")
	fmt.Fprintln(&b, "| Security | Realized | Unrealized |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	totalRealized := folio.USD(0)
	for _, h := range holdings {
		realized := h.RealizedGain()
		unrealized := unrealizedOf(snapshot, h.Symbol)
		if realized.IsZero() && unrealized.IsZero() && h.Quantity().IsZero() {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", h.Symbol, realized.SignedString(), unrealized.SignedString())
		totalRealized = totalRealized.Add(realized)
	}
	fmt.Fprintf(&b, "| **Total** | **%s** | **%s** |\n",
		totalRealized.SignedString(), snapshot.TotalUnrealizedGain().SignedString())

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "\n## Sales\n\n")
		fmt.Fprintln(w, "| Date | Security | Quantity | Proceeds | Cost | Gain |")
		fmt.Fprintln(w, "|:---|:---|---:|---:|---:|---:|")
		any := false
		for _, h := range holdings {
			for _, sale := range h.Sales {
				fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n",
					sale.Date, sale.Symbol, sale.Quantity, sale.Proceeds, sale.CostBasis, sale.Gain.SignedString())
				any = true
			}
		}
		return any
	})

	return b.String()
}

func unrealizedOf(snapshot *folio.Snapshot, symbol string) folio.Money {
	for _, h := range snapshot.Holdings {
		if h.Symbol == symbol {
			return h.UnrealizedGain
		}
	}
	return folio.USD(0)
}

// AllocationMarkdown renders an allocation breakdown.
func AllocationMarkdown(title string, a *folio.Allocation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Allocation by %s on %s\n\n", a.Scope, title, a.On)
	fmt.Fprintln(&b, "| Bucket | Value | Share |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, bucket := range a.Buckets {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", bucket.Label, bucket.Value, bucket.Share)
	}
	fmt.Fprintf(&b, "| **Total** | **%s** | 100.00%% |\n", a.Total)

	return b.String()
}

// FlowsMarkdown renders the external cash flows of a scope and where the
// invested capital came from.
func FlowsMarkdown(scope folio.Scope, flows []folio.CashFlow, breakdown folio.InvestedBreakdown) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Cash Flows\n\n", scope)
	if len(flows) == 0 {
		fmt.Fprintln(&b, "No external cash flows.")
	} else {
		fmt.Fprintln(&b, "| Date | Amount |")
		fmt.Fprintln(&b, "|:---|---:|")
		net := folio.USD(0)
		for _, flow := range flows {
			fmt.Fprintf(&b, "| %s | %s |\n", flow.Date, flow.Amount.SignedString())
			net = net.Add(flow.Amount)
		}
		fmt.Fprintf(&b, "| **Net** | **%s** |\n", net.SignedString())
	}

	fmt.Fprint(&b, "\n## Sources\n\n")
	fmt.Fprintln(&b, "| Source | Amount |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Transfers | %s |\n", breakdown.Transfers)
	fmt.Fprintf(&b, "| ESPP credits | %s |\n", breakdown.ESPPCredits)
	fmt.Fprintf(&b, "| 401k contributions | %s |\n", breakdown.Contributions)
	fmt.Fprintf(&b, "| Withdrawals | %s |\n", breakdown.Withdrawals.SignedString())
	fmt.Fprintf(&b, "| **Total** | **%s** |\n", breakdown.Total)

	return b.String()
}
