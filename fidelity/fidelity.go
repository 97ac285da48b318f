// Package fidelity turns raw Fidelity CSV exports into normalized ledger
// transactions. It knows the two export flavors: the brokerage history
// (individual and ESPP accounts) and the 401k plan history, which uses a
// different layout and needs more cleanup.
package fidelity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"folio"
)

// MalformedRowError describes a CSV row that could not be normalized. Rows
// are skipped, not fatal: Fidelity exports end with disclaimer lines and the
// occasional unparseable row must not lose the rest of the file.
type MalformedRowError struct {
	Line   int
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row at line %d: %s", e.Line, e.Reason)
}

// parseDate parses the MM/DD/YYYY dates of Fidelity exports.
func parseDate(s string) (folio.Date, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return folio.Date{}, fmt.Errorf("invalid date %q, want MM/DD/YYYY", s)
	}
	m, err1 := strconv.Atoi(parts[0])
	d, err2 := strconv.Atoi(parts[1])
	y, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || m < 1 || m > 12 || d < 1 || d > 31 {
		return folio.Date{}, fmt.Errorf("invalid date %q, want MM/DD/YYYY", s)
	}
	return folio.MustParseDate(fmt.Sprintf("%04d-%02d-%02d", y, m, d)), nil
}

// parseDecimal parses a Fidelity number cell: optional $ sign, thousands
// commas, and parentheses for negatives. An empty cell is zero.
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "--" {
		return decimal.Zero, nil
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q: %w", s, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// dedupe drops exact duplicate transactions, keeping the first occurrence.
// Overlapping exports of the same account produce the same rows twice.
func dedupe(txs []folio.Transaction) []folio.Transaction {
	out := txs[:0]
next:
	for _, tx := range txs {
		for _, kept := range out {
			if tx.Equal(kept) {
				continue next
			}
		}
		out = append(out, tx)
	}
	return out
}
