package fidelity

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"folio"
)

// 401k plan history export columns. Rows carry a trailing comma, so a sixth
// empty column shows up; the reader tolerates it.
const (
	col401kDate = iota
	col401kInvestment
	col401kType
	col401kAmount
	col401kShares
	retirementColumns
)

// Import401k reads a Fidelity 401k plan history CSV and returns the
// normalized transactions, deduplicated. The plan funds have no public
// ticker, so the investment name itself becomes the symbol; mapSymbol can
// rename it to something shorter. Fund swaps and fees move units, so a single
// export row can normalize into two ledger rows.
func Import401k(r io.Reader, mapSymbol func(string) string) ([]folio.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var txs []folio.Transaction
	line := 0
	inBody := false
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read 401k export: %w", err)
		}
		line++
		if !inBody {
			if len(record) > 0 && strings.TrimSpace(record[0]) == "Date" {
				inBody = true
			}
			continue
		}
		rows, err := normalize401kRow(record, line, mapSymbol)
		if err != nil {
			log.Printf("skipping %v", err)
			continue
		}
		txs = append(txs, rows...)
	}
	return dedupe(txs), nil
}

func normalize401kRow(record []string, line int, mapSymbol func(string) string) ([]folio.Transaction, error) {
	if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
		return nil, nil
	}
	if len(record) < retirementColumns {
		return nil, &MalformedRowError{Line: line, Reason: fmt.Sprintf("%d columns, want %d", len(record), retirementColumns)}
	}

	on, err := parseDate(record[col401kDate])
	if err != nil {
		return nil, &MalformedRowError{Line: line, Reason: err.Error()}
	}
	amount, err := parseDecimal(record[col401kAmount])
	if err != nil {
		return nil, &MalformedRowError{Line: line, Reason: "amount: " + err.Error()}
	}
	shares, err := parseDecimal(record[col401kShares])
	if err != nil {
		return nil, &MalformedRowError{Line: line, Reason: "shares: " + err.Error()}
	}

	investment := strings.TrimSpace(record[col401kInvestment])
	symbol := mapSymbol(investment)
	kind := strings.ToUpper(strings.TrimSpace(record[col401kType]))

	base := folio.Transaction{
		Date:        on,
		Account:     folio.Retirement,
		Symbol:      symbol,
		Description: investment + " " + strings.TrimSpace(record[col401kType]),
	}
	quantity := folio.Q(shares.Abs())
	price := unitPrice(amount, shares)

	var txs []folio.Transaction
	emit := func(action folio.Action, q folio.Quantity, a folio.Money) {
		tx := base
		tx.Action = action
		tx.Quantity = q
		tx.Price = price
		tx.Amount = a
		txs = append(txs, tx)
	}

	switch {
	case strings.Contains(kind, "CONTRIBUTION"):
		emit(folio.Contribution, quantity, folio.USD(amount.Abs()))
	case strings.Contains(kind, "DIVIDEND"):
		// Plan dividends are reinvested in place: units in, no
		// external cash.
		emit(folio.Reinvest, quantity, folio.USD(amount.Abs().Neg()))
	case strings.Contains(kind, "FEE"):
		// Fees are paid by liquidating units.
		if shares.IsNegative() {
			emit(folio.Sell, quantity, folio.USD(amount.Abs()))
		}
		emit(folio.Fee, folio.Q(0), folio.USD(amount.Abs().Neg()))
	case strings.Contains(kind, "DISTRIBUTION") && shares.IsPositive():
		// In-kind distribution, units received at no cost.
		emit(folio.Distribution, quantity, folio.USD(0))
	case strings.Contains(kind, "WITHDRAWAL"), strings.Contains(kind, "DISTRIBUTION") && shares.IsNegative():
		emit(folio.Sell, quantity, folio.USD(amount.Abs()))
		emit(folio.Withdrawal, folio.Q(0), folio.USD(amount.Abs().Neg()))
	case strings.Contains(kind, "EXCHANGE"), strings.Contains(kind, "TRANSFER"):
		if shares.IsNegative() {
			emit(folio.Sell, quantity, folio.USD(amount.Abs()))
		} else {
			emit(folio.Buy, quantity, folio.USD(amount.Abs().Neg()))
		}
	case strings.Contains(kind, "REALIZED"), strings.Contains(kind, "CHANGE IN MARKET VALUE"):
		return nil, nil // valuation noise, not a transaction
	default:
		return nil, &MalformedRowError{Line: line, Reason: fmt.Sprintf("unknown transaction type %q", kind)}
	}

	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return nil, &MalformedRowError{Line: line, Reason: err.Error()}
		}
	}
	return txs, nil
}

// unitPrice derives the per-unit price of a 401k row; the export has no price
// column.
func unitPrice(amount, shares decimal.Decimal) folio.Money {
	if shares.IsZero() {
		return folio.Money{}
	}
	return folio.USD(amount.Abs().Div(shares.Abs()))
}
