package fidelity

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"folio"
)

// Brokerage history export columns, in order.
const (
	colRunDate = iota
	colAccount
	colAction
	colSymbol
	colDescription
	colType
	colQuantity
	colPrice
	colCommission
	colFees
	colInterest
	colAmount
	brokerageColumns
)

// ImportBrokerage reads a Fidelity brokerage history CSV ("Accounts_History")
// and returns the normalized transactions it contains, deduplicated.
// mapSymbol renames symbols as configured; pass the identity when no renames
// apply. Malformed rows are logged and skipped.
func ImportBrokerage(r io.Reader, mapSymbol func(string) string) ([]folio.Transaction, error) {
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
			return nil, fmt.Errorf("cannot read brokerage export: %w", err)
		}
		line++
		if !inBody {
			// The export opens with free-text preamble lines before
			// the header row.
			if len(record) > 0 && strings.TrimSpace(record[0]) == "Run Date" {
				inBody = true
			}
			continue
		}
		tx, err := normalizeBrokerageRow(record, line, mapSymbol)
		if err != nil {
			log.Printf("skipping %v", err)
			continue
		}
		if tx == nil {
			continue
		}
		txs = append(txs, *tx)
	}
	return dedupe(txs), nil
}

func normalizeBrokerageRow(record []string, line int, mapSymbol func(string) string) (*folio.Transaction, error) {
	if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
		return nil, nil // trailing disclaimer block
	}
	if len(record) < brokerageColumns {
		return nil, &MalformedRowError{Line: line, Reason: fmt.Sprintf("%d columns, want %d", len(record), brokerageColumns)}
	}

	on, err := parseDate(record[colRunDate])
	if err != nil {
		return nil, &MalformedRowError{Line: line, Reason: err.Error()}
	}
	account, err := classifyAccount(record[colAccount])
	if err != nil {
		return nil, &MalformedRowError{Line: line, Reason: err.Error()}
	}
	amount, err := parseDecimal(record[colAmount])
	if err != nil {
		return nil, &MalformedRowError{Line: line, Reason: "amount: " + err.Error()}
	}
	quantity, err := parseDecimal(record[colQuantity])
	if err != nil {
		return nil, &MalformedRowError{Line: line, Reason: "quantity: " + err.Error()}
	}
	price, err := parseDecimal(record[colPrice])
	if err != nil {
		return nil, &MalformedRowError{Line: line, Reason: "price: " + err.Error()}
	}

	actionText := strings.ToUpper(strings.TrimSpace(record[colAction]))
	action := classifyAction(actionText, amount.IsNegative())
	if action == folio.Other && amount.IsZero() {
		return nil, nil // informational row, nothing to ledger
	}

	// 401k plan funds have no public ticker, so their rows leave the
	// symbol cell empty and name the fund in the description.
	symbol := strings.TrimSpace(record[colSymbol])
	if symbol == "" && account == folio.Retirement {
		symbol = strings.TrimSpace(record[colDescription])
	}

	tx := folio.Transaction{
		Date:        on,
		Account:     account,
		Symbol:      mapSymbol(symbol),
		Description: strings.TrimSpace(record[colAction]),
		Action:      action,
		Quantity:    folio.Q(quantity.Abs()),
		Price:       folio.USD(price),
		Amount:      folio.USD(amount),
	}
	// Pure cash actions carry no position even when the export names a
	// symbol (e.g. a dividend row names the paying security).
	if !action.AddsShares() && action != folio.Sell {
		tx.Quantity = folio.Q(0)
	}
	if err := tx.Validate(); err != nil {
		return nil, &MalformedRowError{Line: line, Reason: err.Error()}
	}
	return &tx, nil
}

// classifyAccount maps the export's account cell to a ledger account.
func classifyAccount(s string) (folio.Account, error) {
	upper := strings.ToUpper(s)
	switch {
	case strings.Contains(upper, "INDIVIDUAL"):
		return folio.Individual, nil
	case strings.Contains(upper, "SPP"):
		return folio.ESPP, nil
	case strings.Contains(upper, "401K"):
		return folio.Retirement, nil
	default:
		return "", fmt.Errorf("unknown account %q", strings.TrimSpace(s))
	}
}

// classifyAction maps Fidelity's free-text action cell to a ledger action.
// The text is matched on its stable leading keywords; the rest of the cell
// repeats the security description.
func classifyAction(text string, negative bool) folio.Action {
	switch {
	case strings.HasPrefix(text, "YOU BOUGHT"):
		return folio.Buy
	case strings.HasPrefix(text, "YOU SOLD"):
		return folio.Sell
	case strings.HasPrefix(text, "CONTRIBUTION"):
		// 401k payroll contributions buy fund units with external money
		return folio.Contribution
	case strings.Contains(text, "REINVESTMENT"):
		return folio.Reinvest
	case strings.Contains(text, "DIVIDEND"):
		return folio.Dividend
	case strings.Contains(text, "DISTRIBUTION"):
		return folio.Distribution
	case strings.Contains(text, "ELECTRONIC FUNDS TRANSFER"):
		if negative {
			return folio.Withdrawal
		}
		return folio.Contribution
	case strings.Contains(text, "JOURNALED") && strings.Contains(text, "CREDIT"):
		return folio.Credit
	case strings.Contains(text, "TAX"):
		return folio.Tax
	case strings.Contains(text, "FEE"):
		return folio.Fee
	default:
		return folio.Other
	}
}
