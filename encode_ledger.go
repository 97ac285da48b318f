package folio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// jtransaction is the JSONL wire form of a Transaction. Price and amount are
// plain numbers in the row's currency; the ledger stays human readable and
// easy to diff.
type jtransaction struct {
	Date        Date            `json:"date"`
	Account     Account         `json:"account"`
	Action      Action          `json:"action"`
	Symbol      string          `json:"symbol,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity,omitempty"`
	Price       decimal.Decimal `json:"price,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency,omitempty"`
}

// EncodeTransaction writes a single transaction as one JSONL line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	currency := tx.Amount.Currency()
	if currency == "" {
		currency = tx.Price.Currency()
	}
	jt := jtransaction{
		Date:        tx.Date,
		Account:     tx.Account,
		Action:      tx.Action,
		Symbol:      tx.Symbol,
		Description: tx.Description,
		Quantity:    tx.Quantity.value,
		Price:       tx.Price.value,
		Amount:      tx.Amount.value,
		Currency:    currency,
	}
	data, err := json.Marshal(jt)
	if err != nil {
		return fmt.Errorf("cannot marshal transaction on %s: %w", tx.Date, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write transaction: %w", err)
	}
	return nil
}

// EncodeLedger writes all transactions of the ledger in JSONL format, in
// chronological order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for _, tx := range l.transactions {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLedger reads a stream of JSONL transaction lines and returns a sorted
// Ledger. Invalid lines are an error: a persisted ledger is expected to be
// canonical, unlike raw brokerage exports.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var jt jtransaction
		if err := json.Unmarshal(lineBytes, &jt); err != nil {
			return nil, fmt.Errorf("could not decode ledger line %q: %w", string(lineBytes), err)
		}
		currency := jt.Currency
		if currency == "" {
			currency = "USD"
		}
		tx := Transaction{
			Date:        jt.Date,
			Account:     jt.Account,
			Action:      jt.Action,
			Symbol:      jt.Symbol,
			Description: jt.Description,
			Quantity:    Q(jt.Quantity),
			Price:       M(jt.Price, currency),
			Amount:      M(jt.Amount, currency),
		}
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("invalid transaction in ledger line %q: %w", string(lineBytes), err)
		}
		ledger.Append(tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read ledger: %w", err)
	}
	return ledger, nil
}
