// Package journal writes and reads transactions as a flat CSV journal.
package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/money-ledger/money/internal/id"
	"github.com/money-ledger/money/internal/model"
)

// Header is the CSV header of a journal export.
const Header = "transaction_id,date,debit,credit,amount,memo"

const (
	numFields = 6
	colID     = 0
	colDate   = 1
	colDebit  = 2
	colCredit = 3
	colAmount = 4
	colMemo   = 5
)

// ReadTransactions reads a journal CSV.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		t, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// WriteTransactions writes txns, header first.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row. Amounts keep two
// decimal places.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = t.ID
	row[colDate] = t.Date.String()
	row[colDebit] = t.Debit
	row[colCredit] = t.Credit
	row[colAmount] = t.Amount.StringFixed(2)
	row[colMemo] = t.Memo
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction. Account
// references are not checked here; the ledger does that on insert.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	for _, col := range []int{colID, colDebit, colCredit} {
		if _, err := id.Parse(record[col]); err != nil {
			return model.Transaction{}, err
		}
	}

	date, err := model.ParseDate(record[colDate])
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Transaction{
		ID:     record[colID],
		Credit: record[colCredit],
		Debit:  record[colDebit],
		Amount: amount,
		Memo:   record[colMemo],
		Date:   date,
	}, nil
}
