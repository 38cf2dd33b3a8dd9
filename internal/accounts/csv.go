package accounts

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/money-ledger/money/internal/id"
	"github.com/money-ledger/money/internal/model"
)

const (
	numFields = 4
	colID     = 0
	colName   = 1
	colType   = 2
	colParent = 3
)

// ReadAccounts reads a chart-of-accounts CSV with an
// account_id,account_name,account_type,parent_id header.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes a chart-of-accounts CSV.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"account_id", "account_name", "account_type", "parent_id"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row. Top-level accounts
// have an empty parent_id.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = acct.ID
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	if !acct.IsRoot() {
		row[colParent] = acct.Parent
	}
	return row
}

// UnmarshalAccount converts a CSV row to an Account. The type column
// accepts the same tokens as the ledger document.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	if _, err := id.Parse(record[colID]); err != nil {
		return model.Account{}, fmt.Errorf("parsing account_id: %w", err)
	}

	parent := model.RootID
	if record[colParent] != "" {
		if _, err := id.Parse(record[colParent]); err != nil {
			return model.Account{}, fmt.Errorf("parsing parent_id: %w", err)
		}
		parent = record[colParent]
	}

	var typ model.AccountType
	if record[colType] != "" {
		var err error
		typ, err = model.ParseAccountType(record[colType])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing account_type: %w", err)
		}
	}

	return model.Account{
		ID:           record[colID],
		Subaccounts:  []string{},
		Name:         record[colName],
		Type:         typ,
		Transactions: []string{},
		Parent:       parent,
	}, nil
}
