package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/money-ledger/money/internal/model"
)

// NewAccountParams holds parameters for creating an account.
type NewAccountParams struct {
	Name   string
	Parent string // empty or model.RootID for a top-level account
	Type   model.AccountType
}

// CreateAccount allocates the next account id and inserts the account.
func (s *Store) CreateAccount(params NewAccountParams) (model.Account, error) {
	accountID, err := s.NextID(KindAccount)
	if err != nil {
		return model.Account{}, err
	}
	parent := params.Parent
	if parent == "" {
		parent = model.RootID
	}

	if err := s.InsertAccount(model.Account{
		ID:           accountID,
		Subaccounts:  []string{},
		Name:         params.Name,
		Type:         params.Type,
		Transactions: []string{},
		Parent:       parent,
	}); err != nil {
		return model.Account{}, err
	}
	a, _ := s.Account(accountID)
	return a, nil
}

// NewTransactionParams holds parameters for creating a transaction.
type NewTransactionParams struct {
	Debit  string
	Credit string
	Amount decimal.Decimal
	Memo   string
	Date   model.Date // zero means today
}

// CreateTransaction allocates the next transaction id and inserts the
// transaction.
func (s *Store) CreateTransaction(params NewTransactionParams) (model.Transaction, error) {
	txnID, err := s.NextID(KindTransaction)
	if err != nil {
		return model.Transaction{}, err
	}
	date := params.Date
	if date.IsZero() {
		date = model.Today()
	}

	t := model.Transaction{
		ID:     txnID,
		Credit: params.Credit,
		Debit:  params.Debit,
		Amount: params.Amount,
		Memo:   params.Memo,
		Date:   date,
	}
	if err := s.InsertTransaction(t); err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}
