package accounts

import (
	"fmt"

	"github.com/money-ledger/money/internal/ledger"
	"github.com/money-ledger/money/internal/model"
)

// DefaultChart returns the chart of accounts a new ledger starts with.
// Assets and Expenses are debit-normal, Liabilities, Equity and Income
// credit-normal; children carry their parent's type.
func DefaultChart() []model.Account {
	return []model.Account{
		{ID: "1", Name: "Assets", Type: model.AccountTypeDebit, Parent: model.RootID},
		{ID: "2", Name: "Checking", Type: model.AccountTypeDebit, Parent: "1"},
		{ID: "3", Name: "Savings", Type: model.AccountTypeDebit, Parent: "1"},
		{ID: "4", Name: "Liabilities", Type: model.AccountTypeCredit, Parent: model.RootID},
		{ID: "5", Name: "Credit Card", Type: model.AccountTypeCredit, Parent: "4"},
		{ID: "6", Name: "Equity", Type: model.AccountTypeCredit, Parent: model.RootID},
		{ID: "7", Name: "Opening Balances", Type: model.AccountTypeCredit, Parent: "6"},
		{ID: "8", Name: "Income", Type: model.AccountTypeCredit, Parent: model.RootID},
		{ID: "9", Name: "Salary", Type: model.AccountTypeCredit, Parent: "8"},
		{ID: "10", Name: "Interest", Type: model.AccountTypeCredit, Parent: "8"},
		{ID: "11", Name: "Expenses", Type: model.AccountTypeDebit, Parent: model.RootID},
		{ID: "12", Name: "Groceries", Type: model.AccountTypeDebit, Parent: "11"},
		{ID: "13", Name: "Rent", Type: model.AccountTypeDebit, Parent: "11"},
		{ID: "14", Name: "Utilities", Type: model.AccountTypeDebit, Parent: "11"},
		{ID: "15", Name: "Software & Subscriptions", Type: model.AccountTypeDebit, Parent: "11"},
		{ID: "16", Name: "Uncategorized", Type: model.AccountTypeDebit, Parent: "11"},
	}
}

// Seed inserts accounts into s in order. It stops at the first rejected
// account.
func Seed(s *ledger.Store, accounts []model.Account) error {
	for _, a := range accounts {
		if err := s.InsertAccount(a); err != nil {
			return fmt.Errorf("seeding account %s (%s): %w", a.ID, a.Name, err)
		}
	}
	return nil
}
