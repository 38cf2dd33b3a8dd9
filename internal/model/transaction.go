package model

import (
	"github.com/shopspring/decimal"
)

// Transaction moves Amount from the Credit account to the Debit account.
type Transaction struct {
	ID     string          `json:"id" validate:"required,number"`
	Credit string          `json:"credit" validate:"required,number,nefield=Debit"`
	Debit  string          `json:"debit" validate:"required,number"`
	Amount decimal.Decimal `json:"amount"`
	Memo   string          `json:"memo"`
	Date   Date            `json:"date"`
}

// Touches reports whether the transaction has accountID on either side.
func (t Transaction) Touches(accountID string) bool {
	return t.Debit == accountID || t.Credit == accountID
}
