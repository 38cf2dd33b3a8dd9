package model

import (
	"fmt"
	"slices"
	"strings"
)

// RootID is the parent id of top-level accounts.
const RootID = "0"

// AccountType is the polarity of an account.
type AccountType string

const (
	AccountTypeDebit  AccountType = "Debit"
	AccountTypeCredit AccountType = "Credit"
)

// ParseAccountType accepts the canonical names as well as the short
// "d"/"c" tokens older ledger files were written with.
func ParseAccountType(s string) (AccountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "d", "debit":
		return AccountTypeDebit, nil
	case "c", "credit":
		return AccountTypeCredit, nil
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

// Valid reports whether t is one of the two polarities.
func (t AccountType) Valid() bool {
	return t == AccountTypeDebit || t == AccountTypeCredit
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *AccountType) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Account is a named ledger bucket. Subaccounts and Transactions are
// informational back-references; Parent is authoritative.
type Account struct {
	ID           string      `json:"id" validate:"required,number"`
	Subaccounts  []string    `json:"subaccounts"`
	Name         string      `json:"name" validate:"required"`
	Type         AccountType `json:"type" validate:"oneof=Debit Credit"`
	Transactions []string    `json:"transactions"`
	Parent       string      `json:"parent" validate:"required,number"`
}

// IsRoot reports whether the account sits at the top of the hierarchy.
func (a Account) IsRoot() bool {
	return a.Parent == RootID
}

// Clone returns a copy that shares no slices with a.
func (a Account) Clone() Account {
	a.Subaccounts = slices.Clone(a.Subaccounts)
	a.Transactions = slices.Clone(a.Transactions)
	return a
}

// AddSubaccount records a child id once.
func (a *Account) AddSubaccount(id string) {
	a.Subaccounts = addOnce(a.Subaccounts, id)
}

// RemoveSubaccount drops a child id if present.
func (a *Account) RemoveSubaccount(id string) {
	a.Subaccounts = remove(a.Subaccounts, id)
}

// AddTransaction records a transaction id once.
func (a *Account) AddTransaction(id string) {
	a.Transactions = addOnce(a.Transactions, id)
}

// RemoveTransaction drops a transaction id if present.
func (a *Account) RemoveTransaction(id string) {
	a.Transactions = remove(a.Transactions, id)
}

func addOnce(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func remove(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(s string) bool { return s == id })
}
