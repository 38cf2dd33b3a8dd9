// Package ledger holds the in-memory set of accounts and transactions and
// the read-side views computed from it.
package ledger

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/money-ledger/money/internal/id"
	"github.com/money-ledger/money/internal/model"
)

// Kind selects one of the two collections.
type Kind int

const (
	KindAccount Kind = iota
	KindTransaction
)

func (k Kind) String() string {
	if k == KindTransaction {
		return "transaction"
	}
	return "account"
}

// ParseKind accepts singular, plural and one-letter forms.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "a", "account", "accounts":
		return KindAccount, nil
	case "t", "txn", "transaction", "transactions":
		return KindTransaction, nil
	}
	return 0, fmt.Errorf("unknown collection %q", s)
}

// Direction is a sort order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// ParseDirection maps "desc"/"descending" to Descending. Every other token,
// including the empty string, means Ascending.
func ParseDirection(token string) Direction {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "desc", "descending":
		return Descending
	}
	return Ascending
}

// Store owns the accounts and transactions of one ledger. It is not safe
// for concurrent use; callers hand it between owners instead of sharing it.
type Store struct {
	accounts     []model.Account
	accountIdx   map[string]int
	transactions []model.Transaction
	txnIdx       map[string]int
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accountIdx: make(map[string]int),
		txnIdx:     make(map[string]int),
	}
}

// NumAccounts returns the number of accounts.
func (s *Store) NumAccounts() int { return len(s.accounts) }

// NumTransactions returns the number of transactions.
func (s *Store) NumTransactions() int { return len(s.transactions) }

// InsertAccount adds a new account. The account's type is resolved against
// its parent first, so a child always takes its parent's polarity. Accounts
// already stored below the new one take its type in turn.
func (s *Store) InsertAccount(a model.Account) error {
	if _, err := id.Parse(a.ID); err != nil {
		return fmt.Errorf("inserting account: %w", err)
	}
	if a.ID == model.RootID {
		return fmt.Errorf("inserting account: id %s is reserved for the root", model.RootID)
	}
	if _, ok := s.accountIdx[a.ID]; ok {
		return &DuplicateIDError{Kind: KindAccount, ID: a.ID}
	}
	if a.Parent == "" {
		a.Parent = model.RootID
	}

	typ, err := s.ResolveType(a.Type, a.Parent)
	if err != nil {
		return fmt.Errorf("inserting account %s: %w", a.ID, err)
	}
	a = a.Clone()
	a.Type = typ
	if err := model.ValidateAccount(a); err != nil {
		return err
	}

	for _, other := range s.accounts {
		if other.Parent == a.ID {
			a.AddSubaccount(other.ID)
		}
	}
	s.accounts = append(s.accounts, a)
	s.accountIdx[a.ID] = len(s.accounts) - 1

	if p, ok := s.accountIdx[a.Parent]; ok && !a.IsRoot() {
		s.accounts[p].AddSubaccount(a.ID)
	}
	s.inheritDown(a.ID, a.Type)
	return nil
}

// DeleteAccount removes an account. Children and transactions that refer to
// it are left in place.
func (s *Store) DeleteAccount(accountID string) error {
	i, ok := s.accountIdx[accountID]
	if !ok {
		return &NotFoundError{Kind: KindAccount, ID: accountID}
	}
	parent := s.accounts[i].Parent

	s.accounts = slices.Delete(s.accounts, i, i+1)
	s.reindexAccounts()

	if p, ok := s.accountIdx[parent]; ok && parent != model.RootID {
		s.accounts[p].RemoveSubaccount(accountID)
	}
	return nil
}

// InsertTransaction adds a new transaction. Both sides must name existing
// accounts.
func (s *Store) InsertTransaction(t model.Transaction) error {
	if _, err := id.Parse(t.ID); err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	if _, ok := s.txnIdx[t.ID]; ok {
		return &DuplicateIDError{Kind: KindTransaction, ID: t.ID}
	}
	if err := model.ValidateTransaction(t); err != nil {
		return err
	}
	for _, side := range []string{t.Debit, t.Credit} {
		if _, ok := s.accountIdx[side]; !ok {
			return fmt.Errorf("inserting transaction %s: %w", t.ID, &NotFoundError{Kind: KindAccount, ID: side})
		}
	}

	s.transactions = append(s.transactions, t)
	s.txnIdx[t.ID] = len(s.transactions) - 1
	s.accounts[s.accountIdx[t.Debit]].AddTransaction(t.ID)
	s.accounts[s.accountIdx[t.Credit]].AddTransaction(t.ID)
	return nil
}

// DeleteTransaction removes a transaction and its back-references.
func (s *Store) DeleteTransaction(txnID string) error {
	i, ok := s.txnIdx[txnID]
	if !ok {
		return &NotFoundError{Kind: KindTransaction, ID: txnID}
	}
	t := s.transactions[i]

	s.transactions = slices.Delete(s.transactions, i, i+1)
	s.reindexTransactions()

	for _, side := range []string{t.Debit, t.Credit} {
		if a, ok := s.accountIdx[side]; ok {
			s.accounts[a].RemoveTransaction(txnID)
		}
	}
	return nil
}

// NextID returns one past the largest id in the collection, or id.First
// when the collection is empty.
func (s *Store) NextID(kind Kind) (string, error) {
	var ids []string
	if kind == KindTransaction {
		ids = make([]string, 0, len(s.transactions))
		for _, t := range s.transactions {
			ids = append(ids, t.ID)
		}
	} else {
		ids = make([]string, 0, len(s.accounts))
		for _, a := range s.accounts {
			ids = append(ids, a.ID)
		}
	}

	next, err := id.Next(ids)
	if err != nil {
		return "", &AllocationError{Kind: kind, Err: err}
	}
	return next, nil
}

// Sort reorders a collection by numeric id. The sort is stable.
func (s *Store) Sort(kind Kind, dir Direction) {
	cmp := func(a, b string) int {
		if dir == Descending {
			return id.Compare(b, a)
		}
		return id.Compare(a, b)
	}

	if kind == KindTransaction {
		slices.SortStableFunc(s.transactions, func(a, b model.Transaction) int { return cmp(a.ID, b.ID) })
		s.reindexTransactions()
		return
	}
	slices.SortStableFunc(s.accounts, func(a, b model.Account) int { return cmp(a.ID, b.ID) })
	s.reindexAccounts()
}

// Account returns a copy of the account with the given id.
func (s *Store) Account(accountID string) (model.Account, bool) {
	i, ok := s.accountIdx[accountID]
	if !ok {
		return model.Account{}, false
	}
	return s.accounts[i].Clone(), true
}

// Accounts yields copies of all accounts in store order.
func (s *Store) Accounts() iter.Seq[model.Account] {
	return func(yield func(model.Account) bool) {
		for _, a := range s.accounts {
			if !yield(a.Clone()) {
				return
			}
		}
	}
}

// Transaction returns the transaction with the given id.
func (s *Store) Transaction(txnID string) (model.Transaction, bool) {
	i, ok := s.txnIdx[txnID]
	if !ok {
		return model.Transaction{}, false
	}
	return s.transactions[i], true
}

// Transactions yields all transactions in store order.
func (s *Store) Transactions() iter.Seq[model.Transaction] {
	return func(yield func(model.Transaction) bool) {
		for _, t := range s.transactions {
			if !yield(t) {
				return
			}
		}
	}
}

// TransactionsForAccount returns the register of an account: every
// transaction with the account on either side, in store order.
func (s *Store) TransactionsForAccount(accountID string) ([]model.Transaction, error) {
	if _, ok := s.accountIdx[accountID]; !ok {
		return nil, &NotFoundError{Kind: KindAccount, ID: accountID}
	}
	register := []model.Transaction{}
	for _, t := range s.transactions {
		if t.Touches(accountID) {
			register = append(register, t)
		}
	}
	return register, nil
}

func (s *Store) reindexAccounts() {
	clear(s.accountIdx)
	for i, a := range s.accounts {
		s.accountIdx[a.ID] = i
	}
}

func (s *Store) reindexTransactions() {
	clear(s.txnIdx)
	for i, t := range s.transactions {
		s.txnIdx[t.ID] = i
	}
}
