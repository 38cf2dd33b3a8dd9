// Package storage converts a ledger.Store to and from its persisted
// document and reads and writes that document through a Backend.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/money-ledger/money/internal/ledger"
	"github.com/money-ledger/money/internal/model"
)

// Document is the persisted shape of a ledger.
type Document struct {
	Accounts     []model.Account     `json:"accounts"`
	Transactions []model.Transaction `json:"transactions"`
}

// Snapshot copies the store into a Document. Nil sets become empty arrays
// so the output always carries every field.
func Snapshot(s *ledger.Store) Document {
	doc := Document{
		Accounts:     make([]model.Account, 0, s.NumAccounts()),
		Transactions: make([]model.Transaction, 0, s.NumTransactions()),
	}
	for a := range s.Accounts() {
		if a.Subaccounts == nil {
			a.Subaccounts = []string{}
		}
		if a.Transactions == nil {
			a.Transactions = []string{}
		}
		doc.Accounts = append(doc.Accounts, a)
	}
	for t := range s.Transactions() {
		doc.Transactions = append(doc.Transactions, t)
	}
	return doc
}

// Restore builds a store from a Document. Accounts are inserted before
// transactions so references resolve; any rejected insert aborts the load.
func Restore(doc Document) (*ledger.Store, error) {
	s := ledger.NewStore()
	for i, a := range doc.Accounts {
		if err := s.InsertAccount(a); err != nil {
			return nil, fmt.Errorf("account %d: %w", i, err)
		}
	}
	for i, t := range doc.Transactions {
		if err := s.InsertTransaction(t); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return s, nil
}

// Encode serializes the store as an indented JSON document.
func Encode(s *ledger.Store) ([]byte, error) {
	data, err := json.MarshalIndent(Snapshot(s), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding ledger: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a JSON document into a store. Empty input yields an empty
// store.
func Decode(data []byte) (*ledger.Store, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return ledger.NewStore(), nil
	}
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding ledger: %w", err)
	}
	s, err := Restore(doc)
	if err != nil {
		return nil, fmt.Errorf("decoding ledger: %w", err)
	}
	return s, nil
}
