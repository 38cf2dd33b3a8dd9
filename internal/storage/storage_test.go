package storage

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/money-ledger/money/internal/ledger"
	"github.com/money-ledger/money/internal/model"
)

// legacyDocument is written the way the first releases stored ledgers:
// short type tokens and children listed before their parents.
const legacyDocument = `{
  "accounts": [
    {"id": "2", "subaccounts": [], "name": "Checking", "type": "d", "transactions": ["1"], "parent": "1"},
    {"id": "1", "subaccounts": ["2"], "name": "Assets", "type": "d", "transactions": [], "parent": "0"},
    {"id": "3", "subaccounts": [], "name": "Income", "type": "c", "transactions": ["1"], "parent": "0"}
  ],
  "transactions": [
    {"id": "1", "credit": "3", "debit": "2", "amount": "1002.33", "memo": "Hello", "date": "2022-01-02"}
  ]
}`

func sampleStore(t *testing.T) *ledger.Store {
	t.Helper()
	s := ledger.NewStore()
	_, err := s.CreateAccount(ledger.NewAccountParams{Name: "Assets", Type: model.AccountTypeDebit})
	require.NoError(t, err)
	_, err = s.CreateAccount(ledger.NewAccountParams{Name: "Checking", Parent: "1"})
	require.NoError(t, err)
	_, err = s.CreateAccount(ledger.NewAccountParams{Name: "Income", Type: model.AccountTypeCredit})
	require.NoError(t, err)
	_, err = s.CreateTransaction(ledger.NewTransactionParams{
		Debit:  "2",
		Credit: "3",
		Amount: decimal.RequireFromString("1002.33"),
		Memo:   "Hello",
		Date:   model.NewDate(2022, 1, 2),
	})
	require.NoError(t, err)
	return s
}

func TestRoundTrip(t *testing.T) {
	s := sampleStore(t)

	data, err := Encode(s)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	want := Snapshot(s)
	have := Snapshot(got)
	assert.ElementsMatch(t, want.Accounts, have.Accounts)
	require.Len(t, have.Transactions, 1)
	assert.Equal(t, want.Transactions[0].ID, have.Transactions[0].ID)
	assert.True(t, want.Transactions[0].Amount.Equal(have.Transactions[0].Amount))
	assert.True(t, want.Transactions[0].Date.Equal(have.Transactions[0].Date))
	assert.Equal(t, want.Transactions[0].Memo, have.Transactions[0].Memo)
}

func TestRoundTrip_ChildStoredBeforeParent(t *testing.T) {
	s := ledger.NewStore()
	require.NoError(t, s.InsertAccount(model.Account{ID: "2", Name: "Checking", Type: model.AccountTypeCredit, Parent: "1"}))
	require.NoError(t, s.InsertAccount(model.Account{ID: "1", Name: "Assets", Type: model.AccountTypeDebit, Parent: model.RootID}))
	s.Sort(ledger.KindAccount, ledger.Ascending)

	data, err := Encode(s)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, Snapshot(s).Accounts, Snapshot(got).Accounts)
	checking, ok := got.Account("2")
	require.True(t, ok)
	assert.Equal(t, model.AccountTypeDebit, checking.Type)
}

func TestEncode_Shape(t *testing.T) {
	s := ledger.NewStore()
	require.NoError(t, s.InsertAccount(model.Account{ID: "1", Name: "Cash", Type: model.AccountTypeDebit, Parent: model.RootID}))

	data, err := Encode(s)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, `"subaccounts": []`)
	assert.Contains(t, contents, `"transactions": []`)
	assert.Contains(t, contents, `"type": "Debit"`)
	assert.Contains(t, contents, `"parent": "0"`)
}

func TestDecode_Legacy(t *testing.T) {
	s, err := Decode([]byte(legacyDocument))
	require.NoError(t, err)
	assert.Equal(t, 3, s.NumAccounts())

	checking, ok := s.Account("2")
	require.True(t, ok)
	assert.Equal(t, model.AccountTypeDebit, checking.Type)
	assert.Equal(t, []string{"1"}, checking.Transactions)

	assets, _ := s.Account("1")
	assert.Equal(t, []string{"2"}, assets.Subaccounts)

	txn, ok := s.Transaction("1")
	require.True(t, ok)
	assert.Equal(t, "1002.33", txn.Amount.StringFixed(2))
	assert.Equal(t, "2022-01-02", txn.Date.String())

	assert.Empty(t, s.Check())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"duplicate account", `{"accounts":[{"id":"1","name":"A","type":"Debit","parent":"0"},{"id":"1","name":"B","type":"Debit","parent":"0"}],"transactions":[]}`, ledger.ErrDuplicateID},
		{"dangling debit", `{"accounts":[{"id":"1","name":"A","type":"Debit","parent":"0"}],"transactions":[{"id":"1","debit":"9","credit":"1","amount":"1","memo":"","date":"2022-01-02"}]}`, ledger.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Decode([]byte(`{"accounts": [`))
	assert.ErrorContains(t, err, "decoding ledger")

	_, err = Decode([]byte(`{"accounts":[],"budgets":[]}`))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestDecode_Empty(t *testing.T) {
	s, err := Decode([]byte("  \n"))
	require.NoError(t, err)
	assert.Zero(t, s.NumAccounts())
}

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()
	file, err := Open(filepath.Join(dir, "ledger.json"))
	require.NoError(t, err)
	bolt, err := Open(filepath.Join(dir, "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = bolt.Close() })
	return map[string]Backend{"file": file, "bolt": bolt}
}

func TestBackends_SaveLoad(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			empty, err := Load(ctx, b)
			require.NoError(t, err, "missing document loads as an empty ledger")
			assert.Zero(t, empty.NumAccounts())

			s := sampleStore(t)
			require.NoError(t, Save(ctx, b, s))

			got, err := Load(ctx, b)
			require.NoError(t, err)
			assert.Equal(t, s.NumAccounts(), got.NumAccounts())
			assert.Equal(t, s.NumTransactions(), got.NumTransactions())

			// A second save replaces rather than appends.
			require.NoError(t, s.DeleteTransaction("1"))
			require.NoError(t, Save(ctx, b, s))
			got, err = Load(ctx, b)
			require.NoError(t, err)
			assert.Zero(t, got.NumTransactions())
		})
	}
}

func TestOpen_PicksBackend(t *testing.T) {
	dir := t.TempDir()
	b, err := Open(filepath.Join(dir, "ledger.json"))
	require.NoError(t, err)
	assert.IsType(t, &FileBackend{}, b)

	b, err = Open(filepath.Join(dir, "ledger.BOLT"))
	require.NoError(t, err)
	defer b.Close()
	assert.IsType(t, &BoltBackend{}, b)
}

func TestFileBackend_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	b := NewFileBackend(filepath.Join(dir, "ledger.json"))
	require.NoError(t, Save(context.Background(), b, sampleStore(t)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"ledger.json"}, names)
}

func TestLoad_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(context.Background(), NewFileBackend(path))
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "load", pe.Op)
	assert.Equal(t, path, pe.Location)
}

func TestSave_Failure(t *testing.T) {
	dir := t.TempDir()
	// The target's parent is a regular file, so nothing can be created under it.
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	s := sampleStore(t)
	err := Save(context.Background(), NewFileBackend(filepath.Join(blocker, "ledger.json")), s)
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "save", pe.Op)
	assert.Equal(t, 3, s.NumAccounts(), "in-memory state survives a failed save")
}

func TestSnapshot_Order(t *testing.T) {
	s := sampleStore(t)
	s.Sort(ledger.KindAccount, ledger.Descending)

	doc := Snapshot(s)
	got := make([]string, 0, len(doc.Accounts))
	for _, a := range doc.Accounts {
		got = append(got, a.ID)
	}
	assert.True(t, slices.Equal([]string{"3", "2", "1"}, got))
}

func TestLoad_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, NewFileBackend(filepath.Join(t.TempDir(), "ledger.json")))
	assert.ErrorIs(t, err, context.Canceled)
}
