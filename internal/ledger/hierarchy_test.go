package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/money-ledger/money/internal/model"
)

func chainIDs(c Chain) []string {
	out := make([]string, len(c))
	for i, a := range c {
		out[i] = a.ID
	}
	return out
}

func TestResolveType(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name      string
		candidate model.AccountType
		parent    string
		want      model.AccountType
		wantErr   bool
	}{
		{"root takes candidate", model.AccountTypeCredit, model.RootID, model.AccountTypeCredit, false},
		{"root rejects unknown", "x", model.RootID, "", true},
		{"root rejects empty", "", model.RootID, "", true},
		{"child forced to debit parent", model.AccountTypeCredit, "1", model.AccountTypeDebit, false},
		{"child forced to credit parent", model.AccountTypeDebit, "3", model.AccountTypeCredit, false},
		{"child ignores invalid candidate", "x", "3", model.AccountTypeCredit, false},
		{"missing parent falls back", model.AccountTypeDebit, "99", model.AccountTypeDebit, false},
		{"missing parent rejects unknown", "x", "99", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ResolveType(tt.candidate, tt.parent)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeInheritance(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.InsertAccount(account("1", model.RootID, model.AccountTypeDebit)))
	require.NoError(t, s.InsertAccount(account("2", "1", model.AccountTypeCredit)))

	child, ok := s.Account("2")
	require.True(t, ok)
	assert.Equal(t, model.AccountTypeDebit, child.Type)

	require.NoError(t, s.InsertAccount(account("3", model.RootID, model.AccountTypeCredit)))
	root, _ := s.Account("3")
	assert.Equal(t, model.AccountTypeCredit, root.Type)
}

func TestTypeInheritance_ParentInsertedLast(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.InsertAccount(account("3", "2", model.AccountTypeDebit)))
	require.NoError(t, s.InsertAccount(account("2", "1", model.AccountTypeDebit)))
	require.NoError(t, s.InsertAccount(account("1", model.RootID, model.AccountTypeCredit)))

	for _, accountID := range []string{"1", "2", "3"} {
		a, ok := s.Account(accountID)
		require.True(t, ok)
		assert.Equal(t, model.AccountTypeCredit, a.Type, accountID)
	}
}

func TestTypeInheritance_CycleTerminates(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.InsertAccount(account("1", "2", model.AccountTypeDebit)))
	require.NoError(t, s.InsertAccount(account("2", "1", model.AccountTypeCredit)))

	for _, accountID := range []string{"1", "2"} {
		a, _ := s.Account(accountID)
		assert.Equal(t, model.AccountTypeDebit, a.Type, accountID)
	}
}

func TestChartOfAccounts(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.InsertAccount(account("5", "2", "")))

	chart, err := s.ChartOfAccounts()
	require.NoError(t, err)
	require.Len(t, chart, 5)

	assert.Equal(t, []string{"1"}, chainIDs(chart[0]))
	assert.Equal(t, []string{"2", "1"}, chainIDs(chart[1]))
	assert.Equal(t, []string{"3"}, chainIDs(chart[2]))
	assert.Equal(t, []string{"4", "3"}, chainIDs(chart[3]))
	assert.Equal(t, []string{"5", "2", "1"}, chainIDs(chart[4]))

	assert.Equal(t, "5", chart[4].Leaf().ID)
	assert.Equal(t, "1", chart[4].Root().ID)
	assert.Equal(t, 2, chart[4].Depth())
}

func TestChartOfAccounts_Empty(t *testing.T) {
	chart, err := NewStore().ChartOfAccounts()
	require.NoError(t, err)
	assert.Empty(t, chart)
}

func TestChartOfAccounts_Cycle(t *testing.T) {
	s := NewStore()
	// A's parent does not exist yet, so it keeps its own type; B then closes
	// the loop A -> B -> A.
	require.NoError(t, s.InsertAccount(account("1", "2", model.AccountTypeDebit)))
	require.NoError(t, s.InsertAccount(account("2", "1", model.AccountTypeDebit)))

	_, err := s.ChartOfAccounts()
	var ce *CycleError
	require.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, ErrCycle)
	assert.Equal(t, []string{"1", "2", "1"}, ce.Chain)
}

func TestChartOfAccounts_SelfParent(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.InsertAccount(account("1", "1", model.AccountTypeDebit)))

	_, err := s.ChartOfAccounts()
	assert.ErrorIs(t, err, ErrCycle)
}

func TestChartOfAccounts_DanglingParent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.DeleteAccount("1"))

	chart, err := s.ChartOfAccounts()
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, chainIDs(chart[0]), "chain stops at the missing parent")
}

func TestAncestry(t *testing.T) {
	s := newTestStore(t)
	c, err := s.Ancestry("4")
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "3"}, chainIDs(c))

	_, err = s.Ancestry("99")
	assert.ErrorIs(t, err, ErrNotFound)
}
