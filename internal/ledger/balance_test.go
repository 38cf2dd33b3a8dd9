package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/money-ledger/money/internal/model"
)

func TestBalanceSummary_Scenario(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.InsertAccount(account("1", model.RootID, model.AccountTypeDebit)))
	require.NoError(t, s.InsertAccount(account("2", model.RootID, model.AccountTypeCredit)))
	require.NoError(t, s.InsertTransaction(txn("1", "1", "2", "100.00")))
	require.NoError(t, s.InsertTransaction(txn("2", "2", "1", "30.00")))

	summary := s.BalanceSummary()
	require.Len(t, summary, 2)

	assert.Equal(t, "1", summary[0].Account.ID)
	assert.Equal(t, "70.00", summary[0].Net.StringFixed(2))
	assert.Equal(t, "100.00", summary[0].Debits.StringFixed(2))
	assert.Equal(t, "30.00", summary[0].Credits.StringFixed(2))

	// The credit account sees the mirror image.
	assert.Equal(t, "2", summary[1].Account.ID)
	assert.Equal(t, "70.00", summary[1].Net.StringFixed(2))
}

func TestBalanceSummary_SkipsIdleAccounts(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.InsertTransaction(txn("1", "2", "4", "12.50")))

	summary := s.BalanceSummary()
	require.Len(t, summary, 2)
	assert.Equal(t, "2", summary[0].Account.ID)
	assert.Equal(t, "4", summary[1].Account.ID)
	assert.Equal(t, "12.50", summary[1].Net.StringFixed(2))
}

func TestBalanceSummary_Empty(t *testing.T) {
	assert.Nil(t, NewStore().BalanceSummary())
	assert.Empty(t, newTestStore(t).BalanceSummary())
}

func TestBalanceSummary_NegativeNet(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.InsertTransaction(txn("1", "4", "2", "40")))

	summary := s.BalanceSummary()
	require.Len(t, summary, 2)
	assert.Equal(t, "-40.00", summary[0].Net.StringFixed(2))
	assert.Equal(t, "-40.00", summary[1].Net.StringFixed(2))
}

func TestSections(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.InsertAccount(account("5", "1", "")))
	require.NoError(t, s.InsertTransaction(txn("1", "2", "4", "100")))
	require.NoError(t, s.InsertTransaction(txn("2", "5", "4", "50")))
	require.NoError(t, s.InsertTransaction(txn("3", "4", "2", "25")))

	sum := Sections(s.BalanceSummary())

	require.Len(t, sum.Debits.Rows, 2)
	assert.Equal(t, model.AccountTypeDebit, sum.Debits.Type)
	assert.Equal(t, "75.00", sum.Debits.Rows[0].Net.StringFixed(2))
	assert.Equal(t, "75.00", sum.Debits.Rows[0].RunningTotal.StringFixed(2))
	assert.Equal(t, "50.00", sum.Debits.Rows[1].Net.StringFixed(2))
	assert.Equal(t, "125.00", sum.Debits.Rows[1].RunningTotal.StringFixed(2))
	assert.Equal(t, "125.00", sum.Debits.Total.StringFixed(2))

	require.Len(t, sum.Credits.Rows, 1)
	assert.Equal(t, "125.00", sum.Credits.Total.StringFixed(2))
	assert.True(t, sum.Debits.Total.Equal(sum.Credits.Total), "double entry keeps sections equal")
}

func TestSections_Empty(t *testing.T) {
	sum := Sections(nil)
	assert.Empty(t, sum.Debits.Rows)
	assert.True(t, sum.Credits.Total.IsZero())
}
