package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/money-ledger/money/internal/model"
)

func rules(issues []Issue) []Rule {
	out := make([]Rule, len(issues))
	for i, is := range issues {
		out[i] = is.Rule
	}
	return out
}

func TestCheck_Clean(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.InsertTransaction(txn("1", "2", "4", "10")))
	assert.Empty(t, s.Check())
}

func TestCheck_AfterAccountDelete(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.InsertTransaction(txn("1", "2", "4", "10")))
	require.NoError(t, s.DeleteAccount("3"))
	require.NoError(t, s.DeleteAccount("2"))

	issues := s.Check()
	assert.ElementsMatch(t, []Rule{RuleDanglingParent, RuleDanglingReference}, rules(issues))

	for _, is := range issues {
		switch is.Rule {
		case RuleDanglingParent:
			assert.Equal(t, "4", is.ID)
			assert.Equal(t, KindAccount, is.Kind)
		case RuleDanglingReference:
			assert.Equal(t, "1", is.ID)
			assert.Contains(t, is.Error(), "account 2 does not exist")
		}
	}
}

func TestCheck_Cycle(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.InsertAccount(account("1", "2", model.AccountTypeDebit)))
	require.NoError(t, s.InsertAccount(account("2", "1", model.AccountTypeDebit)))

	issues := s.Check()
	assert.Equal(t, []Rule{RuleCycle}, rules(issues), "one report per cycle")
}

func TestCheck_ChildInsertedFirst(t *testing.T) {
	s := NewStore()
	// The child arrives first, as it can in a hand-edited document.
	require.NoError(t, s.InsertAccount(account("2", "1", model.AccountTypeCredit)))
	require.NoError(t, s.InsertAccount(account("1", model.RootID, model.AccountTypeDebit)))

	assert.Empty(t, s.Check())
}

func TestCheck_StaleBackref(t *testing.T) {
	s := NewStore()
	a := account("1", model.RootID, model.AccountTypeDebit)
	a.Subaccounts = []string{"5"}
	a.Transactions = []string{"7"}
	require.NoError(t, s.InsertAccount(a))

	issues := s.Check()
	assert.Equal(t, []Rule{RuleStaleBackref, RuleStaleBackref}, rules(issues))
}
