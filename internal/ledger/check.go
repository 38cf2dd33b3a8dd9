package ledger

import (
	"errors"
	"fmt"

	"github.com/money-ledger/money/internal/model"
)

// Rule names a consistency rule reported by Check.
type Rule string

const (
	RuleDanglingParent    Rule = "dangling-parent"
	RuleDanglingReference Rule = "dangling-reference"
	RuleCycle             Rule = "cycle"
	RuleStaleBackref      Rule = "stale-backref"
)

// Issue describes a single consistency violation.
type Issue struct {
	Rule        Rule
	Kind        Kind
	ID          string
	Description string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s [%s %s]: %s", i.Rule, i.Kind, i.ID, i.Description)
}

// Check reports what deletes and hand-edited documents can leave behind:
// missing parents, dangling transaction sides, parent cycles and stale id
// sets. Types need no check; inserts push them down to every descendant.
func (s *Store) Check() []Issue {
	var issues []Issue

	for _, a := range s.accounts {
		if a.IsRoot() {
			continue
		}
		if _, ok := s.accountIdx[a.Parent]; !ok {
			issues = append(issues, Issue{
				Rule:        RuleDanglingParent,
				Kind:        KindAccount,
				ID:          a.ID,
				Description: fmt.Sprintf("parent %s does not exist", a.Parent),
			})
		}
	}

	// One report per cycle is enough; every member would otherwise repeat it.
	inCycle := make(map[string]bool)
	for _, a := range s.accounts {
		if inCycle[a.ID] {
			continue
		}
		_, err := s.chain(a.ID)
		var ce *CycleError
		if errors.As(err, &ce) {
			for _, member := range ce.Chain {
				inCycle[member] = true
			}
			issues = append(issues, Issue{
				Rule:        RuleCycle,
				Kind:        KindAccount,
				ID:          a.ID,
				Description: ce.Error(),
			})
		}
	}

	for _, t := range s.transactions {
		for _, side := range []string{t.Debit, t.Credit} {
			if _, ok := s.accountIdx[side]; !ok {
				issues = append(issues, Issue{
					Rule:        RuleDanglingReference,
					Kind:        KindTransaction,
					ID:          t.ID,
					Description: fmt.Sprintf("account %s does not exist", side),
				})
			}
		}
	}

	for _, a := range s.accounts {
		issues = append(issues, s.staleBackrefs(a)...)
	}
	return issues
}

func (s *Store) staleBackrefs(a model.Account) []Issue {
	var issues []Issue
	for _, child := range a.Subaccounts {
		c, ok := s.Account(child)
		if !ok || c.Parent != a.ID {
			issues = append(issues, Issue{
				Rule:        RuleStaleBackref,
				Kind:        KindAccount,
				ID:          a.ID,
				Description: fmt.Sprintf("lists subaccount %s which is not its child", child),
			})
		}
	}
	for _, txnID := range a.Transactions {
		t, ok := s.Transaction(txnID)
		if !ok || !t.Touches(a.ID) {
			issues = append(issues, Issue{
				Rule:        RuleStaleBackref,
				Kind:        KindAccount,
				ID:          a.ID,
				Description: fmt.Sprintf("lists transaction %s which does not touch it", txnID),
			})
		}
	}
	return issues
}
