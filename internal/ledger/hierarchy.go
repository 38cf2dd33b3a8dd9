package ledger

import (
	"fmt"

	"github.com/money-ledger/money/internal/model"
)

// Chain is one account followed by its ancestors, ending at a top-level
// account.
type Chain []model.Account

// Leaf returns the account the chain was built for.
func (c Chain) Leaf() model.Account {
	return c[0]
}

// Root returns the top of the chain.
func (c Chain) Root() model.Account {
	return c[len(c)-1]
}

// Depth is the number of ancestors above the leaf.
func (c Chain) Depth() int {
	return len(c) - 1
}

// ResolveType decides the type of an account being created under parentID.
// A parent that exists always dictates the type; otherwise the candidate
// must itself be a valid polarity.
func (s *Store) ResolveType(candidate model.AccountType, parentID string) (model.AccountType, error) {
	if parentID != model.RootID {
		if i, ok := s.accountIdx[parentID]; ok {
			return s.accounts[i].Type, nil
		}
	}
	if !candidate.Valid() {
		return "", fmt.Errorf("%w %q", ErrInvalidType, candidate)
	}
	return candidate, nil
}

// ChartOfAccounts returns one chain per account in store order. Walking
// stops at the root sentinel or at a parent id that no longer resolves.
func (s *Store) ChartOfAccounts() ([]Chain, error) {
	chart := make([]Chain, 0, len(s.accounts))
	for _, a := range s.accounts {
		chain, err := s.chain(a.ID)
		if err != nil {
			return nil, err
		}
		chart = append(chart, chain)
	}
	return chart, nil
}

// Ancestry returns the chain for a single account.
func (s *Store) Ancestry(accountID string) (Chain, error) {
	if _, ok := s.accountIdx[accountID]; !ok {
		return nil, &NotFoundError{Kind: KindAccount, ID: accountID}
	}
	return s.chain(accountID)
}

func (s *Store) chain(accountID string) (Chain, error) {
	visited := make(map[string]bool, 4)
	var ids []string
	var chain Chain

	for cur := accountID; cur != model.RootID; {
		i, ok := s.accountIdx[cur]
		if !ok {
			break
		}
		ids = append(ids, cur)
		if visited[cur] {
			return nil, &CycleError{Chain: ids}
		}
		visited[cur] = true

		a := s.accounts[i]
		chain = append(chain, a.Clone())
		cur = a.Parent
	}
	return chain, nil
}

// inheritDown sets typ on every account below accountID. The walk visits
// each account once, so a parent cycle ends it.
func (s *Store) inheritDown(accountID string, typ model.AccountType) {
	visited := map[string]bool{accountID: true}
	queue := []string{accountID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for i := range s.accounts {
			a := &s.accounts[i]
			if a.Parent != cur || visited[a.ID] {
				continue
			}
			visited[a.ID] = true
			a.Type = typ
			queue = append(queue, a.ID)
		}
	}
}
