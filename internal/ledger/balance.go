package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/money-ledger/money/internal/model"
)

// Balance is the net movement of one account.
type Balance struct {
	Account model.Account
	Debits  decimal.Decimal
	Credits decimal.Decimal
	Net     decimal.Decimal
}

// BalanceSummary computes a Balance for every account that appears on at
// least one transaction, in store order. Debit accounts net debits minus
// credits; credit accounts the reverse.
func (s *Store) BalanceSummary() []Balance {
	if len(s.accounts) == 0 {
		return nil
	}

	debits := make(map[string]decimal.Decimal)
	credits := make(map[string]decimal.Decimal)
	for _, t := range s.transactions {
		debits[t.Debit] = debits[t.Debit].Add(t.Amount)
		credits[t.Credit] = credits[t.Credit].Add(t.Amount)
	}

	var out []Balance
	for _, a := range s.accounts {
		d, hasDebit := debits[a.ID]
		c, hasCredit := credits[a.ID]
		if !hasDebit && !hasCredit {
			continue
		}
		net := d.Sub(c)
		if a.Type == model.AccountTypeCredit {
			net = c.Sub(d)
		}
		out = append(out, Balance{Account: a.Clone(), Debits: d, Credits: c, Net: net})
	}
	return out
}

// SectionRow is a balance with the section total up to and including it.
type SectionRow struct {
	Balance
	RunningTotal decimal.Decimal
}

// Section groups balances of one polarity.
type Section struct {
	Type  model.AccountType
	Rows  []SectionRow
	Total decimal.Decimal
}

// Summary splits a balance summary into its Debits and Credits sections.
type Summary struct {
	Debits  Section
	Credits Section
}

// Sections groups balances by account type, keeping their order.
func Sections(balances []Balance) Summary {
	sum := Summary{
		Debits:  Section{Type: model.AccountTypeDebit},
		Credits: Section{Type: model.AccountTypeCredit},
	}
	for _, b := range balances {
		sec := &sum.Debits
		if b.Account.Type == model.AccountTypeCredit {
			sec = &sum.Credits
		}
		sec.Total = sec.Total.Add(b.Net)
		sec.Rows = append(sec.Rows, SectionRow{Balance: b, RunningTotal: sec.Total})
	}
	return sum
}
