// Package render prints ledger views as text tables.
package render

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"

	"github.com/money-ledger/money/internal/ledger"
	"github.com/money-ledger/money/internal/model"
)

func fmtDec(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	return t
}

func rightAligned(columns ...int) []table.ColumnConfig {
	configs := make([]table.ColumnConfig, 0, len(columns))
	for _, n := range columns {
		configs = append(configs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	return configs
}

// Accounts prints accounts in the order given.
func Accounts(w io.Writer, accounts []model.Account) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Name", "Type", "Parent", "Subaccounts", "Transactions"})
	for _, a := range accounts {
		parent := a.Parent
		if a.IsRoot() {
			parent = "-"
		}
		t.AppendRow(table.Row{a.ID, a.Name, a.Type, parent, len(a.Subaccounts), len(a.Transactions)})
	}
	t.SetColumnConfigs(rightAligned(5, 6))
	t.Render()
}

// Chart prints the chart of accounts, one row per chain, with the path from
// the top-level account down to the leaf.
func Chart(w io.Writer, chart []ledger.Chain) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Account", "Type", "Path"})
	for _, chain := range chart {
		leaf := chain.Leaf()
		names := make([]string, len(chain))
		for i, a := range chain {
			names[len(chain)-1-i] = a.Name
		}
		t.AppendRow(table.Row{
			leaf.ID,
			strings.Repeat("  ", chain.Depth()) + leaf.Name,
			leaf.Type,
			strings.Join(names, " > "),
		})
	}
	t.Render()
}

// Register prints an account's transactions with a running balance in the
// account's own polarity.
func Register(w io.Writer, account model.Account, txns []model.Transaction) {
	t := newTable(w)
	t.SetTitle("%s %s (%s)", account.ID, account.Name, account.Type)
	t.AppendHeader(table.Row{"Date", "ID", "Memo", "Debit", "Credit", "Balance"})

	var running decimal.Decimal
	for _, txn := range txns {
		var debit, credit string
		if txn.Debit == account.ID {
			debit = fmtDec(txn.Amount)
			running = running.Add(signed(account.Type, txn.Amount, true))
		}
		if txn.Credit == account.ID {
			credit = fmtDec(txn.Amount)
			running = running.Add(signed(account.Type, txn.Amount, false))
		}
		t.AppendRow(table.Row{txn.Date, txn.ID, txn.Memo, debit, credit, fmtDec(running)})
	}
	t.AppendFooter(table.Row{"", "", "Balance", "", "", fmtDec(running)})
	t.SetColumnConfigs(rightAligned(4, 5, 6))
	t.Render()
}

func signed(typ model.AccountType, amount decimal.Decimal, debit bool) decimal.Decimal {
	if debit == (typ == model.AccountTypeCredit) {
		return amount.Neg()
	}
	return amount
}

// Balances prints the Debits and Credits sections of a balance summary with
// running and section totals.
func Balances(w io.Writer, sum ledger.Summary) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Section", "ID", "Account", "Debits", "Credits", "Net", "Running"})
	for _, sec := range []ledger.Section{sum.Debits, sum.Credits} {
		for _, row := range sec.Rows {
			t.AppendRow(table.Row{
				sec.Type, row.Account.ID, row.Account.Name,
				fmtDec(row.Debits), fmtDec(row.Credits), fmtDec(row.Net), fmtDec(row.RunningTotal),
			})
		}
		t.AppendRow(table.Row{sec.Type, "", "Total " + string(sec.Type), "", "", fmtDec(sec.Total), ""})
		t.AppendSeparator()
	}
	t.SetColumnConfigs(append([]table.ColumnConfig{{Number: 1, AutoMerge: true}}, rightAligned(4, 5, 6, 7)...))
	t.Render()
}

// Issues prints consistency issues.
func Issues(w io.Writer, issues []ledger.Issue) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Rule", "Kind", "ID", "Problem"})
	for _, is := range issues {
		t.AppendRow(table.Row{is.Rule, is.Kind, is.ID, is.Description})
	}
	t.Render()
}
