package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/money-ledger/money/internal/ledger"
	"github.com/money-ledger/money/internal/render"
)

func newChartCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Show the chart of accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), false, func(e *env) error {
				chart, err := e.session.Store().ChartOfAccounts()
				if err != nil {
					return err
				}
				render.Chart(cmd.OutOrStdout(), chart)
				return nil
			})
		},
	}
}

func newRegisterCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "register <account-id>",
		Short: "Show every transaction touching an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), false, func(e *env) error {
				store := e.session.Store()
				txns, err := store.TransactionsForAccount(args[0])
				if err != nil {
					return err
				}
				account, _ := store.Account(args[0])
				render.Register(cmd.OutOrStdout(), account, txns)
				return nil
			})
		},
	}
}

func newBalanceCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show net balances grouped into debit and credit sections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), false, func(e *env) error {
				balances := e.session.Store().BalanceSummary()
				if len(balances) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No transactions recorded")
					return nil
				}
				render.Balances(cmd.OutOrStdout(), ledger.Sections(balances))
				return nil
			})
		},
	}
}

func newSortCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "sort <accounts|transactions> [asc|desc]",
		Short:     "Reorder a collection by id and save it",
		Long:      "Reorder a collection by id and save it. Any direction other than desc sorts ascending.",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{"accounts", "transactions"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := ledger.ParseKind(args[0])
			if err != nil {
				return err
			}
			var dir ledger.Direction
			if len(args) > 1 {
				dir = ledger.ParseDirection(args[1])
			}
			return opts.withSession(cmd.Context(), true, func(e *env) error {
				e.session.Store().Sort(kind, dir)
				return nil
			})
		},
	}
}

func newCheckCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report broken references and hierarchy problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), false, func(e *env) error {
				issues := e.session.Store().Check()
				if len(issues) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Ledger is consistent")
					return nil
				}
				render.Issues(cmd.OutOrStdout(), issues)
				return fmt.Errorf("%d consistency issues found", len(issues))
			})
		},
	}
}
