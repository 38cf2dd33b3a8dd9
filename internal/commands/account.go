package commands

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/money-ledger/money/internal/accounts"
	"github.com/money-ledger/money/internal/ledger"
	"github.com/money-ledger/money/internal/model"
	"github.com/money-ledger/money/internal/render"
)

func newAccountCommand(opts *rootOptions) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:     "account",
		Aliases: []string{"accounts"},
		Short:   "Manage accounts",
	}
	accountCmd.AddCommand(
		newAccountAddCommand(opts),
		newAccountDeleteCommand(opts),
		newAccountListCommand(opts),
		newAccountExportCommand(opts),
		newAccountImportCommand(opts),
	)
	return accountCmd
}

func newAccountAddCommand(opts *rootOptions) *cobra.Command {
	var parent, typ string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create an account",
		Long: "Create an account. A subaccount always takes its parent's type; " +
			"a top-level account needs --type (d/debit or c/credit).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := ledger.NewAccountParams{Name: args[0], Parent: parent}
			if typ != "" {
				t, err := model.ParseAccountType(typ)
				if err != nil {
					return err
				}
				params.Type = t
			}
			return opts.withSession(cmd.Context(), true, func(e *env) error {
				a, err := e.session.Store().CreateAccount(params)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created account %s %s (%s)\n", a.ID, a.Name, a.Type)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&parent, "parent", model.RootID, "parent account id")
	cmd.Flags().StringVar(&typ, "type", "", "account type for top-level accounts: debit or credit")

	return cmd
}

func newAccountDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account; subaccounts and transactions are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), true, func(e *env) error {
				if err := e.session.Store().DeleteAccount(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %s\n", args[0])
				return nil
			})
		},
	}
}

func newAccountListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts in ledger order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), false, func(e *env) error {
				render.Accounts(cmd.OutOrStdout(), slices.Collect(e.session.Store().Accounts()))
				return nil
			})
		},
	}
}

func newAccountExportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the accounts as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), false, func(e *env) error {
				all := slices.Collect(e.session.Store().Accounts())
				if len(args) == 0 {
					return accounts.WriteAccounts(cmd.OutOrStdout(), all)
				}
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("creating %s: %w", args[0], err)
				}
				if err := accounts.WriteAccounts(f, all); err != nil {
					f.Close()
					return err
				}
				return f.Close()
			})
		},
	}
}

func newAccountImportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add accounts from a CSV written by account export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			rows, err := accounts.ReadAccounts(f)
			if err != nil {
				return err
			}
			return opts.withSession(cmd.Context(), true, func(e *env) error {
				if err := accounts.Seed(e.session.Store(), rows); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d accounts\n", len(rows))
				return nil
			})
		},
	}
}
