package commands

import (
	"fmt"
	"os"
	"slices"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/money-ledger/money/internal/journal"
	"github.com/money-ledger/money/internal/ledger"
	"github.com/money-ledger/money/internal/model"
)

func newTxnCommand(opts *rootOptions) *cobra.Command {
	txnCmd := &cobra.Command{
		Use:     "txn",
		Aliases: []string{"transaction"},
		Short:   "Manage transactions",
	}
	txnCmd.AddCommand(newTxnAddCommand(opts), newTxnDeleteCommand(opts), newTxnExportCommand(opts), newTxnImportCommand(opts))
	return txnCmd
}

func newTxnAddCommand(opts *rootOptions) *cobra.Command {
	var debit, credit, amount, memo, date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction moving an amount from --credit to --debit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := txnParams(debit, credit, amount, memo, date)
			if err != nil {
				return err
			}
			return opts.withSession(cmd.Context(), true, func(e *env) error {
				t, err := e.session.Store().CreateTransaction(params)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created transaction %s: %s from %s to %s on %s\n",
					t.ID, t.Amount.StringFixed(2), t.Credit, t.Debit, t.Date)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&debit, "debit", "", "account id to debit (required)")
	cmd.Flags().StringVar(&credit, "credit", "", "account id to credit (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "non-negative amount (required)")
	cmd.Flags().StringVar(&memo, "memo", "", "description")
	cmd.Flags().StringVar(&date, "date", "", "YYYY-MM-DD, defaults to today")
	_ = cmd.MarkFlagRequired("debit")
	_ = cmd.MarkFlagRequired("credit")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func txnParams(debit, credit, amount, memo, date string) (ledger.NewTransactionParams, error) {
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return ledger.NewTransactionParams{}, fmt.Errorf("parsing amount %q: %w", amount, err)
	}
	params := ledger.NewTransactionParams{Debit: debit, Credit: credit, Amount: amt, Memo: memo}
	if date != "" {
		params.Date, err = model.ParseDate(date)
		if err != nil {
			return ledger.NewTransactionParams{}, err
		}
	}
	return params, nil
}

func newTxnDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), true, func(e *env) error {
				if err := e.session.Store().DeleteTransaction(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted transaction %s\n", args[0])
				return nil
			})
		},
	}
}

func newTxnExportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the transaction journal as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), false, func(e *env) error {
				txns := slices.Collect(e.session.Store().Transactions())
				if len(args) == 0 {
					return journal.WriteTransactions(cmd.OutOrStdout(), txns)
				}
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("creating %s: %w", args[0], err)
				}
				if err := journal.WriteTransactions(f, txns); err != nil {
					f.Close()
					return err
				}
				return f.Close()
			})
		},
	}
}

func newTxnImportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add transactions from a CSV written by txn export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			txns, err := journal.ReadTransactions(f)
			if err != nil {
				return err
			}
			return opts.withSession(cmd.Context(), true, func(e *env) error {
				for _, t := range txns {
					if err := e.session.Store().InsertTransaction(t); err != nil {
						return fmt.Errorf("importing transaction %s: %w", t.ID, err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions\n", len(txns))
				return nil
			})
		},
	}
}
