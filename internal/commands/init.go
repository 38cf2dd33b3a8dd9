package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/money-ledger/money/internal/accounts"
	"github.com/money-ledger/money/internal/config"
	"github.com/money-ledger/money/internal/ledger"
	"github.com/money-ledger/money/internal/storage"
)

func newInitCommand() *cobra.Command {
	var database string
	var empty bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create money.yaml and a ledger with the default chart of accounts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(cmd.Context(), absDir, database, empty); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized money ledger at %s\n", filepath.Join(absDir, database))
			return nil
		},
	}

	cmd.Flags().StringVar(&database, "database", "ledger.json", "ledger file name (.db or .bolt for bbolt)")
	cmd.Flags().BoolVar(&empty, "empty", false, "start without the default chart of accounts")

	return cmd
}

func runInit(ctx context.Context, dir, database string, empty bool) (err error) {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	for _, d := range []string{dir, filepath.Join(dir, "import")} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, config.Default(database)); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	store := ledger.NewStore()
	if !empty {
		if err := accounts.Seed(store, accounts.DefaultChart()); err != nil {
			return err
		}
	}

	backend, err := storage.Open(filepath.Join(dir, database))
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, backend.Close())
	}()
	return storage.Save(ctx, backend, store)
}
