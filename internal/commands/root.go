package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/money-ledger/money/internal/buildinfo"
	"github.com/money-ledger/money/internal/config"
	"github.com/money-ledger/money/internal/logging"
	"github.com/money-ledger/money/internal/report"
	"github.com/money-ledger/money/internal/session"
	"github.com/money-ledger/money/internal/storage"
)

// rootOptions holds the global flags.
type rootOptions struct {
	configPath    string
	dbPath        string
	reportAddress string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "money",
		Short:   "Double-entry ledger for counting your wealth",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "path to money.yaml")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "ledger file, overrides the configured database (.db/.bolt for bbolt)")

	rootCmd.AddCommand(
		newInitCommand(),
		newAccountCommand(opts),
		newTxnCommand(opts),
		newChartCommand(opts),
		newRegisterCommand(opts),
		newBalanceCommand(opts),
		newSortCommand(opts),
		newCheckCommand(opts),
		newImportCommand(opts),
		newReportCommand(opts),
	)

	return rootCmd
}

// env is everything a command needs once config is resolved.
type env struct {
	cfg     *config.Config
	logger  *zap.SugaredLogger
	session *session.Session
}

// databasePath resolves the ledger location: --db wins, otherwise the
// configured database relative to the config file.
func (o *rootOptions) databasePath(cfg *config.Config) string {
	if o.dbPath != "" {
		return o.dbPath
	}
	if filepath.IsAbs(cfg.Database) {
		return cfg.Database
	}
	return filepath.Join(filepath.Dir(o.configPath), cfg.Database)
}

// withSession loads config and the ledger, runs fn, and saves the ledger
// afterwards when save is set and fn succeeded.
func (o *rootOptions) withSession(ctx context.Context, save bool, fn func(e *env) error) (err error) {
	cfg, err := config.Resolve(o.configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	defer func() {
		_ = logger.Sync()
		err = errors.Join(err, closeLog())
	}()

	backend, err := storage.Open(o.databasePath(cfg))
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, backend.Close())
	}()

	if o.reportAddress != "" {
		cfg.Report.Address = o.reportAddress
	}
	client := report.NewClient(cfg.Report.Address, logger)
	s, err := session.Open(ctx, backend, client, session.Options{
		TickRate:      cfg.Session.TickRate,
		ReportTimeout: cfg.Report.Timeout,
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	logger.Debugw("Loaded ledger",
		"location", backend.Location(),
		"accounts", s.Store().NumAccounts(),
		"transactions", s.Store().NumTransactions(),
		"report_address", client.Address())

	if err := fn(&env{cfg: cfg, logger: logger, session: s}); err != nil {
		return err
	}
	if save {
		return s.Save(ctx)
	}
	return nil
}
