package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/money-ledger/money/internal/importer"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var bank, offset, format string

	cmd := &cobra.Command{
		Use:   "import <csv-file|directory>",
		Short: "Record bank CSV rows as transactions",
		Long: "Record bank CSV rows as transactions between --bank and --offset. " +
			"Given a directory, every CSV in it is imported and moved to processed/.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := importer.LookupLayout(format)
			if err != nil {
				return err
			}
			return opts.withSession(cmd.Context(), true, func(e *env) error {
				poster, err := importer.NewPoster(e.session.Store(), bank, offset, e.logger)
				if err != nil {
					return err
				}
				return runImport(cmd, args[0], layout, poster)
			})
		},
	}

	cmd.Flags().StringVar(&bank, "bank", "", "account id of the bank account (required)")
	cmd.Flags().StringVar(&offset, "offset", "", "account id that takes the other side (required)")
	cmd.Flags().StringVar(&format, "format", "chase", "CSV format")
	_ = cmd.MarkFlagRequired("bank")
	_ = cmd.MarkFlagRequired("offset")

	return cmd
}

func runImport(cmd *cobra.Command, path string, layout importer.Layout, poster *importer.Poster) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if !info.IsDir() {
		return importFile(cmd, path, layout, poster)
	}

	paths, err := importer.Pending(path)
	if err != nil {
		return err
	}
	for _, p := range paths {
		if err := importFile(cmd, p, layout, poster); err != nil {
			return err
		}
		if err := importer.Archive(p); err != nil {
			return err
		}
	}
	return nil
}

func importFile(cmd *cobra.Command, path string, layout importer.Layout, poster *importer.Poster) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	res, err := poster.Import(layout, f)
	if err != nil {
		return fmt.Errorf("importing %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d added, %d skipped\n", path, len(res.Added), res.Skipped)
	return nil
}
