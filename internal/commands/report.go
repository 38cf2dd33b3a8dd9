package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/money-ledger/money/internal/report"
	"github.com/money-ledger/money/internal/session"
)

func newReportCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Ask the report service for an expense report",
		Long: "Send the ledger to the expense report service and print the path of the " +
			"file it produced. Interrupt to cancel; report.timeout bounds the wait.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return opts.withSession(ctx, false, func(e *env) error {
				return runReport(ctx, cmd, e.session)
			})
		},
	}

	cmd.Flags().StringVar(&opts.reportAddress, "address", "", "report service endpoint, overrides report.address")

	return cmd
}

func runReport(ctx context.Context, cmd *cobra.Command, s *session.Session) error {
	if err := s.ToggleFocus(ctx, session.FocusExpenseReport); err != nil {
		return fmt.Errorf("starting expense report: %w", err)
	}

	err := s.Run(ctx, nil, func(s *session.Session) bool {
		state := s.ReportState()
		return state != report.StateIdle && !state.Done()
	})
	if err != nil && s.ReportState() != report.StateCancelled {
		return err
	}

	out := cmd.OutOrStdout()
	switch s.ReportState() {
	case report.StateSucceeded:
		if s.ReportPath() == "" {
			fmt.Fprintln(out, "Report service replied without a path")
			return nil
		}
		fmt.Fprintln(out, s.ReportPath())
		return nil
	case report.StateCancelled:
		return fmt.Errorf("expense report cancelled: %w", s.ReportErr())
	default:
		return fmt.Errorf("expense report failed: %w", s.ReportErr())
	}
}
