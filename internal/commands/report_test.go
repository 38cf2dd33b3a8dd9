package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/money-ledger/money/internal/ledger"
	"github.com/money-ledger/money/internal/report"
	"github.com/money-ledger/money/internal/session"
	"github.com/money-ledger/money/internal/storage"
)

type fixedReporter string

func (r fixedReporter) RequestExpenseReport(context.Context, []byte) (string, bool, error) {
	return string(r), string(r) != "", nil
}

func newReportSession(t *testing.T, r report.Requester) *session.Session {
	t.Helper()
	backend := storage.NewFileBackend(filepath.Join(t.TempDir(), "ledger.json"))
	return session.New(ledger.NewStore(), backend, r, session.Options{TickRate: time.Millisecond})
}

func TestRunReport_StartFailureReturns(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := runReport(ctx, &cobra.Command{}, newReportSession(t, nil))
	require.ErrorContains(t, err, "no report service")
	assert.NoError(t, ctx.Err(), "returns without waiting for the deadline")
}

func TestRunReport_PrintsPath(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, runReport(context.Background(), cmd, newReportSession(t, fixedReporter("reports/out.pdf"))))
	assert.Contains(t, out.String(), "out.pdf")
}

func TestRunReport_NoPath(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, runReport(context.Background(), cmd, newReportSession(t, fixedReporter(""))))
	assert.Contains(t, out.String(), "without a path")
}
