// Package session holds the state of one interactive run: the ledger, the
// view in focus and the background report request.
package session

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/money-ledger/money/internal/ledger"
	"github.com/money-ledger/money/internal/report"
	"github.com/money-ledger/money/internal/storage"
)

// Focus is the view currently shown.
type Focus int

const (
	FocusNone Focus = iota
	FocusChart
	FocusExpenseReport
	FocusBalanceSheet
	FocusNewTransaction
	FocusRegister
	FocusDeleteTransaction
)

var focusNames = map[Focus]string{
	FocusNone:              "none",
	FocusChart:             "chart",
	FocusExpenseReport:     "expense report",
	FocusBalanceSheet:      "balance sheet",
	FocusNewTransaction:    "new transaction",
	FocusRegister:          "register",
	FocusDeleteTransaction: "delete transaction",
}

func (f Focus) String() string {
	if name, ok := focusNames[f]; ok {
		return name
	}
	return fmt.Sprintf("focus(%d)", int(f))
}

// QuitKey ends Run.
const QuitKey = 'q'

// FocusForKey maps a key press to the view it toggles.
func FocusForKey(key rune) (Focus, bool) {
	switch key {
	case 'l':
		return FocusChart, true
	case 'g':
		return FocusExpenseReport, true
	case 'b':
		return FocusBalanceSheet, true
	case 't':
		return FocusNewTransaction, true
	case 'r':
		return FocusRegister, true
	case 'd':
		return FocusDeleteTransaction, true
	}
	return FocusNone, false
}

// Options configures a Session.
type Options struct {
	TickRate      time.Duration
	ReportTimeout time.Duration
	Logger        *zap.SugaredLogger
}

// Session is the single owner of a ledger store during a run. It is not
// safe for concurrent use.
type Session struct {
	store    *ledger.Store
	backend  storage.Backend
	reporter report.Requester
	opts     Options
	logger   *zap.SugaredLogger

	focus Focus
	ticks uint64
	job   *report.Job
}

// New creates a Session around an already loaded store.
func New(store *ledger.Store, backend storage.Backend, reporter report.Requester, opts Options) *Session {
	if opts.TickRate <= 0 {
		opts.TickRate = 250 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Session{
		store:    store,
		backend:  backend,
		reporter: reporter,
		opts:     opts,
		logger:   logger,
	}
}

// Open loads the ledger from backend and creates a Session. A read failure
// is returned as is; there is nothing to run without a ledger.
func Open(ctx context.Context, backend storage.Backend, reporter report.Requester, opts Options) (*Session, error) {
	store, err := storage.Load(ctx, backend)
	if err != nil {
		return nil, err
	}
	return New(store, backend, reporter, opts), nil
}

// Store returns the ledger owned by the session.
func (s *Session) Store() *ledger.Store { return s.store }

// Focus returns the view in focus.
func (s *Session) Focus() Focus { return s.focus }

// Ticks returns how many ticks have elapsed.
func (s *Session) Ticks() uint64 { return s.ticks }

// ToggleFocus switches to f, or back to FocusNone when f is already in
// focus. Entering the expense report view issues a new report request;
// leaving it cancels one still in flight.
func (s *Session) ToggleFocus(ctx context.Context, f Focus) error {
	if s.focus == f {
		s.focus = FocusNone
	} else {
		s.focus = f
	}
	s.logger.Debugw("Focus changed", "focus", s.focus)

	if s.focus != FocusExpenseReport {
		s.CancelReport()
		return nil
	}
	return s.startReport(ctx)
}

func (s *Session) startReport(ctx context.Context) error {
	s.CancelReport()
	if s.reporter == nil {
		return fmt.Errorf("no report service configured")
	}
	doc, err := storage.Encode(s.store)
	if err != nil {
		return err
	}
	s.job = report.NewJob(s.reporter, s.opts.ReportTimeout)
	return s.job.Start(ctx, doc)
}

// Tick advances the tick counter and collects a finished report.
func (s *Session) Tick() {
	s.ticks++
	if s.job == nil {
		return
	}
	before := s.job.State()
	after := s.job.Poll()
	if before == after {
		return
	}
	switch after {
	case report.StateSucceeded:
		s.logger.Infow("Expense report finished", "path", s.job.Path())
	case report.StateFailed:
		s.logger.Warnw("Expense report failed", "error", s.job.Err())
	case report.StateCancelled:
		s.logger.Infow("Expense report cancelled", "reason", s.job.Err())
	}
}

// ReportState returns the state of the latest report request.
func (s *Session) ReportState() report.State {
	if s.job == nil {
		return report.StateIdle
	}
	return s.job.State()
}

// ReportPath returns the path of a succeeded report.
func (s *Session) ReportPath() string {
	if s.job == nil {
		return ""
	}
	return s.job.Path()
}

// ReportErr returns why the latest report failed or was cancelled.
func (s *Session) ReportErr() error {
	if s.job == nil {
		return nil
	}
	return s.job.Err()
}

// CancelReport abandons a report request that is still waiting.
func (s *Session) CancelReport() {
	if s.job != nil {
		s.job.Cancel()
	}
}

// Save writes the ledger through the backend. On failure the in-memory
// ledger is kept so the caller can retry.
func (s *Session) Save(ctx context.Context) error {
	if err := storage.Save(ctx, s.backend, s.store); err != nil {
		s.logger.Errorw("Saving ledger failed", "error", err)
		return err
	}
	s.logger.Debugw("Saved ledger", "location", s.backend.Location())
	return nil
}

// Run drives the session until ctx ends, QuitKey arrives or observe returns
// false. Each iteration handles at most one key; ticks fire every TickRate.
// observe is called after every key and tick.
func (s *Session) Run(ctx context.Context, keys <-chan rune, observe func(*Session) bool) error {
	ticker := time.NewTicker(s.opts.TickRate)
	defer ticker.Stop()
	defer s.CancelReport()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case key, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			if key == QuitKey {
				return nil
			}
			if f, ok := FocusForKey(key); ok {
				if err := s.ToggleFocus(ctx, f); err != nil {
					s.logger.Warnw("Focus change failed", "focus", f, "error", err)
				}
			}
		case <-ticker.C:
			s.Tick()
		}
		if observe != nil && !observe(s) {
			return nil
		}
	}
}
