// Package importer turns bank CSV exports into ledger transactions.
package importer

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/money-ledger/money/internal/ledger"
	"github.com/money-ledger/money/internal/model"
)

// Result summarizes one import.
type Result struct {
	Added   []model.Transaction
	Skipped int // zero amounts and rows already in the ledger
}

// Poster records bank exports against one bank account, with an offset
// account taking the other side of every row.
type Poster struct {
	store  *ledger.Store
	bank   string
	offset string
	logger *zap.SugaredLogger
}

// NewPoster checks that both accounts exist and differ.
func NewPoster(store *ledger.Store, bank, offset string, logger *zap.SugaredLogger) (*Poster, error) {
	if bank == offset {
		return nil, fmt.Errorf("bank and offset account are both %s", bank)
	}
	for _, accountID := range []string{bank, offset} {
		if _, ok := store.Account(accountID); !ok {
			return nil, &ledger.NotFoundError{Kind: ledger.KindAccount, ID: accountID}
		}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Poster{store: store, bank: bank, offset: offset, logger: logger}, nil
}

// Import reads an export in layout l and posts it. The whole file is parsed
// before anything is posted, so a malformed file changes nothing.
func (p *Poster) Import(l Layout, r io.Reader) (Result, error) {
	postings, err := l.Read(r, p.bank, p.offset)
	if err != nil {
		return Result{}, err
	}
	return p.Post(postings)
}

// Post creates one transaction per posting. Postings that match an existing
// transaction on date, accounts, amount and memo are skipped so a file can
// be imported twice safely. Post stops at the first rejected posting;
// earlier ones stay in the store.
func (p *Poster) Post(postings []ledger.NewTransactionParams) (Result, error) {
	var res Result
	for i, params := range postings {
		if params.Amount.IsZero() || p.exists(params) {
			p.logger.Debugw("Skipping bank row", "date", params.Date.String(), "memo", params.Memo)
			res.Skipped++
			continue
		}
		t, err := p.store.CreateTransaction(params)
		if err != nil {
			return res, fmt.Errorf("posting %d (%s %s): %w", i+1, params.Date, params.Memo, err)
		}
		res.Added = append(res.Added, t)
	}
	p.logger.Infow("Imported bank rows", "bank", p.bank, "added", len(res.Added), "skipped", res.Skipped)
	return res, nil
}

func (p *Poster) exists(params ledger.NewTransactionParams) bool {
	for t := range p.store.Transactions() {
		if t.Debit == params.Debit && t.Credit == params.Credit &&
			t.Amount.Equal(params.Amount) && t.Memo == params.Memo && t.Date.Equal(params.Date) {
			return true
		}
	}
	return false
}
