package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/money-ledger/money/internal/ledger"
	"github.com/money-ledger/money/internal/model"
)

// Layout names the header columns a bank export keeps its data under.
// Columns are found by header so reordered or extra columns are harmless.
type Layout struct {
	Name       string
	Date       string
	DateFormat string
	Memo       string
	Amount     string
}

// Chase is the Chase checking export:
// Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
var Chase = Layout{
	Name:       "chase",
	Date:       "Posting Date",
	DateFormat: "01/02/2006",
	Memo:       "Description",
	Amount:     "Amount",
}

var layouts = map[string]Layout{
	Chase.Name: Chase,
}

// LookupLayout returns the built-in layout called name, ignoring case.
func LookupLayout(name string) (Layout, error) {
	l, ok := layouts[strings.ToLower(name)]
	if !ok {
		return Layout{}, fmt.Errorf("unknown import format %q", name)
	}
	return l, nil
}

type columns struct {
	date, memo, amount int
}

func (l Layout) locate(header []string) (columns, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	var cols columns
	var missing []string
	for _, c := range []struct {
		name string
		dst  *int
	}{{l.Date, &cols.date}, {l.Memo, &cols.memo}, {l.Amount, &cols.amount}} {
		i, ok := idx[c.name]
		if !ok {
			missing = append(missing, c.name)
			continue
		}
		*c.dst = i
	}
	if len(missing) > 0 {
		return columns{}, fmt.Errorf("%s export is missing columns %s", l.Name, strings.Join(missing, ", "))
	}
	return cols, nil
}

// Read turns every row of a bank export into a transaction between bank
// and offset. Money out debits offset and credits bank; money in does the
// reverse. Amounts are made non-negative; zero rows are returned as is.
func (l Layout) Read(r io.Reader, bank, offset string) ([]ledger.NewTransactionParams, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s header: %w", l.Name, err)
	}
	cols, err := l.locate(header)
	if err != nil {
		return nil, err
	}

	var out []ledger.NewTransactionParams
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s row %d: %w", l.Name, row, err)
		}
		params, err := l.posting(rec, cols, bank, offset)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		out = append(out, params)
	}
}

func (l Layout) posting(rec []string, cols columns, bank, offset string) (ledger.NewTransactionParams, error) {
	rawDate := strings.TrimSpace(rec[cols.date])
	date, err := time.Parse(l.DateFormat, rawDate)
	if err != nil {
		return ledger.NewTransactionParams{}, fmt.Errorf("parsing date %q: %w", rawDate, err)
	}
	rawAmount := strings.TrimSpace(rec[cols.amount])
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return ledger.NewTransactionParams{}, fmt.Errorf("parsing amount %q: %w", rawAmount, err)
	}

	params := ledger.NewTransactionParams{
		Debit:  bank,
		Credit: offset,
		Amount: amount.Abs(),
		// Banks pad descriptions with runs of spaces.
		Memo: strings.Join(strings.Fields(rec[cols.memo]), " "),
		Date: model.DateOf(date),
	}
	if amount.IsNegative() {
		params.Debit, params.Credit = offset, bank
	}
	return params, nil
}
