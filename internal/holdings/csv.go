// Package holdings loads the portfolio processed by a tracker run from a CSV file.
//
// The file has a header row naming the columns Tickers, Quantity and PurchaseDate
// (Ticker/Symbol and Qty are accepted as aliases, case-insensitively). PurchaseDate is
// either a spreadsheet serial day number or an ISO date (YYYY-MM-DD).
package holdings

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ndewijer/Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Portfolio-Tracker/internal/validation"
)

// serialEpoch is day zero of spreadsheet serial dates.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

var columnAliases = map[string]string{
	"tickers":       "symbol",
	"ticker":        "symbol",
	"symbol":        "symbol",
	"quantity":      "quantity",
	"qty":           "quantity",
	"purchasedate":  "purchase_date",
	"purchase_date": "purchase_date",
}

// CSVSource reads holdings from a CSV file on every load, so edits to the file are
// picked up by the next run.
type CSVSource struct {
	Path string
}

// NewCSVSource creates a CSVSource for the file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

// LoadHoldings reads and validates the holdings file.
func (s *CSVSource) LoadHoldings(ctx context.Context) (model.Portfolio, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open holdings file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads holdings from CSV data. Blank lines are ignored; any invalid row fails
// the whole load.
//
// Returns:
//   - model.Portfolio: Holdings in file order
//   - error: apperrors.ErrInvalidHolding wrapping the row number and a *validation.Error
//     or parse error, or apperrors.ErrNoHoldings when the file has no data rows
func Parse(r io.Reader) (model.Portfolio, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.ErrNoHoldings
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var portfolio model.Portfolio
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}

		h, err := parseRecord(record, index)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: %w", apperrors.ErrInvalidHolding, line, err)
		}
		portfolio = append(portfolio, h)
	}

	if len(portfolio) == 0 {
		return nil, apperrors.ErrNoHoldings
	}
	return portfolio, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, 3)
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if col, ok := columnAliases[key]; ok {
			if _, dup := index[col]; !dup {
				index[col] = i
			}
		}
	}

	missing := make(map[string]string)
	for _, col := range []string{"symbol", "quantity", "purchase_date"} {
		if _, ok := index[col]; !ok {
			missing[col] = "column is missing from header"
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidHolding, &validation.Error{Fields: missing})
	}
	return index, nil
}

func parseRecord(record []string, index map[string]int) (model.Holding, error) {
	cell := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	fields := make(map[string]string)
	h := model.Holding{Symbol: strings.ToUpper(cell("symbol"))}

	qty, err := strconv.ParseFloat(cell("quantity"), 64)
	if err != nil {
		fields["quantity"] = fmt.Sprintf("invalid number %q", cell("quantity"))
	}
	h.Quantity = qty

	date, err := ParsePurchaseDate(cell("purchase_date"))
	if err != nil {
		fields["purchase_date"] = err.Error()
	}
	h.PurchaseDate = date

	if len(fields) > 0 {
		return model.Holding{}, &validation.Error{Fields: fields}
	}
	if err := validation.ValidateHolding(h); err != nil {
		return model.Holding{}, err
	}
	return h, nil
}

// ParsePurchaseDate parses a spreadsheet serial day number (e.g. "44929" for
// 2023-01-03) or an ISO date. Fractional serials are truncated to the day.
func ParsePurchaseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("purchase date is required")
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial < 1 {
			return time.Time{}, fmt.Errorf("invalid serial date %q", s)
		}
		return serialEpoch.AddDate(0, 0, int(serial)), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}
