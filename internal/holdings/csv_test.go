package holdings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ndewijer/Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker/internal/validation"
)

func TestParse(t *testing.T) {
	t.Run("reads serial and ISO purchase dates in file order", func(t *testing.T) {
		data := "Tickers,Quantity,PurchaseDate\n" +
			"aapl,10,44929\n" +
			"\n" +
			"MSFT, 2.5 ,2023-06-01\n"

		portfolio, err := Parse(strings.NewReader(data))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if len(portfolio) != 2 {
			t.Fatalf("expected 2 holdings, got %d", len(portfolio))
		}

		first := portfolio[0]
		if first.Symbol != "AAPL" || first.Quantity != 10 {
			t.Errorf("first holding = %+v, want AAPL x10", first)
		}
		if want := time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC); !first.PurchaseDate.Equal(want) {
			t.Errorf("serial 44929 parsed as %v, want %v", first.PurchaseDate, want)
		}

		second := portfolio[1]
		if second.Symbol != "MSFT" || second.Quantity != 2.5 {
			t.Errorf("second holding = %+v, want MSFT x2.5", second)
		}
	})

	t.Run("accepts column aliases in any order", func(t *testing.T) {
		data := "PurchaseDate,Qty,Ticker\n2023-01-03,1,SPY\n"

		portfolio, err := Parse(strings.NewReader(data))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if portfolio[0].Symbol != "SPY" || portfolio[0].Quantity != 1 {
			t.Errorf("holding = %+v", portfolio[0])
		}
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := Parse(strings.NewReader("Tickers,Quantity\nAAPL,10\n"))

		if !errors.Is(err, apperrors.ErrInvalidHolding) {
			t.Fatalf("expected ErrInvalidHolding, got %v", err)
		}
		var verr *validation.Error
		if !errors.As(err, &verr) {
			t.Fatalf("expected *validation.Error, got %v", err)
		}
		if _, ok := verr.Fields["purchase_date"]; !ok {
			t.Errorf("expected purchase_date field, got %v", verr.Fields)
		}
	})

	t.Run("invalid rows fail the load with their line number", func(t *testing.T) {
		tests := []struct {
			name  string
			row   string
			field string
		}{
			{"negative quantity", "AAPL,-1,44929", "quantity"},
			{"non-numeric quantity", "AAPL,ten,44929", "quantity"},
			{"bad date", "AAPL,1,03/01/2023", "purchase_date"},
			{"empty symbol", ",1,44929", "symbol"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				data := "Tickers,Quantity,PurchaseDate\nMSFT,1,44929\n" + tt.row + "\n"

				_, err := Parse(strings.NewReader(data))
				if !errors.Is(err, apperrors.ErrInvalidHolding) {
					t.Fatalf("expected ErrInvalidHolding, got %v", err)
				}
				if !strings.Contains(err.Error(), "line 3") {
					t.Errorf("expected line 3 in error, got %v", err)
				}
				var verr *validation.Error
				if !errors.As(err, &verr) {
					t.Fatalf("expected *validation.Error, got %v", err)
				}
				if _, ok := verr.Fields[tt.field]; !ok {
					t.Errorf("expected field %q, got %v", tt.field, verr.Fields)
				}
			})
		}
	})

	t.Run("empty input", func(t *testing.T) {
		for _, data := range []string{"", "Tickers,Quantity,PurchaseDate\n"} {
			if _, err := Parse(strings.NewReader(data)); !errors.Is(err, apperrors.ErrNoHoldings) {
				t.Errorf("Parse(%q) error = %v, want ErrNoHoldings", data, err)
			}
		}
	})
}

func TestParsePurchaseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "44929", want: time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)},
		{in: "44929.75", want: time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)},
		{in: "1", want: time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)},
		{in: "2024-02-29", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{in: "", wantErr: true},
		{in: "0", wantErr: true},
		{in: "2023-13-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePurchaseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParsePurchaseDate(%q) expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePurchaseDate(%q) error = %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParsePurchaseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCSVSource_LoadHoldings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdings.csv")
	if err := os.WriteFile(path, []byte("Tickers,Quantity,PurchaseDate\nAAPL,10,44929\n"), 0o600); err != nil {
		t.Fatalf("failed to write holdings file: %v", err)
	}

	t.Run("loads file", func(t *testing.T) {
		portfolio, err := NewCSVSource(path).LoadHoldings(context.Background())
		if err != nil {
			t.Fatalf("LoadHoldings() error = %v", err)
		}
		if len(portfolio) != 1 || portfolio[0].Symbol != "AAPL" {
			t.Errorf("LoadHoldings() = %+v", portfolio)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewCSVSource(filepath.Join(t.TempDir(), "nope.csv")).LoadHoldings(context.Background())
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := NewCSVSource(path).LoadHoldings(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}
