package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ndewijer/Portfolio-Tracker/internal/model"
)

func TestFormatting(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"money rounds", Money(1234.5678), "1234.57"},
		{"money negative", Money(-3.004), "-3.00"},
		{"percent", Percent(12.346), "12.35%"},
		{"percent zero", Percent(0), "0.00%"},
		{"signed money gain", SignedMoney(100), "+100.00"},
		{"signed money loss", SignedMoney(-2.5), "-2.50"},
		{"signed percent", SignedPercent(5), "+5.00%"},
		{"quantity whole", trimFloat(10), "10"},
		{"quantity fractional", trimFloat(2.5), "2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestHoldingRows(t *testing.T) {
	rows := HoldingRows([]model.HoldingMetrics{{
		Symbol:          "AAPL",
		Quantity:        10,
		PurchaseDate:    time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC),
		PurchasePrice:   125,
		CurrentPrice:    200,
		CostBasis:       1250,
		MarketValue:     2000,
		UnrealizedPL:    750,
		UnrealizedPLPct: 60,
		DividendIncome:  4.7,
		TotalReturnPct:  60.376,
		YieldOnCost:     0.376,
		CAGR:            35.1234,
		Beta:            1.234,
	}})

	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if len(rows[0]) != len(HoldingHeaders) {
		t.Fatalf("Expected %d columns, got %d", len(HoldingHeaders), len(rows[0]))
	}

	want := []string{"AAPL", "10", "2023-01-03", "125.00", "200.00", "1250.00", "2000.00",
		"+750.00", "60.00%", "4.70", "60.38%", "0.38%", "35.12%", "1.23"}
	for i, w := range want {
		if rows[0][i] != w {
			t.Errorf("column %s = %q, want %q", HoldingHeaders[i], rows[0][i], w)
		}
	}
}

func TestChangePairs(t *testing.T) {
	t.Run("first run shows only the message", func(t *testing.T) {
		pairs := ChangePairs(model.DailyChange{IsFirstRun: true, Message: "First snapshot - no comparison available"})
		if len(pairs) != 1 || pairs[0][1] != "First snapshot - no comparison available" {
			t.Errorf("unexpected pairs %v", pairs)
		}
	})

	t.Run("later runs show the previous date and deltas", func(t *testing.T) {
		prev := "2024-06-03"
		pairs := ChangePairs(model.DailyChange{PrevDate: &prev, DaysBetween: 2, ValueChange: 100, ValueChangePct: 5})

		if pairs[0][1] != "2024-06-03 (2 days)" {
			t.Errorf("compared to = %q", pairs[0][1])
		}
		if !strings.Contains(pairs[1][1], "+100.00 (+5.00%)") {
			t.Errorf("value change = %q", pairs[1][1])
		}
	})
}

func TestMoverRows(t *testing.T) {
	rows := MoverRows([]model.PositionChange{
		{Ticker: "NVDA", ValueChange: 50, IsNew: true},
		{Ticker: "TSLA", PriceChange: -5, PriceChangePct: -2.5, ValueChange: -25},
	})

	if rows[0][4] != "new" {
		t.Errorf("Expected new note, got %q", rows[0][4])
	}
	if rows[1][2] != "-2.50%" || rows[1][4] != "" {
		t.Errorf("unexpected row %v", rows[1])
	}
}

func TestChangeRows(t *testing.T) {
	rows := ChangeRows([]model.DailyChangeRecord{{
		Date:       "2024-06-05",
		PrevDate:   "2024-06-03",
		TopGainers: []model.PositionChange{{Ticker: "AAPL"}},
		Notes:      "Days between: 2",
	}})

	if rows[0][5] != "AAPL" || rows[0][6] != "-" {
		t.Errorf("movers = %q/%q, want AAPL/-", rows[0][5], rows[0][6])
	}
	if rows[0][7] != "Days between: 2" {
		t.Errorf("notes = %q", rows[0][7])
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, TrendHeaders, TrendRows([]model.TrendPoint{
		{Date: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), TotalValue: 2000, TotalCost: 1250},
	}))

	out := buf.String()
	for _, want := range []string{"Date", "2024-06-03", "2000.00", "+750.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in table output:\n%s", want, out)
		}
	}
}
