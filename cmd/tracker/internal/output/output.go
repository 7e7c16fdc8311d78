// Package output renders tracker results for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/ndewijer/Portfolio-Tracker/internal/model"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	GainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	LossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))
)

func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Table writes rows under headers to w.
func Table(w io.Writer, headers []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)
	table.SetRowLine(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetCenterSeparator("│")
	table.SetColumnSeparator("│")
	table.SetRowSeparator("─")
	table.SetHeaderLine(true)
	table.AppendBulk(rows)
	table.Render()
}

func KeyValue(pairs [][]string) {
	maxKeyLen := 0
	for _, pair := range pairs {
		if len(pair[0]) > maxKeyLen {
			maxKeyLen = len(pair[0])
		}
	}

	for _, pair := range pairs {
		key := MutedStyle.Render(fmt.Sprintf("%-*s", maxKeyLen, pair[0]))
		value := ValueStyle.Render(pair[1])
		fmt.Printf("%s  %s\n", key, value)
	}
}

func Error(msg string) {
	fmt.Fprintln(os.Stderr, LossStyle.Render("✗ ")+msg)
}

func Warning(msg string) {
	fmt.Println(WarningStyle.Render("⚠ ") + msg)
}

func Info(msg string) {
	fmt.Println(MutedStyle.Render(msg))
}

func Header(msg string) {
	fmt.Println()
	fmt.Println(HeaderStyle.Render(msg))
}

// Money formats an amount rounded to two decimals.
func Money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Percent formats a numeric percentage, e.g. 12.345 as "12.35%".
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// SignedMoney formats a change with an explicit sign.
func SignedMoney(v float64) string {
	return fmt.Sprintf("%+.2f", v)
}

// SignedPercent formats a percentage change with an explicit sign.
func SignedPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// Colour renders s as a gain or a loss depending on the sign of v.
func Colour(v float64, s string) string {
	switch {
	case v > 0:
		return GainStyle.Render(s)
	case v < 0:
		return LossStyle.Render(s)
	default:
		return s
	}
}

// SummaryPairs lists the portfolio totals as label/value pairs.
func SummaryPairs(s model.PortfolioSummary) [][]string {
	return [][]string{
		{"Positions", fmt.Sprintf("%d", s.PositionCount)},
		{"Total cost", Money(s.TotalCost)},
		{"Total value", Money(s.TotalValue)},
		{"Unrealized P/L", Colour(s.TotalUnrealizedPL, SignedMoney(s.TotalUnrealizedPL)+" ("+Percent(s.TotalUnrealizedPLPct)+")")},
		{"Dividend income", Money(s.TotalDividendIncome)},
		{"Total return", Colour(s.TotalReturn, SignedMoney(s.TotalReturn)+" ("+Percent(s.TotalReturnPct)+")")},
	}
}

// HoldingHeaders are the column titles of HoldingRows.
var HoldingHeaders = []string{
	"Ticker", "Qty", "Purchased", "Buy", "Price", "Cost", "Value",
	"P/L", "P/L %", "Dividends", "Return %", "YoC", "CAGR", "Beta",
}

// HoldingRows renders one table row per holding.
func HoldingRows(metrics []model.HoldingMetrics) [][]string {
	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{
			m.Symbol,
			trimFloat(m.Quantity),
			m.PurchaseDate.Format("2006-01-02"),
			Money(m.PurchasePrice),
			Money(m.CurrentPrice),
			Money(m.CostBasis),
			Money(m.MarketValue),
			SignedMoney(m.UnrealizedPL),
			Percent(m.UnrealizedPLPct),
			Money(m.DividendIncome),
			Percent(m.TotalReturnPct),
			Percent(m.YieldOnCost),
			Percent(m.CAGR),
			fmt.Sprintf("%.2f", m.Beta),
		})
	}
	return rows
}

// ChangePairs lists the day-over-day change as label/value pairs. A first-run change
// yields only its message.
func ChangePairs(c model.DailyChange) [][]string {
	if c.IsFirstRun {
		return [][]string{{"Change", c.Message}}
	}

	prev := ""
	if c.PrevDate != nil {
		prev = *c.PrevDate
	}
	return [][]string{
		{"Compared to", fmt.Sprintf("%s (%d days)", prev, c.DaysBetween)},
		{"Value change", Colour(c.ValueChange, SignedMoney(c.ValueChange)+" ("+SignedPercent(c.ValueChangePct)+")")},
		{"P/L change", Colour(c.PLChange, SignedMoney(c.PLChange))},
		{"Dividend change", Colour(c.DivChange, SignedMoney(c.DivChange))},
		{"Return change", Colour(c.ReturnChange, SignedMoney(c.ReturnChange))},
	}
}

// MoverHeaders are the column titles of MoverRows.
var MoverHeaders = []string{"Ticker", "Price change", "Price %", "Value change", "Note"}

// MoverRows renders gainers or losers.
func MoverRows(movers []model.PositionChange) [][]string {
	rows := make([][]string, 0, len(movers))
	for _, m := range movers {
		note := ""
		switch {
		case m.IsNew:
			note = "new"
		case m.IsSold:
			note = "sold"
		}
		rows = append(rows, []string{
			m.Ticker,
			SignedMoney(m.PriceChange),
			SignedPercent(m.PriceChangePct),
			SignedMoney(m.ValueChange),
			note,
		})
	}
	return rows
}

// TrendHeaders are the column titles of TrendRows.
var TrendHeaders = []string{"Date", "Value", "Cost", "Gain"}

// TrendRows renders trend points oldest first.
func TrendRows(points []model.TrendPoint) [][]string {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.Date.Format("2006-01-02"),
			Money(p.TotalValue),
			Money(p.TotalCost),
			SignedMoney(p.TotalValue - p.TotalCost),
		})
	}
	return rows
}

// ChangeHeaders are the column titles of ChangeRows.
var ChangeHeaders = []string{"Date", "Previous", "Value change", "Value %", "Return change", "Top gainer", "Top loser", "Notes"}

// ChangeRows renders persisted daily changes.
func ChangeRows(changes []model.DailyChangeRecord) [][]string {
	rows := make([][]string, 0, len(changes))
	for _, c := range changes {
		rows = append(rows, []string{
			c.Date,
			c.PrevDate,
			SignedMoney(c.ValueChange),
			SignedPercent(c.ValueChangePct),
			SignedMoney(c.ReturnChange),
			firstTicker(c.TopGainers),
			firstTicker(c.TopLosers),
			c.Notes,
		})
	}
	return rows
}

func firstTicker(movers []model.PositionChange) string {
	if len(movers) == 0 {
		return "-"
	}
	return movers[0].Ticker
}

// trimFloat prints a quantity without trailing zeros, e.g. 10 or 2.5.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
