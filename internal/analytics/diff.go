package analytics

import (
	"sort"

	"github.com/ndewijer/Portfolio-Tracker/internal/model"
)

// MoversLimit is the number of entries kept in each of the gainers and losers lists.
const MoversLimit = 3

// FirstRunMessage is attached to the change record produced when no previous snapshot exists.
const FirstRunMessage = "First snapshot - no comparison available"

// Diff compares the current snapshot against the previous one.
//
// With no previous snapshot a first-run record is returned: all deltas zero, empty movers
// and IsFirstRun set. Callers do not persist that record.
//
// Position handling:
//   - Ticker in both snapshots: price and value deltas, percentage against the previous price
//   - Ticker only in current: new position, price change is the full current price, +100%
//   - Ticker only in previous: sold position, negated previous price and value, -100%
//
// Movers are ranked once by PriceChangePct descending. Gainers are the first three, losers
// the last three reversed so TopLosers[0] is the worst. With six or fewer positions the two
// lists can share entries.
func Diff(current model.Snapshot, previous *model.Snapshot) model.DailyChange {
	if previous == nil {
		return model.DailyChange{
			IsFirstRun: true,
			Date:       current.Date,
			TopGainers: []model.PositionChange{},
			TopLosers:  []model.PositionChange{},
			Message:    FirstRunMessage,
		}
	}

	curr := current.Summary
	prev := previous.Summary

	valueChange := curr.TotalValue - prev.TotalValue
	prevDate := previous.Date

	changes := positionChanges(current.Positions, previous.Positions)

	// Stable so equal movers keep current-then-sold order.
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].PriceChangePct > changes[j].PriceChangePct
	})

	return model.DailyChange{
		IsFirstRun:     false,
		Date:           current.Date,
		PrevDate:       &prevDate,
		ValueChange:    valueChange,
		ValueChangePct: percentOf(valueChange, prev.TotalValue),
		PLChange:       curr.TotalUnrealizedPL - prev.TotalUnrealizedPL,
		DivChange:      curr.TotalDividendIncome - prev.TotalDividendIncome,
		ReturnChange:   curr.TotalReturn - prev.TotalReturn,
		TopGainers:     topGainers(changes),
		TopLosers:      topLosers(changes),
		DaysBetween:    daysBetween(previous.Timestamp, current.Timestamp),
	}
}

// positionChanges lists current positions in their snapshot order followed by sold positions
// in the previous snapshot's order.
func positionChanges(current, previous []model.Position) []model.PositionChange {
	currByTicker := make(map[string]model.Position, len(current))
	for _, p := range current {
		currByTicker[p.Ticker] = p
	}
	prevByTicker := make(map[string]model.Position, len(previous))
	for _, p := range previous {
		prevByTicker[p.Ticker] = p
	}

	changes := make([]model.PositionChange, 0, len(current)+len(previous))
	seen := make(map[string]bool, len(current))
	for _, p := range current {
		if seen[p.Ticker] {
			continue
		}
		seen[p.Ticker] = true
		curr := currByTicker[p.Ticker]

		prev, ok := prevByTicker[p.Ticker]
		if !ok {
			changes = append(changes, model.PositionChange{
				Ticker:         p.Ticker,
				PriceChange:    curr.CurrentPrice,
				PriceChangePct: 100.0,
				ValueChange:    curr.MarketValue,
				IsNew:          true,
			})
			continue
		}

		priceChange := curr.CurrentPrice - prev.CurrentPrice
		changes = append(changes, model.PositionChange{
			Ticker:         p.Ticker,
			PriceChange:    priceChange,
			PriceChangePct: percentOf(priceChange, prev.CurrentPrice),
			ValueChange:    curr.MarketValue - prev.MarketValue,
		})
	}

	sold := make(map[string]bool)
	for _, p := range previous {
		if _, ok := currByTicker[p.Ticker]; ok || sold[p.Ticker] {
			continue
		}
		sold[p.Ticker] = true
		prev := prevByTicker[p.Ticker]
		changes = append(changes, model.PositionChange{
			Ticker:         p.Ticker,
			PriceChange:    -prev.CurrentPrice,
			PriceChangePct: -100.0,
			ValueChange:    -prev.MarketValue,
			IsSold:         true,
		})
	}

	return changes
}

func topGainers(sorted []model.PositionChange) []model.PositionChange {
	n := min(MoversLimit, len(sorted))
	gainers := make([]model.PositionChange, n)
	copy(gainers, sorted[:n])
	return gainers
}

func topLosers(sorted []model.PositionChange) []model.PositionChange {
	n := min(MoversLimit, len(sorted))
	tail := sorted[len(sorted)-n:]
	losers := make([]model.PositionChange, n)
	for i := range tail {
		losers[i] = tail[len(tail)-1-i]
	}
	return losers
}
