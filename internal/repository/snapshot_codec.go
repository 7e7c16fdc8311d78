package repository

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ndewijer/Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker/internal/model"
)

// snapshotSummaryColumns is the number of scalar columns preceding the positions blob.
const snapshotSummaryColumns = 10

// EncodeSnapshot converts a snapshot into a row of the snapshots table.
// Positions are stored as a JSON array in the last column.
func EncodeSnapshot(s model.Snapshot) ([]string, error) {
	positions := s.Positions
	if positions == nil {
		positions = []model.Position{}
	}
	blob, err := json.Marshal(positions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode positions: %w", err)
	}

	sum := s.Summary
	return []string{
		s.Timestamp.Format(time.RFC3339),
		s.Date,
		formatFloat(sum.TotalValue),
		formatFloat(sum.TotalCost),
		formatFloat(sum.TotalUnrealizedPL),
		formatFloat(sum.TotalUnrealizedPLPct),
		formatFloat(sum.TotalDividendIncome),
		formatFloat(sum.TotalReturn),
		formatFloat(sum.TotalReturnPct),
		strconv.Itoa(sum.PositionCount),
		string(blob),
	}, nil
}

// DecodeSnapshot parses a snapshots row back into a snapshot.
// A row without the positions column decodes with no positions.
func DecodeSnapshot(row []string) (model.Snapshot, error) {
	if len(row) < snapshotSummaryColumns {
		return model.Snapshot{}, fmt.Errorf("%w: snapshot row has %d columns", apperrors.ErrInvalidRow, len(row))
	}

	var s model.Snapshot
	ts, err := ParseTime(row[0])
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: timestamp: %w", apperrors.ErrInvalidRow, err)
	}
	s.Timestamp = ts
	s.Date = row[1]

	sum := &s.Summary
	if err := parseFloats(row[2:9],
		&sum.TotalValue,
		&sum.TotalCost,
		&sum.TotalUnrealizedPL,
		&sum.TotalUnrealizedPLPct,
		&sum.TotalDividendIncome,
		&sum.TotalReturn,
		&sum.TotalReturnPct,
	); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: snapshot %s: %w", apperrors.ErrInvalidRow, s.Date, err)
	}

	count, err := strconv.Atoi(row[9])
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: position_count: %w", apperrors.ErrInvalidRow, err)
	}
	sum.PositionCount = count

	s.Positions = []model.Position{}
	if len(row) > snapshotSummaryColumns && row[snapshotSummaryColumns] != "" {
		if err := json.Unmarshal([]byte(row[snapshotSummaryColumns]), &s.Positions); err != nil {
			return model.Snapshot{}, fmt.Errorf("%w: positions: %w", apperrors.ErrInvalidRow, err)
		}
	}

	return s, nil
}

// EncodeDailyChange converts a daily change into a row of the daily_changes table.
// Movers are stored as JSON arrays; the notes column records the day gap.
func EncodeDailyChange(c model.DailyChange) ([]string, error) {
	gainers, err := encodeMovers(c.TopGainers)
	if err != nil {
		return nil, err
	}
	losers, err := encodeMovers(c.TopLosers)
	if err != nil {
		return nil, err
	}

	prevDate := ""
	if c.PrevDate != nil {
		prevDate = *c.PrevDate
	}

	return []string{
		c.Date,
		prevDate,
		formatFloat(c.ValueChange),
		formatFloat(c.ValueChangePct),
		formatFloat(c.PLChange),
		formatFloat(c.DivChange),
		formatFloat(c.ReturnChange),
		gainers,
		losers,
		fmt.Sprintf("Days between: %d", c.DaysBetween),
	}, nil
}

// DecodeDailyChange parses a daily_changes row.
func DecodeDailyChange(row []string) (model.DailyChangeRecord, error) {
	if len(row) != len(tableColumns[TableDailyChanges]) {
		return model.DailyChangeRecord{}, fmt.Errorf("%w: daily change row has %d columns", apperrors.ErrInvalidRow, len(row))
	}

	rec := model.DailyChangeRecord{
		Date:     row[0],
		PrevDate: row[1],
		Notes:    row[9],
	}
	if err := parseFloats(row[2:7],
		&rec.ValueChange,
		&rec.ValueChangePct,
		&rec.PLChange,
		&rec.DivChange,
		&rec.ReturnChange,
	); err != nil {
		return model.DailyChangeRecord{}, fmt.Errorf("%w: daily change %s: %w", apperrors.ErrInvalidRow, rec.Date, err)
	}

	if err := json.Unmarshal([]byte(row[7]), &rec.TopGainers); err != nil {
		return model.DailyChangeRecord{}, fmt.Errorf("%w: top_gainers: %w", apperrors.ErrInvalidRow, err)
	}
	if err := json.Unmarshal([]byte(row[8]), &rec.TopLosers); err != nil {
		return model.DailyChangeRecord{}, fmt.Errorf("%w: top_losers: %w", apperrors.ErrInvalidRow, err)
	}

	return rec, nil
}

func encodeMovers(movers []model.PositionChange) (string, error) {
	if movers == nil {
		movers = []model.PositionChange{}
	}
	blob, err := json.Marshal(movers)
	if err != nil {
		return "", fmt.Errorf("failed to encode movers: %w", err)
	}
	return string(blob), nil
}
