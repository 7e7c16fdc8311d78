package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ndewijer/Portfolio-Tracker/internal/apperrors"
)

// Table names managed by the TableRepository.
const (
	TableSnapshots    = "snapshots"
	TableDailyChanges = "daily_changes"
)

// tableColumns holds the ordered column layout of every managed table.
// The order is the row order accepted by Append and returned by ReadAll.
var tableColumns = map[string][]string{
	TableSnapshots: {
		"timestamp", "date", "total_value", "total_cost", "unrealized_pl",
		"unrealized_pl_pct", "dividend_income", "total_return", "total_return_pct",
		"position_count", "snapshot_json",
	},
	TableDailyChanges: {
		"date", "prev_date", "value_change", "value_change_pct", "pl_change",
		"div_change", "return_change", "top_gainers", "top_losers", "notes",
	},
}

// Columns returns a copy of the column layout of table.
func Columns(table string) ([]string, error) {
	cols, ok := tableColumns[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownTable, table)
	}
	return append([]string(nil), cols...), nil
}

// TableRepository is an append-only, ordered row store over SQLite.
// Rows are plain string tuples; encoding domain records into rows is left to the codec.
type TableRepository struct {
	db *sql.DB
}

// NewTableRepository creates a new TableRepository with the provided database connection.
func NewTableRepository(db *sql.DB) *TableRepository {
	return &TableRepository{db: db}
}

// Append inserts one row at the end of table.
//
// Parameters:
//   - ctx: Request context
//   - table: TableSnapshots or TableDailyChanges
//   - row: Cell values in the table's column order
//
// Returns:
//   - error: apperrors.ErrUnknownTable, apperrors.ErrInvalidRow on a column count mismatch,
//     or the underlying insert error
func (r *TableRepository) Append(ctx context.Context, table string, row []string) error {
	cols, err := Columns(table)
	if err != nil {
		return err
	}
	if len(row) != len(cols) {
		return fmt.Errorf("%w: %s expects %d columns, got %d", apperrors.ErrInvalidRow, table, len(cols), len(row))
	}

	quoted := make([]string, len(cols))
	args := make([]any, len(row))
	for i, c := range cols {
		quoted[i] = `"` + c + `"`
		args[i] = row[i]
	}

	//nolint:gosec // G201: table and column names come from the fixed layout map
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(quoted, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "),
	)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to append to %s: %w", table, err)
	}
	return nil
}

// ReadAll returns every row of table in insertion order, preceded by the header row.
// An empty table yields just the header.
func (r *TableRepository) ReadAll(ctx context.Context, table string) ([][]string, error) {
	cols, err := Columns(table)
	if err != nil {
		return nil, err
	}

	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = `"` + c + `"`
	}

	//nolint:gosec // G201: table and column names come from the fixed layout map
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY seq", strings.Join(quoted, ", "), table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s table: %w", table, err)
	}
	defer rows.Close()

	result := [][]string{cols}
	for rows.Next() {
		row := make([]string, len(cols))
		dst := make([]any, len(cols))
		for i := range row {
			dst[i] = &row[i]
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, fmt.Errorf("failed to scan %s table results: %w", table, err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s table: %w", table, err)
	}

	return result, nil
}
