package apperrors

import "errors"

// Analytics errors are produced by the metrics engine itself.
var (
	// ErrNoPriceData indicates that a symbol has no price history to align against.
	// Holdings hitting this error are degraded to zeroed metrics; the batch continues.
	ErrNoPriceData = errors.New("no price data")

	// ErrIncompleteMetrics indicates that a metrics record is missing a field required
	// to build a snapshot. The whole snapshot build fails.
	ErrIncompleteMetrics = errors.New("incomplete metrics")

	// ErrEmptyHistory indicates that no snapshots have been persisted yet.
	ErrEmptyHistory = errors.New("empty snapshot history")
)

// Input errors represent invalid holdings or configuration.
var (
	// ErrNoHoldings indicates that the holdings source returned no rows.
	ErrNoHoldings = errors.New("no holdings loaded")

	// ErrInvalidHolding indicates that a holdings row could not be parsed.
	ErrInvalidHolding = errors.New("invalid holding")

	ErrInvalidSymbol = errors.New("symbol is required")
)

// Storage errors represent failures in the snapshot table store.
var (
	// ErrUnknownTable indicates an append or read against a table the store does not manage.
	ErrUnknownTable = errors.New("unknown table")

	// ErrInvalidRow indicates a row whose column count or values do not match the table layout.
	ErrInvalidRow = errors.New("invalid row")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToFetchPrices     = errors.New("failed to fetch price history")
	ErrFailedToLoadHoldings    = errors.New("failed to load holdings")
	ErrFailedToSaveSnapshot    = errors.New("failed to save snapshot")
	ErrFailedToSaveDailyChange = errors.New("failed to save daily change")
	ErrFailedToRetrieveHistory = errors.New("failed to retrieve snapshot history")
	ErrFailedToRetrieveChanges = errors.New("failed to retrieve daily changes")
)
