package model

// PositionChange describes how one ticker moved between two snapshots.
type PositionChange struct {
	Ticker         string  `json:"ticker"`
	PriceChange    float64 `json:"price_change"`
	PriceChangePct float64 `json:"price_change_pct"`
	ValueChange    float64 `json:"value_change"`
	IsNew          bool    `json:"is_new"`
	IsSold         bool    `json:"is_sold,omitempty"`
}

// DailyChange is the delta between the current snapshot and the previous one.
// First-run records (no previous snapshot) are never persisted.
type DailyChange struct {
	IsFirstRun     bool             `json:"is_first_run"`
	Date           string           `json:"date"`
	PrevDate       *string          `json:"prev_date"`
	ValueChange    float64          `json:"value_change"`
	ValueChangePct float64          `json:"value_change_pct"`
	PLChange       float64          `json:"pl_change"`
	DivChange      float64          `json:"div_change"`
	ReturnChange   float64          `json:"return_change"`
	TopGainers     []PositionChange `json:"top_gainers"`
	TopLosers      []PositionChange `json:"top_losers"`
	DaysBetween    int              `json:"days_between"`
	Message        string           `json:"message,omitempty"`
}

// DailyChangeRecord is a daily change as read back from the store.
type DailyChangeRecord struct {
	Date           string           `json:"date"`
	PrevDate       string           `json:"prev_date"`
	ValueChange    float64          `json:"value_change"`
	ValueChangePct float64          `json:"value_change_pct"`
	PLChange       float64          `json:"pl_change"`
	DivChange      float64          `json:"div_change"`
	ReturnChange   float64          `json:"return_change"`
	TopGainers     []PositionChange `json:"top_gainers"`
	TopLosers      []PositionChange `json:"top_losers"`
	Notes          string           `json:"notes"`
}
