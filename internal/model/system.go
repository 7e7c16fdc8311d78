package model

// RunSummary reports the outcome of one tracker run.
type RunSummary struct {
	RunID            string           `json:"run_id"`
	Snapshot         Snapshot         `json:"snapshot"`
	Change           *DailyChange     `json:"change,omitempty"`
	Holdings         []HoldingMetrics `json:"holdings"`
	DegradedHoldings []DegradedEntry  `json:"degraded_holdings"`
	SnapshotSaved    bool             `json:"snapshot_saved"`
	ChangeSaved      bool             `json:"change_saved"`
}

// DegradedEntry names a holding that completed with zeroed metrics and why.
type DegradedEntry struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}

// VersionInfo holds application and database version information.
type VersionInfo struct {
	AppVersion string `json:"app_version"`
	DbVersion  string `json:"db_version"`
}
