package entity

import "time"

const (
	FetchTypeHistorical  = "historical"
	FetchTypeIncremental = "incremental"
	FetchTypeManual      = "manual"

	FetchStatusCompleted = "completed"
	FetchStatusFailed    = "failed"
)

// FetchRun is one audit row in fetch_history describing a pipeline run.
type FetchRun struct {
	ID             int64     `db:"id" json:"id"`
	RunID          string    `db:"run_id" json:"run_id"`
	FetchDate      time.Time `db:"fetch_date" json:"fetch_date"`
	StartDate      time.Time `db:"start_date" json:"start_date"`
	EndDate        time.Time `db:"end_date" json:"end_date"`
	Status         string    `db:"status" json:"status"`
	RecordsFetched int       `db:"records_fetched" json:"records_fetched"`
	ErrorMessage   string    `db:"error_message" json:"error_message"`
	FetchType      string    `db:"fetch_type" json:"fetch_type"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
