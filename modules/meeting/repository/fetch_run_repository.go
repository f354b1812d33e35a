package repository

import (
	"context"

	"calendar-insights/core/database"
	"calendar-insights/core/logger"
	"calendar-insights/modules/meeting/entity"
)

// FetchRunRepository writes and reads the fetch_history audit trail.
type FetchRunRepository struct {
	DB database.IDatabase
}

func NewFetchRunRepository(db database.IDatabase) *FetchRunRepository {
	return &FetchRunRepository{DB: db}
}

func (r *FetchRunRepository) Record(ctx context.Context, run *entity.FetchRun) error {
	query := `
		INSERT INTO fetch_history (run_id, start_date, end_date, status, records_fetched, error_message, fetch_type)
		VALUES (:run_id, :start_date, :end_date, :status, :records_fetched, :error_message, :fetch_type)
	`
	if _, err := r.DB.NamedExecContext(ctx, query, run); err != nil {
		// The audit trail must never fail a run that already stored data.
		logger.Error("FetchRunRepository:Record", "run_id", run.RunID, "error", err)
		return err
	}
	return nil
}

func (r *FetchRunRepository) Recent(ctx context.Context, limit int) ([]entity.FetchRun, error) {
	query := `
		SELECT id, run_id, fetch_date, start_date, end_date, status,
		       records_fetched, COALESCE(error_message, '') AS error_message,
		       fetch_type, created_at
		FROM fetch_history
		ORDER BY fetch_date DESC
		LIMIT $1
	`
	var runs []entity.FetchRun
	if err := r.DB.SelectContext(ctx, &runs, query, limit); err != nil {
		logger.Error("FetchRunRepository:Recent", "error", err)
		return nil, err
	}
	return runs, nil
}
