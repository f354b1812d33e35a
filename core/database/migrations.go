package database

import (
	"context"
	"database/sql"

	"calendar-insights/core/errors"
	"calendar-insights/core/logger"

	"github.com/lib/pq"
)

// RunMigrations applies the additive event_id migration for tables created
// before the deduplication constraint existed:
//  1. add the event_id column when missing
//  2. add the unique constraint when missing
//
// Both checks run against information_schema; "already exists" errors from
// the engine are treated as success so concurrent starts stay idempotent.
func RunMigrations(ctx context.Context, db IDatabase) error {
	logger.Info("Database:RunMigrations:Start")

	if err := ensureEventIDColumn(ctx, db); err != nil {
		return err
	}
	if err := ensureEventIDConstraint(ctx, db); err != nil {
		return err
	}

	logger.Info("Database:RunMigrations:Complete")
	return nil
}

func ensureEventIDColumn(ctx context.Context, db IDatabase) error {
	var column string
	err := db.GetContext(ctx, &column, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = 'meetings'
		AND column_name = 'event_id'
	`)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return errors.NewAppError(errors.ErrSchema, "failed to check event_id column", err)
	}

	logger.Info("Database:RunMigrations:AddingEventIDColumn")
	if err := db.ExecContext(ctx, `ALTER TABLE meetings ADD COLUMN event_id TEXT`); err != nil {
		if isAlreadyExists(err) {
			return nil
		}
		return errors.NewAppError(errors.ErrSchema, "failed to add event_id column", err)
	}
	return nil
}

func ensureEventIDConstraint(ctx context.Context, db IDatabase) error {
	var constraint string
	err := db.GetContext(ctx, &constraint, `
		SELECT constraint_name
		FROM information_schema.table_constraints
		WHERE table_name = 'meetings'
		AND constraint_type = 'UNIQUE'
		AND constraint_name LIKE '%event_id%'
	`)
	if err == nil {
		logger.Info("Database:RunMigrations:ConstraintExists", "constraint", constraint)
		return ensureEventIDIndex(ctx, db)
	}
	if err != sql.ErrNoRows {
		return errors.NewAppError(errors.ErrSchema, "failed to check event_id constraint", err)
	}

	logger.Info("Database:RunMigrations:AddingEventIDConstraint")
	err = db.ExecContext(ctx, `ALTER TABLE meetings ADD CONSTRAINT unique_event_id UNIQUE (event_id)`)
	if err != nil && !isAlreadyExists(err) {
		return errors.NewAppError(errors.ErrSchema, "failed to add unique_event_id constraint", err)
	}
	return ensureEventIDIndex(ctx, db)
}

func ensureEventIDIndex(ctx context.Context, db IDatabase) error {
	if err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_meetings_event_id ON meetings (event_id)`); err != nil {
		return errors.NewAppError(errors.ErrSchema, "failed to create event_id index", err)
	}
	return nil
}

// isAlreadyExists matches the pq error classes raised when a constraint,
// index or relation with the same name is already in place.
func isAlreadyExists(err error) bool {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return false
	}
	switch pqErr.Code {
	case "42P07", // duplicate_table (indexes and relations)
		"42710", // duplicate_object (constraints)
		"42701": // duplicate_column
		return true
	}
	return false
}
