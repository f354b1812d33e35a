package database

import (
	"context"

	"calendar-insights/core/errors"
	"calendar-insights/core/logger"
)

// Schema setup is all-or-nothing: any DDL error aborts initialization and
// propagates to the caller.

var schemaStatements = []struct {
	name  string
	query string
}{
	{"meetings table", `
		CREATE TABLE IF NOT EXISTS meetings (
			id SERIAL PRIMARY KEY,
			event_id TEXT,
			calendar_id TEXT,
			organizer_email TEXT,
			user_email TEXT NOT NULL,
			department TEXT,
			division TEXT,
			subdepartment TEXT,
			is_manager BOOLEAN DEFAULT FALSE,
			start_time TIMESTAMP NOT NULL,
			end_time TIMESTAMP NOT NULL,
			duration_minutes INTEGER,
			attendees_count INTEGER DEFAULT 0,
			attendees_accepted INTEGER DEFAULT 0,
			attendees_declined INTEGER DEFAULT 0,
			attendees_tentative INTEGER DEFAULT 0,
			attendees_needs_action INTEGER DEFAULT 0,
			attendees_accepted_emails TEXT,
			summary TEXT,
			meet_link TEXT,
			html_link TEXT,
			is_one_on_one BOOLEAN DEFAULT FALSE,
			has_manager_attendee BOOLEAN DEFAULT FALSE,
			unique_departments INTEGER DEFAULT 1,
			departments_list TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`},
	{"users table", `
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			department TEXT,
			division TEXT,
			subdepartment TEXT,
			is_manager BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`},
	{"fetch_history table", `
		CREATE TABLE IF NOT EXISTS fetch_history (
			id SERIAL PRIMARY KEY,
			run_id TEXT,
			fetch_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			start_date TIMESTAMP,
			end_date TIMESTAMP,
			status TEXT,
			records_fetched INTEGER DEFAULT 0,
			error_message TEXT,
			fetch_type TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`},
	{"meetings user_email index", `CREATE INDEX IF NOT EXISTS idx_meetings_user_email ON meetings (user_email)`},
	{"meetings start_time index", `CREATE INDEX IF NOT EXISTS idx_meetings_start_time ON meetings (start_time)`},
	{"meetings department index", `CREATE INDEX IF NOT EXISTS idx_meetings_department ON meetings (department)`},
}

// EnsureSchema creates the meetings, users and fetch_history tables plus
// their indexes when absent. Safe to call on every start.
func EnsureSchema(ctx context.Context, db IDatabase) error {
	logger.Info("Database:EnsureSchema:Start")

	for _, stmt := range schemaStatements {
		if err := db.ExecContext(ctx, stmt.query); err != nil {
			logger.Error("Database:EnsureSchema:Error", "statement", stmt.name, "error", err)
			return errors.NewAppError(errors.ErrSchema, "failed to create "+stmt.name, err)
		}
	}

	logger.Info("Database:EnsureSchema:Complete")
	return nil
}
