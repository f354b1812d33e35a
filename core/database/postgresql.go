package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"calendar-insights/core/config"
	"calendar-insights/core/constants"
	"calendar-insights/core/errors"
	"calendar-insights/core/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type IDatabase interface {
	ExecContext(ctx context.Context, query string, args ...any) error
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	NamedQueryContext(ctx context.Context, query string, arg any) (*sqlx.Rows, error)
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	PingContext(ctx context.Context) error
}

type Database struct {
	db   *sql.DB
	sqlx *sqlx.DB
}

// InitDB opens a connection pool against PostgreSQL, retrying with a fixed
// delay for a bounded number of attempts. Managed databases (Cloud SQL and
// the like) can take a while to accept connections after a cold start.
func InitDB(cfg config.PostgresConfig) (*Database, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DB, cfg.SSLMode)

	var sqlxDB *sqlx.DB
	var err error
	for attempt := 1; attempt <= constants.DatabaseConnectAttempts; attempt++ {
		logger.Info("Database:InitDB:Connecting",
			"host", cfg.Host,
			"database", cfg.DB,
			"attempt", attempt,
			"max_attempts", constants.DatabaseConnectAttempts,
		)

		sqlxDB, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			break
		}

		if attempt == constants.DatabaseConnectAttempts {
			logger.Error("Database:InitDB:Exhausted", "error", err, "attempts", attempt)
			return nil, errors.NewAppError(errors.ErrConnection,
				fmt.Sprintf("failed to connect to database after %d attempts", attempt), err)
		}
		logger.Warn("Database:InitDB:Retry", "error", err, "delay", constants.DatabaseConnectRetryDelay)
		time.Sleep(constants.DatabaseConnectRetryDelay)
	}

	sqlDB := sqlxDB.DB
	sqlDB.SetMaxOpenConns(constants.DatabaseMaxOpenConns)
	sqlDB.SetMaxIdleConns(constants.DatabaseMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(constants.DatabaseConnMaxLifetime) * time.Minute)

	logger.Info("Database:InitDB:Success",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DB,
		"user", cfg.User,
	)

	return &Database{db: sqlDB, sqlx: sqlxDB}, nil
}

func (d *Database) ExecContext(ctx context.Context, query string, args ...any) error {
	_, err := d.sqlx.ExecContext(ctx, query, args...)
	return err
}

func (d *Database) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return d.sqlx.GetContext(ctx, dest, query, args...)
}

func (d *Database) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	return d.sqlx.SelectContext(ctx, dest, query, args...)
}

func (d *Database) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return d.db.QueryRowContext(ctx, query, args...)
}

func (d *Database) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.db.QueryContext(ctx, query, args...)
}

func (d *Database) NamedQueryContext(ctx context.Context, query string, arg any) (*sqlx.Rows, error) {
	return d.sqlx.NamedQueryContext(ctx, query, arg)
}

func (d *Database) NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error) {
	return d.sqlx.NamedExecContext(ctx, query, arg)
}

func (d *Database) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *Database) Close() error {
	return d.sqlx.Close()
}
