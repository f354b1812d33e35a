package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"calendar-insights/core/database"
	"calendar-insights/core/logger"
	"calendar-insights/modules/meeting/entity"
)

// StatsRepository serves the read side: filtered meeting lists and the
// aggregates behind the dashboard endpoints and the insights assistant.
type StatsRepository struct {
	DB database.IDatabase
}

func NewStatsRepository(db database.IDatabase) *StatsRepository {
	return &StatsRepository{DB: db}
}

type MeetingFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Department string
	UserEmail  string
	Limit      int
	Offset     int
}

func (f MeetingFilter) whereClause() (string, []any) {
	conditions := []string{"1=1"}
	var args []any

	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		conditions = append(conditions, fmt.Sprintf("start_time >= $%d", len(args)))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		conditions = append(conditions, fmt.Sprintf("start_time <= $%d", len(args)))
	}
	if f.Department != "" {
		args = append(args, f.Department)
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(args)))
	}
	if f.UserEmail != "" {
		args = append(args, f.UserEmail)
		conditions = append(conditions, fmt.Sprintf("user_email = $%d", len(args)))
	}
	return strings.Join(conditions, " AND "), args
}

func (r *StatsRepository) GetMeetings(ctx context.Context, filter MeetingFilter) ([]entity.Meeting, error) {
	where, args := filter.whereClause()

	limit := filter.Limit
	if limit <= 0 {
		limit = 10000
	}
	args = append(args, limit)
	limitClause := fmt.Sprintf("LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	offsetClause := fmt.Sprintf("OFFSET $%d", len(args))

	query := fmt.Sprintf(`
		SELECT * FROM meetings
		WHERE %s
		ORDER BY start_time DESC
		%s %s
	`, where, limitClause, offsetClause)

	var meetings []entity.Meeting
	if err := r.DB.SelectContext(ctx, &meetings, query, args...); err != nil {
		logger.Error("StatsRepository:GetMeetings", "error", err)
		return nil, err
	}
	return meetings, nil
}

func (r *StatsRepository) CountFiltered(ctx context.Context, filter MeetingFilter) (int, error) {
	where, args := filter.whereClause()
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM meetings WHERE %s`, where)
	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		logger.Error("StatsRepository:CountFiltered", "error", err)
		return 0, err
	}
	return count, nil
}

// GetSummaryStats aggregates the trailing 30 days.
func (r *StatsRepository) GetSummaryStats(ctx context.Context) (*entity.SummaryStats, error) {
	query := `
		SELECT
			COUNT(*)::int AS total_meetings,
			COUNT(DISTINCT user_email)::int AS total_users,
			COUNT(DISTINCT department)::int AS total_departments,
			COALESCE(AVG(duration_minutes), 0) AS avg_duration,
			COALESCE(AVG(attendees_count), 0) AS avg_attendees,
			MIN(start_time) AS earliest_meeting,
			MAX(start_time) AS latest_meeting
		FROM meetings
		WHERE start_time >= (CURRENT_DATE - INTERVAL '30 days')
	`
	var stats entity.SummaryStats
	if err := r.DB.GetContext(ctx, &stats, query); err != nil {
		logger.Error("StatsRepository:GetSummaryStats", "error", err)
		return nil, err
	}
	return &stats, nil
}

func (r *StatsRepository) GetDepartments(ctx context.Context) ([]string, error) {
	var departments []string
	query := `SELECT DISTINCT department FROM meetings WHERE department IS NOT NULL ORDER BY department`
	if err := r.DB.SelectContext(ctx, &departments, query); err != nil {
		logger.Error("StatsRepository:GetDepartments", "error", err)
		return nil, err
	}
	return departments, nil
}

// GetActiveUsers lists users with meetings in the trailing 90 days.
func (r *StatsRepository) GetActiveUsers(ctx context.Context) ([]string, error) {
	var users []string
	query := `
		SELECT DISTINCT user_email
		FROM meetings
		WHERE user_email IS NOT NULL
		  AND start_time >= (CURRENT_DATE - INTERVAL '90 days')
		ORDER BY user_email
		LIMIT 1000
	`
	if err := r.DB.SelectContext(ctx, &users, query); err != nil {
		logger.Error("StatsRepository:GetActiveUsers", "error", err)
		return nil, err
	}
	return users, nil
}

func (r *StatsRepository) CountOneOnOne(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM meetings WHERE is_one_on_one`); err != nil {
		logger.Error("StatsRepository:CountOneOnOne", "error", err)
		return 0, err
	}
	return count, nil
}

type LabelCount struct {
	Label string `db:"label" json:"label"`
	Count int    `db:"count" json:"count"`
}

// TopUsers ranks organizers by meeting volume.
func (r *StatsRepository) TopUsers(ctx context.Context, limit int) ([]LabelCount, error) {
	query := `
		SELECT user_email AS label, COUNT(*)::int AS count
		FROM meetings
		GROUP BY user_email
		ORDER BY count DESC
		LIMIT $1
	`
	var rows []LabelCount
	if err := r.DB.SelectContext(ctx, &rows, query, limit); err != nil {
		logger.Error("StatsRepository:TopUsers", "error", err)
		return nil, err
	}
	return rows, nil
}

func (r *StatsRepository) TopDepartments(ctx context.Context, limit int) ([]LabelCount, error) {
	query := `
		SELECT department AS label, COUNT(*)::int AS count
		FROM meetings
		GROUP BY department
		ORDER BY count DESC
		LIMIT $1
	`
	var rows []LabelCount
	if err := r.DB.SelectContext(ctx, &rows, query, limit); err != nil {
		logger.Error("StatsRepository:TopDepartments", "error", err)
		return nil, err
	}
	return rows, nil
}

// PeakHour returns the hour of day with the most meetings.
func (r *StatsRepository) PeakHour(ctx context.Context) (LabelCount, error) {
	query := `
		SELECT EXTRACT(HOUR FROM start_time)::int::text AS label, COUNT(*)::int AS count
		FROM meetings
		GROUP BY EXTRACT(HOUR FROM start_time)
		ORDER BY count DESC
		LIMIT 1
	`
	var row LabelCount
	if err := r.DB.GetContext(ctx, &row, query); err != nil {
		logger.Error("StatsRepository:PeakHour", "error", err)
		return LabelCount{}, err
	}
	return row, nil
}

type DurationBuckets struct {
	Short  int `db:"short" json:"short"`
	Medium int `db:"medium" json:"medium"`
	Long   int `db:"long" json:"long"`
}

// DurationDistribution buckets meetings into <30, 30-60 and >60 minutes.
func (r *StatsRepository) DurationDistribution(ctx context.Context) (DurationBuckets, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE duration_minutes < 30)::int AS short,
			COUNT(*) FILTER (WHERE duration_minutes BETWEEN 30 AND 60)::int AS medium,
			COUNT(*) FILTER (WHERE duration_minutes > 60)::int AS long
		FROM meetings
	`
	var buckets DurationBuckets
	if err := r.DB.GetContext(ctx, &buckets, query); err != nil {
		logger.Error("StatsRepository:DurationDistribution", "error", err)
		return DurationBuckets{}, err
	}
	return buckets, nil
}
