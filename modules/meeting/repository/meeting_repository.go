package repository

import (
	"context"
	"database/sql"

	"calendar-insights/core/constants"
	"calendar-insights/core/database"
	"calendar-insights/core/logger"
	"calendar-insights/modules/meeting/entity"
)

// MeetingRepository is the upsert store for the meetings table. The unique
// constraint on event_id is the final dedup guarantee; the lookup-then-update
// path here only decides between insert and update.
type MeetingRepository struct {
	DB database.IDatabase
}

func NewMeetingRepository(db database.IDatabase) *MeetingRepository {
	return &MeetingRepository{DB: db}
}

const insertMeetingQuery = `
	INSERT INTO meetings (
		event_id, calendar_id, organizer_email, user_email, department, division,
		subdepartment, is_manager, start_time, end_time, duration_minutes,
		attendees_count, attendees_accepted, attendees_declined, attendees_tentative,
		attendees_needs_action, attendees_accepted_emails, summary, meet_link,
		html_link, is_one_on_one, has_manager_attendee, unique_departments,
		departments_list
	) VALUES (
		:event_id, :calendar_id, :organizer_email, :user_email, :department, :division,
		:subdepartment, :is_manager, :start_time, :end_time, :duration_minutes,
		:attendees_count, :attendees_accepted, :attendees_declined, :attendees_tentative,
		:attendees_needs_action, :attendees_accepted_emails, :summary, :meet_link,
		:html_link, :is_one_on_one, :has_manager_attendee, :unique_departments,
		:departments_list
	) ON CONFLICT (event_id) DO NOTHING
`

const updateMeetingQuery = `
	UPDATE meetings SET
		summary = :summary,
		start_time = :start_time,
		end_time = :end_time,
		duration_minutes = :duration_minutes,
		attendees_count = :attendees_count,
		attendees_accepted = :attendees_accepted,
		attendees_declined = :attendees_declined,
		attendees_tentative = :attendees_tentative,
		attendees_needs_action = :attendees_needs_action,
		attendees_accepted_emails = :attendees_accepted_emails,
		meet_link = :meet_link,
		html_link = :html_link
	WHERE event_id = :event_id
`

// StoreBatch applies a batch of meetings in the given mode. Historical mode
// clears the table first and inserts everything; incremental mode merges by
// event_id and never deletes. Per-record failures are counted as skipped and
// do not abort the batch.
func (r *MeetingRepository) StoreBatch(ctx context.Context, meetings []entity.Meeting, mode entity.StoreMode) (entity.StoreResult, error) {
	var result entity.StoreResult

	if mode == entity.StoreModeHistorical {
		if err := r.DeleteAll(ctx); err != nil {
			return result, err
		}
		logger.Info("MeetingRepository:StoreBatch:ClearedExisting")
	}

	logger.Info("MeetingRepository:StoreBatch:Start", "records", len(meetings), "mode", mode)

	for i := range meetings {
		meeting := &meetings[i]

		if mode == entity.StoreModeIncremental {
			existing, err := r.existsByEventID(ctx, meeting.EventID)
			if err != nil {
				result.Skipped++
				r.logSkip(result.Skipped, meeting.EventID, err)
				continue
			}
			if existing {
				if _, err := r.DB.NamedExecContext(ctx, updateMeetingQuery, meeting); err != nil {
					result.Skipped++
					r.logSkip(result.Skipped, meeting.EventID, err)
					continue
				}
				result.Updated++
				continue
			}
		}

		res, err := r.DB.NamedExecContext(ctx, insertMeetingQuery, meeting)
		if err != nil {
			result.Skipped++
			r.logSkip(result.Skipped, meeting.EventID, err)
			continue
		}

		// DO NOTHING on conflict reports zero affected rows; a concurrent
		// run already inserted this event.
		affected, err := res.RowsAffected()
		if err == nil && affected == 0 {
			result.Skipped++
			continue
		}
		result.Inserted++

		if (i+1)%100 == 0 {
			logger.Info("MeetingRepository:StoreBatch:Progress", "processed", i+1, "total", len(meetings))
		}
	}

	logger.Info("MeetingRepository:StoreBatch:Complete",
		"mode", mode,
		"inserted", result.Inserted,
		"updated", result.Updated,
		"skipped", result.Skipped,
	)
	return result, nil
}

func (r *MeetingRepository) logSkip(skipped int, eventID string, err error) {
	if skipped <= constants.MaxLoggedSkips {
		logger.Error("MeetingRepository:StoreBatch:RecordSkipped", "event_id", eventID, "error", err)
	}
}

func (r *MeetingRepository) existsByEventID(ctx context.Context, eventID string) (bool, error) {
	var id int64
	err := r.DB.GetContext(ctx, &id, `SELECT id FROM meetings WHERE event_id = $1`, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteAll clears the meetings table. Used by historical full-replace runs
// and explicit cleanup tooling only.
func (r *MeetingRepository) DeleteAll(ctx context.Context) error {
	if err := r.DB.ExecContext(ctx, `DELETE FROM meetings`); err != nil {
		logger.Error("MeetingRepository:DeleteAll", "error", err)
		return err
	}
	return nil
}

func (r *MeetingRepository) CountMeetings(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM meetings`); err != nil {
		logger.Error("MeetingRepository:CountMeetings", "error", err)
		return 0, err
	}
	return count, nil
}

// MeetingsByYear returns the per-year histogram shown after each run.
func (r *MeetingRepository) MeetingsByYear(ctx context.Context, limit int) ([]entity.YearCount, error) {
	query := `
		SELECT EXTRACT(YEAR FROM start_time)::int AS year, COUNT(*)::int AS count
		FROM meetings
		GROUP BY EXTRACT(YEAR FROM start_time)
		ORDER BY year DESC
		LIMIT $1
	`
	var counts []entity.YearCount
	if err := r.DB.SelectContext(ctx, &counts, query, limit); err != nil {
		logger.Error("MeetingRepository:MeetingsByYear", "error", err)
		return nil, err
	}
	return counts, nil
}

func (r *MeetingRepository) GetByEventID(ctx context.Context, eventID string) (*entity.Meeting, error) {
	var meeting entity.Meeting
	err := r.DB.GetContext(ctx, &meeting, `SELECT * FROM meetings WHERE event_id = $1`, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MeetingRepository:GetByEventID", "event_id", eventID, "error", err)
		return nil, err
	}
	return &meeting, nil
}
