package service

import (
	"context"
	"fmt"
	"time"

	"calendar-insights/core/constants"
	"calendar-insights/core/errors"
	"calendar-insights/core/logger"
	meetingentity "calendar-insights/modules/meeting/entity"

	"github.com/google/uuid"
)

// EventSource produces normalized meetings from an external calendar.
type EventSource interface {
	Authenticate(ctx context.Context) error
	FetchRange(ctx context.Context, start, end time.Time, maxResults int) ([]meetingentity.Meeting, error)
}

// MeetingStore persists batches and answers the post-run summary queries.
type MeetingStore interface {
	StoreBatch(ctx context.Context, meetings []meetingentity.Meeting, mode meetingentity.StoreMode) (meetingentity.StoreResult, error)
	CountMeetings(ctx context.Context) (int, error)
	MeetingsByYear(ctx context.Context, limit int) ([]meetingentity.YearCount, error)
}

// Enricher annotates meetings with directory data before storage.
type Enricher interface {
	Enrich(ctx context.Context, meetings []meetingentity.Meeting)
}

// RunRecorder appends to the fetch_history audit trail.
type RunRecorder interface {
	Record(ctx context.Context, run *meetingentity.FetchRun) error
}

// FetchService orchestrates a full pipeline run: window planning, windowed
// fetching with pacing, directory enrichment, storage and the audit record.
type FetchService struct {
	source   EventSource
	store    MeetingStore
	enricher Enricher
	runs     RunRecorder
	delay    time.Duration
}

func NewFetchService(source EventSource, store MeetingStore, enricher Enricher, runs RunRecorder) *FetchService {
	return &FetchService{
		source:   source,
		store:    store,
		enricher: enricher,
		runs:     runs,
		delay:    constants.WindowFetchDelay,
	}
}

// FetchHistorical rebuilds the meetings table from the last `years` years.
// The whole range is fetched window by window before a single full-replace
// store, so a failed run never leaves a half-empty table behind.
func (s *FetchService) FetchHistorical(ctx context.Context, years int) error {
	if years <= 0 {
		years = 1
	}
	end := time.Now().UTC()
	start := end.AddDate(-years, 0, 0)

	logger.Info("FetchService:FetchHistorical:Start", "years", years,
		"start", start.Format("2006-01-02"), "end", end.Format("2006-01-02"))

	meetings, err := s.fetchWindowed(ctx, start, end, constants.MaxFetchResults)
	if err != nil {
		s.recordRun(ctx, meetingentity.FetchTypeHistorical, start, end, 0, err)
		return err
	}
	if len(meetings) == 0 {
		err := errors.NewAppError(errors.ErrWindowFetch, "historical fetch returned no events", nil)
		s.recordRun(ctx, meetingentity.FetchTypeHistorical, start, end, 0, err)
		return err
	}

	stored, err := s.enrichAndStore(ctx, meetings, meetingentity.StoreModeHistorical)
	s.recordRun(ctx, meetingentity.FetchTypeHistorical, start, end, stored, err)
	if err != nil {
		return err
	}

	s.logRunSummary(ctx, meetingentity.FetchTypeHistorical)
	return nil
}

// FetchIncremental merges the last `days` days into the table. An empty
// fetch is a valid outcome here; quiet calendars are not an error.
func (s *FetchService) FetchIncremental(ctx context.Context, days int) error {
	if days <= 0 {
		days = 1
	}
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	logger.Info("FetchService:FetchIncremental:Start", "days", days)

	if err := s.source.Authenticate(ctx); err != nil {
		s.recordRun(ctx, meetingentity.FetchTypeIncremental, start, end, 0, err)
		return err
	}

	meetings, err := s.source.FetchRange(ctx, start, end, constants.MaxFetchResults)
	if err != nil {
		s.recordRun(ctx, meetingentity.FetchTypeIncremental, start, end, 0, err)
		return err
	}
	if len(meetings) == 0 {
		logger.Info("FetchService:FetchIncremental:NoEvents")
		s.recordRun(ctx, meetingentity.FetchTypeIncremental, start, end, 0, nil)
		return nil
	}

	stored, err := s.enrichAndStore(ctx, meetings, meetingentity.StoreModeIncremental)
	s.recordRun(ctx, meetingentity.FetchTypeIncremental, start, end, stored, err)
	if err != nil {
		return err
	}

	s.logRunSummary(ctx, meetingentity.FetchTypeIncremental)
	return nil
}

// FetchDateRange merges an explicit [start, end) range without touching
// anything outside it.
func (s *FetchService) FetchDateRange(ctx context.Context, start, end time.Time) error {
	if !start.Before(end) {
		return errors.NewAppError(errors.ErrInvalidInput, "start date must be before end date", nil)
	}

	logger.Info("FetchService:FetchDateRange:Start",
		"start", start.Format("2006-01-02"), "end", end.Format("2006-01-02"))

	meetings, err := s.fetchWindowed(ctx, start, end, constants.MaxFetchResults)
	if err != nil {
		s.recordRun(ctx, meetingentity.FetchTypeManual, start, end, 0, err)
		return err
	}

	stored, err := s.enrichAndStore(ctx, meetings, meetingentity.StoreModeIncremental)
	s.recordRun(ctx, meetingentity.FetchTypeManual, start, end, stored, err)
	if err != nil {
		return err
	}

	s.logRunSummary(ctx, meetingentity.FetchTypeManual)
	return nil
}

// FetchDaily is the scheduled variant: yesterday plus today.
func (s *FetchService) FetchDaily(ctx context.Context) error {
	return s.FetchIncremental(ctx, 1)
}

// fetchWindowed fetches every planned window, pacing requests and tolerating
// individual window failures. Authentication failure aborts immediately; a
// run where every window failed is reported as a fetch error.
func (s *FetchService) fetchWindowed(ctx context.Context, start, end time.Time, maxResults int) ([]meetingentity.Meeting, error) {
	if err := s.source.Authenticate(ctx); err != nil {
		return nil, err
	}

	windows := PlanWindows(start, end, constants.DefaultWindowDays)
	logger.Info("FetchService:fetchWindowed:Planned", "windows", len(windows))

	var meetings []meetingentity.Meeting
	failed := 0
	for i, window := range windows {
		if i > 0 && s.delay > 0 {
			time.Sleep(s.delay)
		}

		batch, err := s.source.FetchRange(ctx, window.Start, window.End, maxResults)
		if err != nil {
			if errors.HasCode(err, errors.ErrAuthentication) {
				return nil, err
			}
			failed++
			logger.Error("FetchService:fetchWindowed:WindowFailed",
				"window", i+1,
				"start", window.Start.Format("2006-01-02"),
				"end", window.End.Format("2006-01-02"),
				"error", err,
			)
			continue
		}
		meetings = append(meetings, batch...)
	}

	if len(windows) > 0 && failed == len(windows) {
		return nil, errors.NewAppError(errors.ErrWindowFetch,
			fmt.Sprintf("all %d fetch windows failed", len(windows)), nil)
	}

	logger.Info("FetchService:fetchWindowed:Complete",
		"windows", len(windows), "failed", failed, "meetings", len(meetings))
	return meetings, nil
}

func (s *FetchService) enrichAndStore(ctx context.Context, meetings []meetingentity.Meeting, mode meetingentity.StoreMode) (int, error) {
	s.enricher.Enrich(ctx, meetings)

	result, err := s.store.StoreBatch(ctx, meetings, mode)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrDatabase, "failed to store meetings", err)
	}
	return result.Inserted + result.Updated, nil
}

// recordRun writes the audit row. Audit failures are logged but never
// override the outcome of a run that already stored its data.
func (s *FetchService) recordRun(ctx context.Context, fetchType string, start, end time.Time, records int, runErr error) {
	run := &meetingentity.FetchRun{
		RunID:          uuid.NewString(),
		StartDate:      start,
		EndDate:        end,
		Status:         meetingentity.FetchStatusCompleted,
		RecordsFetched: records,
		FetchType:      fetchType,
	}
	if runErr != nil {
		run.Status = meetingentity.FetchStatusFailed
		run.ErrorMessage = runErr.Error()
	}
	if err := s.runs.Record(ctx, run); err != nil {
		logger.Error("FetchService:recordRun:AuditFailed", "run_id", run.RunID, "error", err)
	}
}

func (s *FetchService) logRunSummary(ctx context.Context, fetchType string) {
	total, err := s.store.CountMeetings(ctx)
	if err != nil {
		logger.Warn("FetchService:logRunSummary:CountFailed", "error", err)
		return
	}
	logger.Info("FetchService:RunSummary", "fetch_type", fetchType, "total_meetings", total)

	years, err := s.store.MeetingsByYear(ctx, constants.YearHistogramLimit)
	if err != nil {
		logger.Warn("FetchService:logRunSummary:HistogramFailed", "error", err)
		return
	}
	for _, yc := range years {
		logger.Info("FetchService:RunSummary:Year", "year", yc.Year, "count", yc.Count)
	}
}
