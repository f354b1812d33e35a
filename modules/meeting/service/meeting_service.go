package service

import (
	"context"
	"time"

	"calendar-insights/core/cache"
	"calendar-insights/core/constants"
	coredto "calendar-insights/core/dto"
	"calendar-insights/core/errors"
	"calendar-insights/core/logger"
	"calendar-insights/core/params"
	"calendar-insights/modules/meeting/dto"
	"calendar-insights/modules/meeting/entity"
	"calendar-insights/modules/meeting/repository"
)

const (
	summaryStatsCacheKey  = "stats:summary"
	filterOptionsCacheKey = "stats:filters"
)

// MeetingServiceInterface is the read API over stored meetings.
type MeetingServiceInterface interface {
	ListMeetings(ctx context.Context, req *dto.MeetingListRequest, qp params.QueryParams) (*coredto.Pagination[entity.Meeting], error)
	GetMeeting(ctx context.Context, eventID string) (*entity.Meeting, error)
	SummaryStats(ctx context.Context) (*dto.SummaryStatsResponse, error)
	FilterOptions(ctx context.Context) (*dto.FilterOptionsResponse, error)
	Years(ctx context.Context) (*dto.YearsResponse, error)
	FetchRuns(ctx context.Context, limit int) (*dto.FetchRunsResponse, error)
}

type MeetingService struct {
	meetings *repository.MeetingRepository
	stats    *repository.StatsRepository
	runs     *repository.FetchRunRepository
	cache    *cache.Cache
}

func NewMeetingService(
	meetings *repository.MeetingRepository,
	stats *repository.StatsRepository,
	runs *repository.FetchRunRepository,
	c *cache.Cache,
) *MeetingService {
	return &MeetingService{meetings: meetings, stats: stats, runs: runs, cache: c}
}

func (s *MeetingService) ListMeetings(ctx context.Context, req *dto.MeetingListRequest, qp params.QueryParams) (*coredto.Pagination[entity.Meeting], error) {
	filter, err := buildFilter(req)
	if err != nil {
		return nil, err
	}
	filter.Limit = qp.PageSize
	filter.Offset = qp.Offset()

	total, err := s.stats.CountFiltered(ctx, filter)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "failed to count meetings", err)
	}
	meetings, err := s.stats.GetMeetings(ctx, filter)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "failed to list meetings", err)
	}
	return coredto.NewPagination(meetings, total, qp.PageNumber, qp.PageSize), nil
}

func (s *MeetingService) GetMeeting(ctx context.Context, eventID string) (*entity.Meeting, error) {
	if eventID == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "event id must not be empty", nil)
	}
	meeting, err := s.meetings.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "failed to load meeting", err)
	}
	if meeting == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "meeting not found", nil)
	}
	return meeting, nil
}

func buildFilter(req *dto.MeetingListRequest) (repository.MeetingFilter, error) {
	var filter repository.MeetingFilter
	if req == nil {
		return filter, nil
	}
	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return filter, errors.NewAppError(errors.ErrInvalidInput, "start_date must be YYYY-MM-DD", err)
		}
		filter.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return filter, errors.NewAppError(errors.ErrInvalidInput, "end_date must be YYYY-MM-DD", err)
		}
		// Inclusive end of day.
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}
	filter.Department = req.Department
	filter.UserEmail = req.UserEmail
	return filter, nil
}

// SummaryStats serves the trailing-30-day aggregates, cached for 30 minutes.
func (s *MeetingService) SummaryStats(ctx context.Context) (*dto.SummaryStatsResponse, error) {
	var cached dto.SummaryStatsResponse
	if s.cache.GetJSON(ctx, summaryStatsCacheKey, &cached) {
		return &cached, nil
	}

	stats, err := s.stats.GetSummaryStats(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "failed to compute summary stats", err)
	}
	response := &dto.SummaryStatsResponse{Stats: stats, GeneratedAt: time.Now().UTC()}
	s.cache.SetJSON(ctx, summaryStatsCacheKey, response, constants.SummaryStatsCacheTTL)
	return response, nil
}

// FilterOptions serves the dropdown values for the dashboard, cached for an hour.
func (s *MeetingService) FilterOptions(ctx context.Context) (*dto.FilterOptionsResponse, error) {
	var cached dto.FilterOptionsResponse
	if s.cache.GetJSON(ctx, filterOptionsCacheKey, &cached) {
		return &cached, nil
	}

	departments, err := s.stats.GetDepartments(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "failed to load departments", err)
	}
	users, err := s.stats.GetActiveUsers(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "failed to load active users", err)
	}

	response := &dto.FilterOptionsResponse{Departments: departments, Users: users}
	s.cache.SetJSON(ctx, filterOptionsCacheKey, response, constants.FilterOptionsCacheTTL)
	return response, nil
}

func (s *MeetingService) Years(ctx context.Context) (*dto.YearsResponse, error) {
	years, err := s.meetings.MeetingsByYear(ctx, constants.YearHistogramLimit)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "failed to load year histogram", err)
	}
	total, err := s.meetings.CountMeetings(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "failed to count meetings", err)
	}
	return &dto.YearsResponse{Years: years, Total: total}, nil
}

func (s *MeetingService) FetchRuns(ctx context.Context, limit int) (*dto.FetchRunsResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	runs, err := s.runs.Recent(ctx, limit)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "failed to load fetch history", err)
	}
	logger.Debug("MeetingService:FetchRuns", "count", len(runs))
	return &dto.FetchRunsResponse{Runs: runs}, nil
}
