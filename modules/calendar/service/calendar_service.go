package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"calendar-insights/core/config"
	"calendar-insights/core/constants"
	"calendar-insights/core/errors"
	"calendar-insights/core/logger"
	"calendar-insights/modules/calendar/dto"
	"calendar-insights/modules/calendar/mapper"
	"calendar-insights/modules/meeting/entity"
)

const googleCalendarAPIBase = "https://www.googleapis.com/calendar/v3"

// CalendarService is the event source adapter: it authenticates lazily
// against Google Calendar and turns raw events into Meeting records.
type CalendarService struct {
	baseURL       string
	calendarID    string
	tokens        *TokenManager
	client        *http.Client
	accessToken   string
	authenticated bool
}

func NewCalendarService(cfg *config.Config) *CalendarService {
	return &CalendarService{
		baseURL:    googleCalendarAPIBase,
		calendarID: cfg.Google.CalendarID,
		tokens:     NewTokenManager(cfg.Google),
		client:     &http.Client{Timeout: constants.DefaultTimeout},
	}
}

// Authenticate obtains a bearer token, refreshing when needed. An
// authentication failure is fatal for the run; callers must not treat the
// resulting empty fetch as "no events".
func (s *CalendarService) Authenticate(ctx context.Context) error {
	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		logger.Error("CalendarService:Authenticate:Error", "error", err)
		return err
	}
	s.accessToken = token
	s.authenticated = true
	logger.Info("CalendarService:Authenticate:Success")
	return nil
}

// FetchRange fetches and normalizes all events in [start, end). Records that
// fail validation are dropped and counted, not surfaced as errors.
func (s *CalendarService) FetchRange(ctx context.Context, start, end time.Time, maxResults int) ([]entity.Meeting, error) {
	if !s.authenticated {
		if err := s.Authenticate(ctx); err != nil {
			return nil, err
		}
	}
	if maxResults <= 0 {
		maxResults = constants.MaxFetchResults
	}

	events, err := s.listEvents(ctx, start, end, maxResults)
	if err != nil {
		return nil, err
	}

	meetings := make([]entity.Meeting, 0, len(events))
	dropped := 0
	for _, event := range events {
		meeting, err := mapper.ToMeeting(event, s.calendarID)
		if err != nil {
			dropped++
			if dropped <= constants.MaxLoggedSkips {
				logger.Warn("CalendarService:FetchRange:RecordDropped", "event_id", event.ID, "error", err)
			}
			continue
		}
		meetings = append(meetings, *meeting)
	}

	logger.Info("CalendarService:FetchRange:Complete",
		"start", start.Format(time.RFC3339),
		"end", end.Format(time.RFC3339),
		"events", len(events),
		"meetings", len(meetings),
		"dropped", dropped,
	)
	return meetings, nil
}

// listEvents pages through the events list until the provider stops
// returning a next token, so a busy window is never truncated at one page.
func (s *CalendarService) listEvents(ctx context.Context, start, end time.Time, maxResults int) ([]dto.GoogleCalendarEvent, error) {
	apiURL := fmt.Sprintf("%s/calendars/%s/events", s.baseURL, url.PathEscape(s.calendarID))

	var events []dto.GoogleCalendarEvent
	pageToken := ""
	for {
		query := url.Values{}
		query.Set("timeMin", start.UTC().Format(time.RFC3339))
		query.Set("timeMax", end.UTC().Format(time.RFC3339))
		query.Set("maxResults", strconv.Itoa(maxResults))
		query.Set("singleEvents", "true")
		query.Set("orderBy", "startTime")
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		var response dto.EventListResponse
		if err := s.getJSON(ctx, apiURL+"?"+query.Encode(), &response); err != nil {
			return nil, err
		}
		events = append(events, response.Items...)

		if response.NextPageToken == "" {
			return events, nil
		}
		pageToken = response.NextPageToken
	}
}

// ListCalendars returns all calendars the credential can read.
func (s *CalendarService) ListCalendars(ctx context.Context) ([]dto.GoogleCalendar, error) {
	if !s.authenticated {
		if err := s.Authenticate(ctx); err != nil {
			return nil, err
		}
	}

	var response dto.CalendarListResponse
	if err := s.getJSON(ctx, s.baseURL+"/users/me/calendarList", &response); err != nil {
		return nil, err
	}
	return response.Items, nil
}

func (s *CalendarService) getJSON(ctx context.Context, apiURL string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.NewAppError(errors.ErrWindowFetch, "failed to call Google Calendar API", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		body, _ := io.ReadAll(resp.Body)
		logger.Error("CalendarService:getJSON:AuthError", "status", resp.StatusCode, "body", string(body))
		s.authenticated = false
		return errors.NewAppError(errors.ErrAuthentication,
			fmt.Sprintf("Google Calendar API rejected credentials: %d", resp.StatusCode), nil)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		logger.Error("CalendarService:getJSON:APIError", "status", resp.StatusCode, "body", string(body))
		return errors.NewAppError(errors.ErrWindowFetch,
			fmt.Sprintf("Google Calendar API error: %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return errors.NewAppError(errors.ErrWindowFetch, "failed to parse Google Calendar response", err)
	}
	return nil
}
