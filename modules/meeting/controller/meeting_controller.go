package controller

import (
	"strconv"

	"calendar-insights/core/controller"
	"calendar-insights/core/errors"
	"calendar-insights/core/params"
	"calendar-insights/modules/meeting/dto"
	"calendar-insights/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// MeetingController handles the meeting read endpoints.
type MeetingController struct {
	MeetingService service.MeetingServiceInterface
}

func NewMeetingController(svc service.MeetingServiceInterface) *MeetingController {
	return &MeetingController{MeetingService: svc}
}

// ListMeetings handles GET /meetings with optional date, department and user
// filters plus pagination.
func (c *MeetingController) ListMeetings(ctx echo.Context) error {
	var req dto.MeetingListRequest
	if err := ctx.Bind(&req); err != nil {
		return controller.Error(ctx, errors.NewAppError(errors.ErrInvalidInput, "invalid query parameters", err))
	}

	result, err := c.MeetingService.ListMeetings(ctx.Request().Context(), &req, params.FromContext(ctx))
	if err != nil {
		return controller.Error(ctx, err)
	}
	return controller.Success(ctx, result, "meetings retrieved")
}

// GetMeeting handles GET /meetings/:event_id.
func (c *MeetingController) GetMeeting(ctx echo.Context) error {
	meeting, err := c.MeetingService.GetMeeting(ctx.Request().Context(), ctx.Param("event_id"))
	if err != nil {
		return controller.Error(ctx, err)
	}
	return controller.Success(ctx, meeting, "meeting retrieved")
}

// SummaryStats handles GET /stats/summary.
func (c *MeetingController) SummaryStats(ctx echo.Context) error {
	result, err := c.MeetingService.SummaryStats(ctx.Request().Context())
	if err != nil {
		return controller.Error(ctx, err)
	}
	return controller.Success(ctx, result, "summary stats retrieved")
}

// FilterOptions handles GET /stats/filters.
func (c *MeetingController) FilterOptions(ctx echo.Context) error {
	result, err := c.MeetingService.FilterOptions(ctx.Request().Context())
	if err != nil {
		return controller.Error(ctx, err)
	}
	return controller.Success(ctx, result, "filter options retrieved")
}

// Years handles GET /stats/years.
func (c *MeetingController) Years(ctx echo.Context) error {
	result, err := c.MeetingService.Years(ctx.Request().Context())
	if err != nil {
		return controller.Error(ctx, err)
	}
	return controller.Success(ctx, result, "year histogram retrieved")
}

// FetchRuns handles GET /fetch-runs.
func (c *MeetingController) FetchRuns(ctx echo.Context) error {
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	result, err := c.MeetingService.FetchRuns(ctx.Request().Context(), limit)
	if err != nil {
		return controller.Error(ctx, err)
	}
	return controller.Success(ctx, result, "fetch runs retrieved")
}
