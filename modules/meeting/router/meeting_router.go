package router

import (
	"calendar-insights/core/middleware"
	"calendar-insights/modules/meeting/controller"

	"github.com/labstack/echo/v4"
)

// MeetingRouter registers the meeting read endpoints.
type MeetingRouter struct {
	MeetingController *controller.MeetingController
}

func NewMeetingRouter(meetingController *controller.MeetingController) *MeetingRouter {
	return &MeetingRouter{
		MeetingController: meetingController,
	}
}

func (r *MeetingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	v1.GET("/meetings", r.MeetingController.ListMeetings)
	v1.GET("/meetings/:event_id", r.MeetingController.GetMeeting)
	v1.GET("/fetch-runs", r.MeetingController.FetchRuns)

	stats := v1.Group("/stats")
	stats.GET("/summary", r.MeetingController.SummaryStats)
	stats.GET("/filters", r.MeetingController.FilterOptions)
	stats.GET("/years", r.MeetingController.Years)
}
