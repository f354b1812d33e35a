package meeting

import (
	"calendar-insights/core/cache"
	"calendar-insights/core/database"
	"calendar-insights/core/middleware"
	"calendar-insights/modules/meeting/controller"
	"calendar-insights/modules/meeting/repository"
	"calendar-insights/modules/meeting/router"
	"calendar-insights/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// Init wires the meeting module and registers its routes.
func Init(e *echo.Echo, db database.IDatabase, c *cache.Cache, mw *middleware.Middleware) {
	meetings := repository.NewMeetingRepository(db)
	stats := repository.NewStatsRepository(db)
	runs := repository.NewFetchRunRepository(db)

	svc := service.NewMeetingService(meetings, stats, runs, c)
	ctrl := controller.NewMeetingController(svc)
	rtr := router.NewMeetingRouter(ctrl)

	rtr.Setup(e, mw)
}
