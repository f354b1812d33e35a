package insights

import (
	"calendar-insights/core/database"
	"calendar-insights/core/middleware"
	"calendar-insights/modules/insights/controller"
	"calendar-insights/modules/insights/router"
	"calendar-insights/modules/insights/service"
	"calendar-insights/modules/meeting/repository"

	"github.com/labstack/echo/v4"
)

// Init wires the insights module and registers its routes.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) {
	stats := repository.NewStatsRepository(db)
	svc := service.NewInsightsService(stats)
	ctrl := controller.NewInsightsController(svc)
	rtr := router.NewInsightsRouter(ctrl)

	rtr.Setup(e, mw)
}
