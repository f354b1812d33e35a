package router

import (
	"calendar-insights/core/middleware"
	"calendar-insights/modules/insights/controller"

	"github.com/labstack/echo/v4"
)

type InsightsRouter struct {
	InsightsController *controller.InsightsController
}

func NewInsightsRouter(insightsController *controller.InsightsController) *InsightsRouter {
	return &InsightsRouter{
		InsightsController: insightsController,
	}
}

func (r *InsightsRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	v1.POST("/insights/ask", r.InsightsController.Ask)
}
