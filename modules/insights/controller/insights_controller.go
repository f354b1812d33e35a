package controller

import (
	"calendar-insights/core/controller"
	"calendar-insights/core/errors"
	"calendar-insights/modules/insights/dto"
	"calendar-insights/modules/insights/service"

	"github.com/labstack/echo/v4"
)

// InsightsController handles the question-answering endpoint.
type InsightsController struct {
	InsightsService *service.InsightsService
}

func NewInsightsController(svc *service.InsightsService) *InsightsController {
	return &InsightsController{InsightsService: svc}
}

// Ask handles POST /insights/ask.
func (c *InsightsController) Ask(ctx echo.Context) error {
	var req dto.AskRequest
	if err := ctx.Bind(&req); err != nil {
		return controller.Error(ctx, errors.NewAppError(errors.ErrInvalidInput, "invalid request body", err))
	}

	result, err := c.InsightsService.Ask(ctx.Request().Context(), &req)
	if err != nil {
		return controller.Error(ctx, err)
	}
	return controller.Success(ctx, result, "question answered")
}
