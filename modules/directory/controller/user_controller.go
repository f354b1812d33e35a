package controller

import (
	"strings"

	"calendar-insights/core/controller"
	"calendar-insights/core/errors"
	"calendar-insights/modules/directory/dto"
	"calendar-insights/modules/directory/entity"
	"calendar-insights/modules/directory/repository"

	"github.com/labstack/echo/v4"
)

// UserController manages the org directory behind meeting enrichment.
type UserController struct {
	Users *repository.UserRepository
}

func NewUserController(users *repository.UserRepository) *UserController {
	return &UserController{Users: users}
}

// GetUser handles GET /users/:email.
func (c *UserController) GetUser(ctx echo.Context) error {
	email := ctx.Param("email")
	user, err := c.Users.GetByEmail(ctx.Request().Context(), email)
	if err != nil {
		return controller.Error(ctx, errors.NewAppError(errors.ErrDatabase, "failed to load user", err))
	}
	if user == nil {
		return controller.Error(ctx, errors.NewAppError(errors.ErrNotFound, "user not found", nil))
	}
	return controller.Success(ctx, user, "user retrieved")
}

// UpsertUser handles PUT /users.
func (c *UserController) UpsertUser(ctx echo.Context) error {
	var req dto.UpsertUserRequest
	if err := ctx.Bind(&req); err != nil {
		return controller.Error(ctx, errors.NewAppError(errors.ErrInvalidInput, "invalid request body", err))
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		return controller.Error(ctx, errors.NewAppError(errors.ErrInvalidInput, "email is required", nil))
	}

	user := &entity.User{
		Email:         req.Email,
		Department:    req.Department,
		Division:      req.Division,
		Subdepartment: req.Subdepartment,
		IsManager:     req.IsManager,
	}
	if err := c.Users.Upsert(ctx.Request().Context(), user); err != nil {
		return controller.Error(ctx, errors.NewAppError(errors.ErrDatabase, "failed to upsert user", err))
	}
	return controller.Success(ctx, user, "user upserted")
}
