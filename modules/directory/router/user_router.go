package router

import (
	"calendar-insights/core/middleware"
	"calendar-insights/modules/directory/controller"

	"github.com/labstack/echo/v4"
)

type UserRouter struct {
	UserController *controller.UserController
}

func NewUserRouter(userController *controller.UserController) *UserRouter {
	return &UserRouter{
		UserController: userController,
	}
}

func (r *UserRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	v1.GET("/users/:email", r.UserController.GetUser)
	v1.PUT("/users", r.UserController.UpsertUser)
}
