package directory

import (
	"calendar-insights/core/database"
	"calendar-insights/core/middleware"
	"calendar-insights/modules/directory/controller"
	"calendar-insights/modules/directory/repository"
	"calendar-insights/modules/directory/router"

	"github.com/labstack/echo/v4"
)

// Init wires the directory module and registers its routes.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) {
	users := repository.NewUserRepository(db)
	ctrl := controller.NewUserController(users)
	rtr := router.NewUserRouter(ctrl)

	rtr.Setup(e, mw)
}
