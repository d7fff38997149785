package auth

import (
	"marketplace-api/core/cache"
	"marketplace-api/core/database"
	"marketplace-api/core/middleware"
	"marketplace-api/modules/auth/controller"
	"marketplace-api/modules/auth/repository"
	"marketplace-api/modules/auth/router"
	"marketplace-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, c cache.Cache) {
	repo := repository.NewUserRepository(db)
	svc := service.NewAuthService(repo, c)
	ctrl := controller.NewAuthController(svc)
	rtr := router.NewAuthRouter(ctrl)

	rtr.Setup(e, mw)
}
