package shop

import (
	"marketplace-api/core/database"
	"marketplace-api/core/middleware"
	"marketplace-api/modules/shop/controller"
	"marketplace-api/modules/shop/repository"
	"marketplace-api/modules/shop/router"
	"marketplace-api/modules/shop/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the shop module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewShopRepository(db)
	svc := service.NewShopService(repo)
	ctrl := controller.NewShopController(svc)
	rtr := router.NewShopRouter(ctrl)

	rtr.Setup(e, mw)
}
