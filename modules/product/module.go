package product

import (
	"marketplace-api/core/database"
	"marketplace-api/core/middleware"
	"marketplace-api/modules/product/controller"
	"marketplace-api/modules/product/repository"
	"marketplace-api/modules/product/router"
	"marketplace-api/modules/product/service"
	shoprepo "marketplace-api/modules/shop/repository"

	"github.com/labstack/echo/v4"
)

// Init initializes the product module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewProductRepository(db)
	shops := shoprepo.NewShopRepository(db)
	svc := service.NewProductService(repo, shops)
	ctrl := controller.NewProductController(svc)
	rtr := router.NewProductRouter(ctrl)

	rtr.Setup(e, mw)
}
