package router

import (
	"marketplace-api/core/constants"
	"marketplace-api/core/middleware"
	"marketplace-api/modules/shop/controller"

	"github.com/labstack/echo/v4"
)

// ShopRouter handles shop routes
type ShopRouter struct {
	ShopController *controller.ShopController
}

// NewShopRouter creates a new router
func NewShopRouter(shopController *controller.ShopController) *ShopRouter {
	return &ShopRouter{
		ShopController: shopController,
	}
}

// Setup registers shop routes
func (r *ShopRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	publicRoutes := v1.Group("/public/shops")
	publicRoutes.GET("", r.ShopController.ListShops)
	publicRoutes.GET("/:slug", r.ShopController.GetShop)

	privateRoutes := v1.Group("/private/shops", mw.AuthMiddleware(), mw.RequireRole(constants.RoleSeller, constants.RoleAdmin))
	privateRoutes.POST("", r.ShopController.CreateShop)
	privateRoutes.GET("", r.ShopController.GetMyShops)
	privateRoutes.PUT("/:id", r.ShopController.UpdateShop)
	privateRoutes.DELETE("/:id", r.ShopController.DeleteShop)
}
