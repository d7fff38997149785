package router

import (
	"marketplace-api/core/constants"
	"marketplace-api/core/middleware"
	"marketplace-api/modules/product/controller"

	"github.com/labstack/echo/v4"
)

// ProductRouter handles product routes
type ProductRouter struct {
	ProductController *controller.ProductController
}

// NewProductRouter creates a new router
func NewProductRouter(productController *controller.ProductController) *ProductRouter {
	return &ProductRouter{
		ProductController: productController,
	}
}

// Setup registers product routes
func (r *ProductRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	publicRoutes := v1.Group("/public")
	publicRoutes.GET("/products", r.ProductController.ListProducts)
	publicRoutes.GET("/products/:slug", r.ProductController.GetProduct)
	publicRoutes.GET("/shops/:id/products", r.ProductController.ListShopProducts)

	privateRoutes := v1.Group("/private/products", mw.AuthMiddleware(), mw.RequireRole(constants.RoleSeller, constants.RoleAdmin))
	privateRoutes.POST("", r.ProductController.CreateProduct)
	privateRoutes.PUT("/:id", r.ProductController.UpdateProduct)
	privateRoutes.DELETE("/:id", r.ProductController.DeleteProduct)
}
