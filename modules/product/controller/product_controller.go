package controller

import (
	"marketplace-api/core/constants"
	"marketplace-api/core/controller"
	"marketplace-api/core/errors"
	"marketplace-api/core/params"
	"marketplace-api/core/utils"
	"marketplace-api/modules/product/dto"
	"marketplace-api/modules/product/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ProductController handles product HTTP requests
type ProductController struct {
	controller.BaseController
	ProductService service.ProductServiceInterface
}

// NewProductController creates a new controller
func NewProductController(svc service.ProductServiceInterface) *ProductController {
	return &ProductController{
		BaseController: controller.NewBaseController(),
		ProductService: svc,
	}
}

func getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID, nil
}

// CreateProduct handles POST /private/products
func (c *ProductController) CreateProduct(ctx echo.Context) error {
	ownerID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateProductRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.Name == "" || req.ShopID == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "name and shop_id are required")
	}

	result, appErr := c.ProductService.CreateProduct(ctx.Request().Context(), ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Product created successfully")
}

// GetProduct handles GET /public/products/:slug
func (c *ProductController) GetProduct(ctx echo.Context) error {
	result, appErr := c.ProductService.GetProductBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ListProducts handles GET /public/products
func (c *ProductController) ListProducts(ctx echo.Context) error {
	result, appErr := c.ProductService.ListProducts(ctx.Request().Context(), params.FromContext(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ListShopProducts handles GET /public/shops/:id/products
func (c *ProductController) ListShopProducts(ctx echo.Context) error {
	shopID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid shop ID")
	}

	result, appErr := c.ProductService.ListShopProducts(ctx.Request().Context(), shopID, params.FromContext(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateProduct handles PUT /private/products/:id
func (c *ProductController) UpdateProduct(ctx echo.Context) error {
	ownerID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	productID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid product ID")
	}

	var req dto.UpdateProductRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ProductService.UpdateProduct(ctx.Request().Context(), productID, ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Product updated successfully")
}

// DeleteProduct handles DELETE /private/products/:id
func (c *ProductController) DeleteProduct(ctx echo.Context) error {
	ownerID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	productID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid product ID")
	}

	if appErr := c.ProductService.DeleteProduct(ctx.Request().Context(), productID, ownerID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Product deleted successfully")
}
