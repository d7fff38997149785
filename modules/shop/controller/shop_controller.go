package controller

import (
	"marketplace-api/core/constants"
	"marketplace-api/core/controller"
	"marketplace-api/core/errors"
	"marketplace-api/core/params"
	"marketplace-api/core/utils"
	"marketplace-api/modules/shop/dto"
	"marketplace-api/modules/shop/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ShopController handles shop HTTP requests
type ShopController struct {
	controller.BaseController
	ShopService service.ShopServiceInterface
}

// NewShopController creates a new controller
func NewShopController(svc service.ShopServiceInterface) *ShopController {
	return &ShopController{
		BaseController: controller.NewBaseController(),
		ShopService:    svc,
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

// CreateShop handles POST /private/shops
func (c *ShopController) CreateShop(ctx echo.Context) error {
	ownerID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateShopRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.Name == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "Name is required")
	}

	result, appErr := c.ShopService.CreateShop(ctx.Request().Context(), ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Shop created successfully")
}

// GetShop handles GET /public/shops/:slug
func (c *ShopController) GetShop(ctx echo.Context) error {
	result, appErr := c.ShopService.GetShopBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ListShops handles GET /public/shops
func (c *ShopController) ListShops(ctx echo.Context) error {
	result, appErr := c.ShopService.ListShops(ctx.Request().Context(), params.FromContext(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetMyShops handles GET /private/shops
func (c *ShopController) GetMyShops(ctx echo.Context) error {
	ownerID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.ShopService.GetMyShops(ctx.Request().Context(), ownerID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateShop handles PUT /private/shops/:id
func (c *ShopController) UpdateShop(ctx echo.Context) error {
	ownerID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	shopID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid shop ID")
	}

	var req dto.UpdateShopRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ShopService.UpdateShop(ctx.Request().Context(), shopID, ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Shop updated successfully")
}

// DeleteShop handles DELETE /private/shops/:id
func (c *ShopController) DeleteShop(ctx echo.Context) error {
	ownerID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	shopID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid shop ID")
	}

	if appErr := c.ShopService.DeleteShop(ctx.Request().Context(), shopID, ownerID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Shop deleted successfully")
}
