package controller

import (
	"marketplace-api/core/constants"
	"marketplace-api/core/controller"
	"marketplace-api/core/errors"
	"marketplace-api/core/params"
	"marketplace-api/core/utils"
	"marketplace-api/modules/training/dto"
	"marketplace-api/modules/training/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TrainingController handles training catalog HTTP requests
type TrainingController struct {
	controller.BaseController
	TrainingService service.TrainingServiceInterface
}

// NewTrainingController creates a new controller
func NewTrainingController(svc service.TrainingServiceInterface) *TrainingController {
	return &TrainingController{
		BaseController:  controller.NewBaseController(),
		TrainingService: svc,
	}
}

// getUserIDFromContext extracts user ID from JWT context
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

// CreateTraining handles POST /private/trainings
func (c *TrainingController) CreateTraining(ctx echo.Context) error {
	ownerID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateTrainingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.Title == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "Title is required")
	}

	result, appErr := c.TrainingService.CreateTraining(ctx.Request().Context(), ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Training created successfully")
}

// GetTraining handles GET /public/trainings/:slug
func (c *TrainingController) GetTraining(ctx echo.Context) error {
	result, appErr := c.TrainingService.GetTrainingBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ListTrainings handles GET /public/trainings
func (c *TrainingController) ListTrainings(ctx echo.Context) error {
	result, appErr := c.TrainingService.ListTrainings(ctx.Request().Context(), params.FromContext(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetMyTrainings handles GET /private/trainings
func (c *TrainingController) GetMyTrainings(ctx echo.Context) error {
	ownerID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.TrainingService.GetMyTrainings(ctx.Request().Context(), ownerID, params.FromContext(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateTraining handles PUT /private/trainings/:id
func (c *TrainingController) UpdateTraining(ctx echo.Context) error {
	ownerID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	trainingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid training ID")
	}

	var req dto.UpdateTrainingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.TrainingService.UpdateTraining(ctx.Request().Context(), trainingID, ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Training updated successfully")
}

// DeleteTraining handles DELETE /private/trainings/:id
func (c *TrainingController) DeleteTraining(ctx echo.Context) error {
	ownerID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	trainingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid training ID")
	}

	if appErr := c.TrainingService.DeleteTraining(ctx.Request().Context(), trainingID, ownerID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Training deleted successfully")
}
