package controller

import (
	"marketplace-api/core/controller"
	"marketplace-api/core/errors"
	"marketplace-api/core/params"
	"marketplace-api/modules/training/dto"
	"marketplace-api/modules/training/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RegistrationController handles registration HTTP requests
type RegistrationController struct {
	controller.BaseController
	RegistrationService service.RegistrationServiceInterface
}

// NewRegistrationController creates a new controller
func NewRegistrationController(svc service.RegistrationServiceInterface) *RegistrationController {
	return &RegistrationController{
		BaseController:      controller.NewBaseController(),
		RegistrationService: svc,
	}
}

// Register handles POST /private/trainings/:id/register
func (c *RegistrationController) Register(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	trainingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid training ID")
	}

	var req dto.RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.FullName == "" || req.Email == "" || req.Phone == "" || req.Address == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "full_name, email, phone and address are required")
	}

	result, appErr := c.RegistrationService.Register(ctx.Request().Context(), trainingID, userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Registration created successfully")
}

// UpdateStatus handles PATCH /private/participants/:id/status
func (c *RegistrationController) UpdateStatus(ctx echo.Context) error {
	ownerID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	participantID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}

	var req dto.UpdateParticipantStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.RegistrationService.UpdateStatus(ctx.Request().Context(), participantID, ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Status updated successfully")
}

// UpdatePaymentStatus handles PATCH /private/participants/:id/payment
func (c *RegistrationController) UpdatePaymentStatus(ctx echo.Context) error {
	ownerID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	participantID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}

	var req dto.UpdatePaymentStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.RegistrationService.UpdatePaymentStatus(ctx.Request().Context(), participantID, ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Payment status updated successfully")
}

// CancelRegistration handles POST /private/registrations/:id/cancel
func (c *RegistrationController) CancelRegistration(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	participantID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid registration ID")
	}

	result, appErr := c.RegistrationService.CancelRegistration(ctx.Request().Context(), participantID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Registration cancelled")
}

// GetMyRegistrations handles GET /private/registrations
func (c *RegistrationController) GetMyRegistrations(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.RegistrationService.GetMyRegistrations(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetParticipants handles GET /private/trainings/:id/participants
func (c *RegistrationController) GetParticipants(ctx echo.Context) error {
	ownerID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	trainingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid training ID")
	}

	result, appErr := c.RegistrationService.GetTrainingParticipants(ctx.Request().Context(), trainingID, ownerID, params.FromContext(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
