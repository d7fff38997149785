package router

import (
	"marketplace-api/core/middleware"
	"marketplace-api/modules/training/controller"

	"github.com/labstack/echo/v4"
)

// TrainingRouter handles training and registration routes
type TrainingRouter struct {
	TrainingController     *controller.TrainingController
	RegistrationController *controller.RegistrationController
}

// NewTrainingRouter creates a new router
func NewTrainingRouter(trainingController *controller.TrainingController, registrationController *controller.RegistrationController) *TrainingRouter {
	return &TrainingRouter{
		TrainingController:     trainingController,
		RegistrationController: registrationController,
	}
}

// Setup registers training routes
func (r *TrainingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// Public catalog
	publicRoutes := v1.Group("/public/trainings")
	publicRoutes.GET("", r.TrainingController.ListTrainings)
	publicRoutes.GET("/:slug", r.TrainingController.GetTraining)

	privateRoutes := v1.Group("/private")

	// Owner-facing training management
	trainingRoutes := privateRoutes.Group("/trainings", mw.AuthMiddleware())
	trainingRoutes.POST("", r.TrainingController.CreateTraining)
	trainingRoutes.GET("", r.TrainingController.GetMyTrainings)
	trainingRoutes.PUT("/:id", r.TrainingController.UpdateTraining)
	trainingRoutes.DELETE("/:id", r.TrainingController.DeleteTraining)

	// Registration workflow
	trainingRoutes.POST("/:id/register", r.RegistrationController.Register)
	trainingRoutes.GET("/:id/participants", r.RegistrationController.GetParticipants)

	participantRoutes := privateRoutes.Group("/participants", mw.AuthMiddleware())
	participantRoutes.PATCH("/:id/status", r.RegistrationController.UpdateStatus)
	participantRoutes.PATCH("/:id/payment", r.RegistrationController.UpdatePaymentStatus)

	registrationRoutes := privateRoutes.Group("/registrations", mw.AuthMiddleware())
	registrationRoutes.GET("", r.RegistrationController.GetMyRegistrations)
	registrationRoutes.POST("/:id/cancel", r.RegistrationController.CancelRegistration)
}
