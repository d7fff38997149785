package training

import (
	"context"

	"marketplace-api/core/cache"
	"marketplace-api/core/database"
	"marketplace-api/core/logger"
	"marketplace-api/core/middleware"
	"marketplace-api/core/worker"
	"marketplace-api/modules/training/controller"
	"marketplace-api/modules/training/repository"
	"marketplace-api/modules/training/router"
	"marketplace-api/modules/training/service"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init initializes the training module and registers routes. When mux is
// non-nil the periodic counter resync handler is registered on it.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, c cache.Cache, enqueuer worker.Enqueuer, mux *asynq.ServeMux) {
	trainingRepo := repository.NewTrainingRepository(db)
	participantRepo := repository.NewParticipantRepository(db)

	trainingSvc := service.NewTrainingService(trainingRepo, c)
	registrationSvc := service.NewRegistrationService(participantRepo, trainingRepo, enqueuer, c)

	trainingCtrl := controller.NewTrainingController(trainingSvc)
	registrationCtrl := controller.NewRegistrationController(registrationSvc)

	rtr := router.NewTrainingRouter(trainingCtrl, registrationCtrl)
	rtr.Setup(e, mw)

	if mux != nil {
		mux.HandleFunc(worker.TaskCounterResync, func(ctx context.Context, t *asynq.Task) error {
			changed, err := trainingRepo.ResyncAllParticipantCounts(ctx)
			if err != nil {
				return err
			}
			if changed > 0 {
				logger.Warn("Participant counters drifted and were resynced", "trainings", changed)
			}
			return nil
		})
	}
}
