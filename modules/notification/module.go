package notification

import (
	"context"
	"encoding/json"

	"marketplace-api/core/database"
	"marketplace-api/core/middleware"
	"marketplace-api/core/worker"
	"marketplace-api/modules/notification/controller"
	"marketplace-api/modules/notification/repository"
	"marketplace-api/modules/notification/router"
	"marketplace-api/modules/notification/service"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init initializes the notification module and registers routes. When mux is
// non-nil the registration workflow task handlers are registered on it.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, mux *asynq.ServeMux) {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)
	rtr := router.NewNotificationRouter(ctrl)

	rtr.Setup(e, mw)

	if mux != nil {
		mux.HandleFunc(worker.TaskRegistrationCreated, func(ctx context.Context, t *asynq.Task) error {
			var p worker.RegistrationCreatedPayload
			if err := json.Unmarshal(t.Payload(), &p); err != nil {
				return err
			}
			return svc.NotifyRegistrationCreated(ctx, p)
		})

		mux.HandleFunc(worker.TaskStatusChanged, func(ctx context.Context, t *asynq.Task) error {
			var p worker.StatusChangedPayload
			if err := json.Unmarshal(t.Payload(), &p); err != nil {
				return err
			}
			return svc.NotifyStatusChanged(ctx, p)
		})
	}
}
