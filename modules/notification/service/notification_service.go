package service

import (
	"context"
	"fmt"
	"time"

	coreEntity "marketplace-api/core/entity"
	"marketplace-api/core/params"
	"marketplace-api/core/worker"
	"marketplace-api/modules/notification/dto"
	"marketplace-api/modules/notification/entity"
	"marketplace-api/modules/notification/repository"

	"github.com/google/uuid"
)

// NotificationService handles notification business logic
type NotificationService struct {
	repo repository.NotificationRepositoryInterface
}

// NotificationServiceInterface defines the service contract
type NotificationServiceInterface interface {
	Create(ctx context.Context, req *dto.CreateNotificationRequest) error
	NotifyRegistrationCreated(ctx context.Context, p worker.RegistrationCreatedPayload) error
	NotifyStatusChanged(ctx context.Context, p worker.StatusChangedPayload) error
	GetMyNotifications(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedNotificationEntity, error)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo repository.NotificationRepositoryInterface) NotificationServiceInterface {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) error {
	notif := &entity.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Data:    coreEntity.JSONB(req.Data),
		IsRead:  false,
		BaseEntity: coreEntity.BaseEntity{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	return s.repo.Create(ctx, notif)
}

// NotifyRegistrationCreated tells a training owner someone registered
func (s *NotificationService) NotifyRegistrationCreated(ctx context.Context, p worker.RegistrationCreatedPayload) error {
	return s.Create(ctx, &dto.CreateNotificationRequest{
		UserID:  p.OwnerID,
		Title:   "New registration",
		Message: fmt.Sprintf("%s registered for %s", p.FullName, p.TrainingTitle),
		Type:    entity.TypeRegistrationCreated,
		Data: map[string]interface{}{
			"training_id":    p.TrainingID.String(),
			"participant_id": p.ParticipantID.String(),
		},
	})
}

// NotifyStatusChanged tells a registrant their registration status moved
func (s *NotificationService) NotifyStatusChanged(ctx context.Context, p worker.StatusChangedPayload) error {
	return s.Create(ctx, &dto.CreateNotificationRequest{
		UserID:  p.UserID,
		Title:   "Registration status updated",
		Message: fmt.Sprintf("Your registration for %s is now %s", p.TrainingTitle, p.Status),
		Type:    entity.TypeStatusChanged,
		Data: map[string]interface{}{
			"training_id":    p.TrainingID.String(),
			"participant_id": p.ParticipantID.String(),
			"status":         p.Status,
		},
	})
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return s.repo.GetByUserID(ctx, userID, p)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error {
	return s.repo.MarkAsRead(ctx, userID, ids)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
