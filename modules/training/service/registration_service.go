package service

import (
	"context"

	"marketplace-api/core/cache"
	"marketplace-api/core/constants"
	"marketplace-api/core/errors"
	"marketplace-api/core/logger"
	"marketplace-api/core/params"
	"marketplace-api/core/utils"
	"marketplace-api/core/worker"
	"marketplace-api/modules/training/dto"
	"marketplace-api/modules/training/entity"
	"marketplace-api/modules/training/repository"

	"github.com/google/uuid"
)

// RegistrationService handles the registration workflow: seat claiming,
// owner-driven status transitions and registrant-facing listings.
type RegistrationService struct {
	participants repository.ParticipantRepositoryInterface
	trainings    repository.TrainingRepositoryInterface
	enqueuer     worker.Enqueuer
	cache        cache.Cache
}

// RegistrationServiceInterface defines the service contract
type RegistrationServiceInterface interface {
	Register(ctx context.Context, trainingID uuid.UUID, userID uuid.UUID, req *dto.RegisterRequest) (*dto.ParticipantResponse, *errors.AppError)
	UpdateStatus(ctx context.Context, participantID uuid.UUID, ownerID uuid.UUID, req *dto.UpdateParticipantStatusRequest) (*dto.ParticipantResponse, *errors.AppError)
	UpdatePaymentStatus(ctx context.Context, participantID uuid.UUID, ownerID uuid.UUID, req *dto.UpdatePaymentStatusRequest) (*dto.ParticipantResponse, *errors.AppError)
	CancelRegistration(ctx context.Context, participantID uuid.UUID, userID uuid.UUID) (*dto.ParticipantResponse, *errors.AppError)
	GetMyRegistrations(ctx context.Context, userID uuid.UUID) ([]dto.ParticipantResponse, *errors.AppError)
	GetTrainingParticipants(ctx context.Context, trainingID uuid.UUID, ownerID uuid.UUID, p params.QueryParams) (*dto.PaginatedParticipantResponse, *errors.AppError)
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	participants repository.ParticipantRepositoryInterface,
	trainings repository.TrainingRepositoryInterface,
	enqueuer worker.Enqueuer,
	c cache.Cache,
) RegistrationServiceInterface {
	return &RegistrationService{
		participants: participants,
		trainings:    trainings,
		enqueuer:     enqueuer,
		cache:        c,
	}
}

// Register claims a seat on the training for the caller. The seat claim and
// the participant insert happen in one database transaction, so a full
// training can never be oversubscribed by concurrent requests.
func (s *RegistrationService) Register(ctx context.Context, trainingID uuid.UUID, userID uuid.UUID, req *dto.RegisterRequest) (*dto.ParticipantResponse, *errors.AppError) {
	existing, err := s.participants.GetByTrainingAndUser(ctx, trainingID, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check registration", err)
	}
	if existing != nil {
		return nil, s.duplicateError(existing)
	}

	participant := &entity.Participant{
		TrainingID:    trainingID,
		UserID:        userID,
		Code:          utils.GenerateReferenceCode(),
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Status:        entity.ParticipantStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
	}
	if req.Message != "" {
		participant.Message = &req.Message
	}

	created, err := s.participants.Register(ctx, participant)
	if err != nil {
		switch err {
		case repository.ErrTrainingNotFound:
			return nil, errors.NewAppError(errors.ErrNotFound, "Training not found", nil)
		case repository.ErrTrainingFull:
			return nil, errors.NewAppError(errors.ErrTrainingFull, "Training has no seats left", nil)
		case repository.ErrAlreadyRegistered:
			// Lost the race against another request from the same user
			existing, getErr := s.participants.GetByTrainingAndUser(ctx, trainingID, userID)
			if getErr == nil && existing != nil {
				return nil, s.duplicateError(existing)
			}
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "Already registered for this training", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to register", err)
	}

	s.notifyOwner(ctx, created)

	return dto.ToParticipantResponse(created), nil
}

// UpdateStatus applies an owner-driven status transition and resynchronizes
// the training's participant counter to the confirmed registrations.
func (s *RegistrationService) UpdateStatus(ctx context.Context, participantID uuid.UUID, ownerID uuid.UUID, req *dto.UpdateParticipantStatusRequest) (*dto.ParticipantResponse, *errors.AppError) {
	if !entity.ValidParticipantStatus(req.Status) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid status", nil)
	}

	participant, err := s.participants.GetParticipantByID(ctx, participantID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get participant", err)
	}
	if participant == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Participant not found", nil)
	}

	training, err := s.trainings.GetTrainingByID(ctx, participant.TrainingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get training", err)
	}
	if training == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Training not found", nil)
	}
	if training.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not authorized", nil)
	}

	updated, err := s.participants.UpdateStatusAndResync(ctx, participantID, entity.ParticipantStatus(req.Status))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update status", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Participant not found", nil)
	}

	s.invalidateCache(ctx, training.Slug)
	s.notifyRegistrant(ctx, training, updated)

	return dto.ToParticipantResponse(updated), nil
}

// UpdatePaymentStatus records an owner-driven payment state change for a
// registration. Payment bookkeeping does not touch the seat counter.
func (s *RegistrationService) UpdatePaymentStatus(ctx context.Context, participantID uuid.UUID, ownerID uuid.UUID, req *dto.UpdatePaymentStatusRequest) (*dto.ParticipantResponse, *errors.AppError) {
	if !entity.ValidPaymentStatus(req.PaymentStatus) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid payment status", nil)
	}

	participant, err := s.participants.GetParticipantByID(ctx, participantID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get participant", err)
	}
	if participant == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Participant not found", nil)
	}

	training, err := s.trainings.GetTrainingByID(ctx, participant.TrainingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get training", err)
	}
	if training == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Training not found", nil)
	}
	if training.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not authorized", nil)
	}

	if err := s.participants.UpdatePaymentStatus(ctx, participantID, entity.PaymentStatus(req.PaymentStatus)); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update payment status", err)
	}

	updated, err := s.participants.GetParticipantByID(ctx, participantID)
	if err != nil || updated == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get participant", err)
	}

	return dto.ToParticipantResponse(updated), nil
}

// CancelRegistration lets a registrant withdraw their own registration. The
// record is kept with a rejected status so the history stays visible.
func (s *RegistrationService) CancelRegistration(ctx context.Context, participantID uuid.UUID, userID uuid.UUID) (*dto.ParticipantResponse, *errors.AppError) {
	participant, err := s.participants.GetParticipantByID(ctx, participantID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get participant", err)
	}
	if participant == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Registration not found", nil)
	}
	if participant.UserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not authorized", nil)
	}

	updated, err := s.participants.UpdateStatusAndResync(ctx, participantID, entity.ParticipantStatusRejected)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to cancel registration", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Registration not found", nil)
	}

	training, err := s.trainings.GetTrainingByID(ctx, updated.TrainingID)
	if err == nil && training != nil {
		s.invalidateCache(ctx, training.Slug)
		s.notifyRegistrant(ctx, training, updated)
	}

	return dto.ToParticipantResponse(updated), nil
}

// GetMyRegistrations retrieves the caller's registrations across trainings
func (s *RegistrationService) GetMyRegistrations(ctx context.Context, userID uuid.UUID) ([]dto.ParticipantResponse, *errors.AppError) {
	participants, err := s.participants.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get registrations", err)
	}

	result := make([]dto.ParticipantResponse, 0, len(participants))
	for i := range participants {
		result = append(result, *dto.ToParticipantResponse(&participants[i]))
	}

	return result, nil
}

// GetTrainingParticipants retrieves the participant list of a training the
// caller owns
func (s *RegistrationService) GetTrainingParticipants(ctx context.Context, trainingID uuid.UUID, ownerID uuid.UUID, p params.QueryParams) (*dto.PaginatedParticipantResponse, *errors.AppError) {
	training, err := s.trainings.GetTrainingByID(ctx, trainingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get training", err)
	}
	if training == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Training not found", nil)
	}
	if training.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not authorized", nil)
	}

	page, err := s.participants.ListByTrainingID(ctx, trainingID, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get participants", err)
	}

	return dto.ToPaginatedParticipantResponse(page), nil
}

func (s *RegistrationService) duplicateError(existing *entity.Participant) *errors.AppError {
	return errors.NewAppErrorWithDetails(
		errors.ErrAlreadyExists,
		"Already registered for this training",
		dto.ExistingRegistration{
			Status:        string(existing.Status),
			PaymentStatus: string(existing.PaymentStatus),
		},
		nil,
	)
}

// notifyOwner enqueues a new-registration notification. Delivery is best
// effort: a broker outage must not fail the registration itself.
func (s *RegistrationService) notifyOwner(ctx context.Context, participant *entity.Participant) {
	if s.enqueuer == nil {
		return
	}

	training, err := s.trainings.GetTrainingByID(ctx, participant.TrainingID)
	if err != nil || training == nil {
		return
	}

	s.invalidateCache(ctx, training.Slug)

	task, err := worker.NewRegistrationCreatedTask(worker.RegistrationCreatedPayload{
		TrainingID:    training.ID,
		TrainingTitle: training.Title,
		OwnerID:       training.OwnerID,
		ParticipantID: participant.ID,
		FullName:      participant.FullName,
	})
	if err != nil {
		logger.Error("RegistrationService:notifyOwner - NewTask", err)
		return
	}

	if err := s.enqueuer.Enqueue(ctx, task); err != nil {
		logger.Error("RegistrationService:notifyOwner - Enqueue", err)
	}
}

func (s *RegistrationService) notifyRegistrant(ctx context.Context, training *entity.Training, participant *entity.Participant) {
	if s.enqueuer == nil {
		return
	}

	task, err := worker.NewStatusChangedTask(worker.StatusChangedPayload{
		TrainingID:    training.ID,
		TrainingTitle: training.Title,
		UserID:        participant.UserID,
		ParticipantID: participant.ID,
		Status:        string(participant.Status),
	})
	if err != nil {
		logger.Error("RegistrationService:notifyRegistrant - NewTask", err)
		return
	}

	if err := s.enqueuer.Enqueue(ctx, task); err != nil {
		logger.Error("RegistrationService:notifyRegistrant - Enqueue", err)
	}
}

func (s *RegistrationService) invalidateCache(ctx context.Context, trainingSlug string) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, constants.RedisKeyTrainingDetail+trainingSlug)
	}
}
