package service

import (
	"context"
	"encoding/json"

	"marketplace-api/core/cache"
	"marketplace-api/core/constants"
	"marketplace-api/core/errors"
	"marketplace-api/core/params"
	"marketplace-api/core/utils"
	"marketplace-api/modules/training/dto"
	"marketplace-api/modules/training/entity"
	"marketplace-api/modules/training/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// TrainingService handles training catalog business logic
type TrainingService struct {
	repo  repository.TrainingRepositoryInterface
	cache cache.Cache
}

// TrainingServiceInterface defines the service contract
type TrainingServiceInterface interface {
	CreateTraining(ctx context.Context, ownerID uuid.UUID, req *dto.CreateTrainingRequest) (*dto.TrainingResponse, *errors.AppError)
	GetTrainingBySlug(ctx context.Context, slug string) (*dto.TrainingResponse, *errors.AppError)
	GetMyTrainings(ctx context.Context, ownerID uuid.UUID, p params.QueryParams) (*dto.PaginatedTrainingResponse, *errors.AppError)
	ListTrainings(ctx context.Context, p params.QueryParams) (*dto.PaginatedTrainingResponse, *errors.AppError)
	UpdateTraining(ctx context.Context, trainingID uuid.UUID, ownerID uuid.UUID, req *dto.UpdateTrainingRequest) (*dto.TrainingResponse, *errors.AppError)
	DeleteTraining(ctx context.Context, trainingID uuid.UUID, ownerID uuid.UUID) *errors.AppError
}

// NewTrainingService creates a new training service
func NewTrainingService(repo repository.TrainingRepositoryInterface, c cache.Cache) TrainingServiceInterface {
	return &TrainingService{repo: repo, cache: c}
}

// CreateTraining creates a new training owned by the caller
func (s *TrainingService) CreateTraining(ctx context.Context, ownerID uuid.UUID, req *dto.CreateTrainingRequest) (*dto.TrainingResponse, *errors.AppError) {
	if req.MaxParticipants < 1 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "max_participants must be at least 1", nil)
	}

	trainingSlug, appErr := s.uniqueSlug(ctx, req.Title)
	if appErr != nil {
		return nil, appErr
	}

	training := &entity.Training{
		OwnerID:         ownerID,
		Title:           req.Title,
		Slug:            trainingSlug,
		PriceCents:      req.PriceCents,
		MaxParticipants: req.MaxParticipants,
		StartsAt:        req.StartsAt,
	}
	if req.Description != "" {
		training.Description = &req.Description
	}

	created, err := s.repo.CreateTraining(ctx, training)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create training", err)
	}

	return dto.ToTrainingResponse(created), nil
}

// GetTrainingBySlug retrieves a training by its public slug, served from the
// cache when a fresh copy exists
func (s *TrainingService) GetTrainingBySlug(ctx context.Context, trainingSlug string) (*dto.TrainingResponse, *errors.AppError) {
	cacheKey := constants.RedisKeyTrainingDetail + trainingSlug

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			var resp dto.TrainingResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	training, err := s.repo.GetTrainingBySlug(ctx, trainingSlug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get training", err)
	}
	if training == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Training not found", nil)
	}

	resp := dto.ToTrainingResponse(training)

	if s.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			_ = s.cache.Set(ctx, cacheKey, string(payload), constants.TrainingCacheTTL)
		}
	}

	return resp, nil
}

// GetMyTrainings retrieves the caller's trainings
func (s *TrainingService) GetMyTrainings(ctx context.Context, ownerID uuid.UUID, p params.QueryParams) (*dto.PaginatedTrainingResponse, *errors.AppError) {
	page, err := s.repo.GetTrainingsByOwnerID(ctx, ownerID, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get trainings", err)
	}
	return dto.ToPaginatedTrainingResponse(page), nil
}

// ListTrainings retrieves the public training catalog
func (s *TrainingService) ListTrainings(ctx context.Context, p params.QueryParams) (*dto.PaginatedTrainingResponse, *errors.AppError) {
	page, err := s.repo.ListTrainings(ctx, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list trainings", err)
	}
	return dto.ToPaginatedTrainingResponse(page), nil
}

// UpdateTraining updates training details after an ownership check
func (s *TrainingService) UpdateTraining(ctx context.Context, trainingID uuid.UUID, ownerID uuid.UUID, req *dto.UpdateTrainingRequest) (*dto.TrainingResponse, *errors.AppError) {
	training, err := s.repo.GetTrainingByID(ctx, trainingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get training", err)
	}
	if training == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Training not found", nil)
	}
	if training.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not authorized", nil)
	}

	if req.Title != "" {
		training.Title = req.Title
	}
	if req.Description != "" {
		training.Description = &req.Description
	}
	if req.PriceCents != nil {
		training.PriceCents = *req.PriceCents
	}
	if req.MaxParticipants > 0 {
		// Capacity can never drop below the seats already claimed
		if req.MaxParticipants < training.ParticipantCount {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "max_participants cannot be below current participant count", nil)
		}
		training.MaxParticipants = req.MaxParticipants
	}
	if req.StartsAt != nil {
		training.StartsAt = req.StartsAt
	}

	if err := s.repo.UpdateTraining(ctx, training); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update training", err)
	}

	s.invalidateCache(ctx, training.Slug)

	return dto.ToTrainingResponse(training), nil
}

// DeleteTraining deletes a training after an ownership check
func (s *TrainingService) DeleteTraining(ctx context.Context, trainingID uuid.UUID, ownerID uuid.UUID) *errors.AppError {
	training, err := s.repo.GetTrainingByID(ctx, trainingID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to get training", err)
	}
	if training == nil {
		return errors.NewAppError(errors.ErrNotFound, "Training not found", nil)
	}
	if training.OwnerID != ownerID {
		return errors.NewAppError(errors.ErrForbidden, "Not authorized", nil)
	}

	if err := s.repo.DeleteTraining(ctx, trainingID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete training", err)
	}

	s.invalidateCache(ctx, training.Slug)

	return nil
}

// uniqueSlug derives a slug from the title, appending a random suffix when the
// plain slug is taken
func (s *TrainingService) uniqueSlug(ctx context.Context, title string) (string, *errors.AppError) {
	base := slug.Make(title)

	exists, err := s.repo.SlugExists(ctx, base)
	if err != nil {
		return "", errors.NewAppError(errors.ErrInternalServer, "Failed to check slug", err)
	}
	if !exists {
		return base, nil
	}

	return base + "-" + utils.GenerateSlugSuffix(), nil
}

func (s *TrainingService) invalidateCache(ctx context.Context, trainingSlug string) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, constants.RedisKeyTrainingDetail+trainingSlug)
	}
}
