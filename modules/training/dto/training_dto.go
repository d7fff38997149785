package dto

import (
	"time"

	"marketplace-api/modules/training/entity"
)

// ===================== Request DTOs =====================

// CreateTrainingRequest for creating a new training
type CreateTrainingRequest struct {
	Title           string     `json:"title" validate:"required"`
	Description     string     `json:"description"`
	PriceCents      int64      `json:"price_cents"`
	MaxParticipants int        `json:"max_participants" validate:"required,min=1"`
	StartsAt        *time.Time `json:"starts_at"`
}

// UpdateTrainingRequest for updating training details
type UpdateTrainingRequest struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	PriceCents      *int64     `json:"price_cents"`
	MaxParticipants int        `json:"max_participants"`
	StartsAt        *time.Time `json:"starts_at"`
}

// ===================== Response DTOs =====================

// TrainingResponse for training details
type TrainingResponse struct {
	ID               string     `json:"id"`
	OwnerID          string     `json:"owner_id"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Description      string     `json:"description,omitempty"`
	PriceCents       int64      `json:"price_cents"`
	MaxParticipants  int        `json:"max_participants"`
	ParticipantCount int        `json:"participant_count"`
	SeatsLeft        int        `json:"seats_left"`
	StartsAt         *time.Time `json:"starts_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// PaginatedTrainingResponse for paginated training lists
type PaginatedTrainingResponse struct {
	Items      []TrainingResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	PageNumber int                `json:"page_number"`
	PageSize   int                `json:"page_size"`
}

// ===================== Mapper Functions =====================

// ToTrainingResponse maps entity to DTO
func ToTrainingResponse(t *entity.Training) *TrainingResponse {
	resp := &TrainingResponse{
		ID:               t.ID.String(),
		OwnerID:          t.OwnerID.String(),
		Title:            t.Title,
		Slug:             t.Slug,
		PriceCents:       t.PriceCents,
		MaxParticipants:  t.MaxParticipants,
		ParticipantCount: t.ParticipantCount,
		SeatsLeft:        t.SeatsLeft(),
		StartsAt:         t.StartsAt,
		CreatedAt:        t.CreatedAt,
	}

	if t.Description != nil {
		resp.Description = *t.Description
	}

	return resp
}

// ToPaginatedTrainingResponse maps a page of entities to DTOs
func ToPaginatedTrainingResponse(page *entity.PaginatedTrainingEntity) *PaginatedTrainingResponse {
	items := make([]TrainingResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *ToTrainingResponse(&page.Items[i]))
	}

	return &PaginatedTrainingResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
