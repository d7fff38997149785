package dto

import (
	"time"

	"marketplace-api/modules/training/entity"
)

// ===================== Request DTOs =====================

// RegisterRequest carries the contact fields of a registration
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Message  string `json:"message"`
}

// UpdateParticipantStatusRequest for owner-driven status transitions
type UpdateParticipantStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdatePaymentStatusRequest for owner-driven payment bookkeeping
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required"`
}

// ===================== Response DTOs =====================

// ParticipantResponse for a registration record
type ParticipantResponse struct {
	ID            string     `json:"id"`
	TrainingID    string     `json:"training_id"`
	UserID        string     `json:"user_id"`
	Code          string     `json:"code"`
	FullName      string     `json:"full_name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Address       string     `json:"address"`
	Message       string     `json:"message,omitempty"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ExistingRegistration is attached to a duplicate-registration rejection so
// the caller can see where their earlier registration stands.
type ExistingRegistration struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// PaginatedParticipantResponse for paginated participant lists
type PaginatedParticipantResponse struct {
	Items      []ParticipantResponse `json:"items"`
	TotalItems int                   `json:"total_items"`
	PageNumber int                   `json:"page_number"`
	PageSize   int                   `json:"page_size"`
}

// ===================== Mapper Functions =====================

// ToParticipantResponse maps entity to DTO
func ToParticipantResponse(p *entity.Participant) *ParticipantResponse {
	resp := &ParticipantResponse{
		ID:            p.ID.String(),
		TrainingID:    p.TrainingID.String(),
		UserID:        p.UserID.String(),
		Code:          p.Code,
		FullName:      p.FullName,
		Email:         p.Email,
		Phone:         p.Phone,
		Address:       p.Address,
		Status:        string(p.Status),
		PaymentStatus: string(p.PaymentStatus),
		PaidAt:        p.PaidAt,
		CreatedAt:     p.CreatedAt,
	}

	if p.Message != nil {
		resp.Message = *p.Message
	}

	return resp
}

// ToPaginatedParticipantResponse maps a page of entities to DTOs
func ToPaginatedParticipantResponse(page *entity.PaginatedParticipantEntity) *PaginatedParticipantResponse {
	items := make([]ParticipantResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *ToParticipantResponse(&page.Items[i]))
	}

	return &PaginatedParticipantResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
