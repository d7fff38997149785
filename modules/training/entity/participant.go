package entity

import (
	"time"

	"github.com/google/uuid"
)

// ParticipantStatus represents the registration status of a participant
type ParticipantStatus string

const (
	ParticipantStatusPending   ParticipantStatus = "pending"
	ParticipantStatusConfirmed ParticipantStatus = "confirmed"
	ParticipantStatusRejected  ParticipantStatus = "rejected"
)

// ValidParticipantStatus reports whether s is one of the known statuses
func ValidParticipantStatus(s string) bool {
	switch ParticipantStatus(s) {
	case ParticipantStatusPending, ParticipantStatusConfirmed, ParticipantStatusRejected:
		return true
	}
	return false
}

// PaymentStatus represents the payment state of a registration
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// ValidPaymentStatus reports whether s is one of the known payment states
func ValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	}
	return false
}

// Participant is a user's registration record against a training
type Participant struct {
	ID            uuid.UUID         `db:"id" json:"id"`
	TrainingID    uuid.UUID         `db:"training_id" json:"training_id"`
	UserID        uuid.UUID         `db:"user_id" json:"user_id"`
	Code          string            `db:"code" json:"code"`
	FullName      string            `db:"full_name" json:"full_name"`
	Email         string            `db:"email" json:"email"`
	Phone         string            `db:"phone" json:"phone"`
	Address       string            `db:"address" json:"address"`
	Message       *string           `db:"message" json:"message,omitempty"`
	Status        ParticipantStatus `db:"status" json:"status"`
	PaymentStatus PaymentStatus     `db:"payment_status" json:"payment_status"`
	PaidAt        *time.Time        `db:"paid_at" json:"paid_at,omitempty"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`
}

// PaginatedParticipantEntity wraps a page of participants
type PaginatedParticipantEntity struct {
	Items      []Participant `json:"items"`
	TotalItems int           `json:"total_items"`
	PageNumber int           `json:"page_number"`
	PageSize   int           `json:"page_size"`
}
