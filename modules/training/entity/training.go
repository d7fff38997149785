package entity

import (
	"time"

	"github.com/google/uuid"
)

// Training is a schedulable offering with a fixed participant capacity.
// ParticipantCount is a denormalized seat-hold counter: it is claimed
// atomically during registration and resynchronized from confirmed
// registrations on every status transition and by the periodic resync task.
type Training struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	OwnerID          uuid.UUID  `db:"owner_id" json:"owner_id"`
	Title            string     `db:"title" json:"title"`
	Slug             string     `db:"slug" json:"slug"`
	Description      *string    `db:"description" json:"description,omitempty"`
	PriceCents       int64      `db:"price_cents" json:"price_cents"`
	MaxParticipants  int        `db:"max_participants" json:"max_participants"`
	ParticipantCount int        `db:"participant_count" json:"participant_count"`
	StartsAt         *time.Time `db:"starts_at" json:"starts_at,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// SeatsLeft returns the number of unclaimed seats
func (t *Training) SeatsLeft() int {
	left := t.MaxParticipants - t.ParticipantCount
	if left < 0 {
		return 0
	}
	return left
}

// PaginatedTrainingEntity wraps a page of trainings
type PaginatedTrainingEntity struct {
	Items      []Training `json:"items"`
	TotalItems int        `json:"total_items"`
	PageNumber int        `json:"page_number"`
	PageSize   int        `json:"page_size"`
}
