package entity

import (
	"marketplace-api/core/entity"

	"github.com/google/uuid"
)

// Notification types emitted by the registration workflow
const (
	TypeRegistrationCreated = "registration_created"
	TypeStatusChanged       = "status_changed"
)

// Notification is an in-app message for a user. Data carries type-specific
// context such as the training and participant IDs.
type Notification struct {
	UserID  uuid.UUID    `db:"user_id" json:"user_id"`
	Title   string       `db:"title" json:"title"`
	Message string       `db:"message" json:"message"`
	Type    string       `db:"type" json:"type"`
	Data    entity.JSONB `db:"data" json:"data"`
	IsRead  bool         `db:"is_read" json:"is_read"`
	entity.BaseEntity
}

type PaginatedNotificationEntity = entity.Pagination[Notification]
