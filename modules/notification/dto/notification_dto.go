package dto

import (
	"github.com/google/uuid"
)

// CreateNotificationRequest carries an internally produced notification
type CreateNotificationRequest struct {
	UserID  uuid.UUID              `json:"user_id"`
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
	Type    string                 `json:"type"`
	Data    map[string]interface{} `json:"data"`
}

// MarkAsReadRequest lists the notification IDs to mark read
type MarkAsReadRequest struct {
	IDs []string `json:"ids" validate:"required"`
}
