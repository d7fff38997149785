package worker

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names
const (
	TaskRegistrationCreated = "training:registration_created"
	TaskStatusChanged       = "training:status_changed"
	TaskCounterResync       = "training:counter_resync"
)

// RegistrationCreatedPayload notifies a training owner of a new registration
type RegistrationCreatedPayload struct {
	TrainingID    uuid.UUID `json:"training_id"`
	TrainingTitle string    `json:"training_title"`
	OwnerID       uuid.UUID `json:"owner_id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	FullName      string    `json:"full_name"`
}

// StatusChangedPayload notifies a registrant of a status transition
type StatusChangedPayload struct {
	TrainingID    uuid.UUID `json:"training_id"`
	TrainingTitle string    `json:"training_title"`
	UserID        uuid.UUID `json:"user_id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	Status        string    `json:"status"`
}

func NewRegistrationCreatedTask(p RegistrationCreatedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRegistrationCreated, payload), nil
}

func NewStatusChangedTask(p StatusChangedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStatusChanged, payload), nil
}

func NewCounterResyncTask() *asynq.Task {
	return asynq.NewTask(TaskCounterResync, nil)
}
