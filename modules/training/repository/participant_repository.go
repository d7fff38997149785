package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"marketplace-api/core/database"
	"marketplace-api/core/logger"
	"marketplace-api/core/params"
	"marketplace-api/modules/training/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Sentinel errors surfaced by the registration transaction
var (
	ErrTrainingNotFound  = errors.New("training not found")
	ErrTrainingFull      = errors.New("training is full")
	ErrAlreadyRegistered = errors.New("user already registered for this training")
)

const pqUniqueViolation = "23505"

// ParticipantRepository handles participant table database operations
type ParticipantRepository struct {
	DB database.Database
}

func NewParticipantRepository(db database.Database) *ParticipantRepository {
	return &ParticipantRepository{DB: db}
}

// ParticipantRepositoryInterface defines the repository contract
type ParticipantRepositoryInterface interface {
	Register(ctx context.Context, participant *entity.Participant) (*entity.Participant, error)
	GetParticipantByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error)
	GetByTrainingAndUser(ctx context.Context, trainingID uuid.UUID, userID uuid.UUID) (*entity.Participant, error)
	UpdateStatusAndResync(ctx context.Context, participantID uuid.UUID, status entity.ParticipantStatus) (*entity.Participant, error)
	UpdatePaymentStatus(ctx context.Context, participantID uuid.UUID, paymentStatus entity.PaymentStatus) error
	ListByTrainingID(ctx context.Context, trainingID uuid.UUID, p params.QueryParams) (*entity.PaginatedParticipantEntity, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Participant, error)
}

const participantColumns = `id, training_id, user_id, code, full_name, email, phone,
	       address, message, status, payment_status, paid_at, created_at, updated_at`

// Register claims a seat and inserts the participant row inside a single
// transaction. The seat claim is an atomic conditional update: two concurrent
// requests for the last seat cannot both succeed.
func (r *ParticipantRepository) Register(ctx context.Context, participant *entity.Participant) (*entity.Participant, error) {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("ParticipantRepository:Register - BeginTx", err)
		return nil, err
	}
	defer tx.Rollback()

	claim := `
		UPDATE trainings
		SET participant_count = participant_count + 1, updated_at = NOW()
		WHERE id = $1 AND participant_count < max_participants
	`

	result, err := tx.ExecContext(ctx, claim, participant.TrainingID)
	if err != nil {
		logger.Error("ParticipantRepository:Register - Claim", err)
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	if rowsAffected == 0 {
		// Zero rows means either the training does not exist or it is full
		var exists bool
		err = tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM trainings WHERE id = $1)`, participant.TrainingID)
		if err != nil {
			logger.Error("ParticipantRepository:Register - Exists", err)
			return nil, err
		}
		if !exists {
			return nil, ErrTrainingNotFound
		}
		return nil, ErrTrainingFull
	}

	insert := `
		INSERT INTO participants (training_id, user_id, code, full_name, email, phone, address, message, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + participantColumns

	var created entity.Participant
	err = tx.GetContext(ctx, &created, insert,
		participant.TrainingID, participant.UserID, participant.Code,
		participant.FullName, participant.Email, participant.Phone,
		participant.Address, participant.Message,
		participant.Status, participant.PaymentStatus)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrAlreadyRegistered
		}
		logger.Error("ParticipantRepository:Register - Insert", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("ParticipantRepository:Register - Commit", err)
		return nil, err
	}

	return &created, nil
}

func (r *ParticipantRepository) GetParticipantByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE id = $1`

	var participant entity.Participant
	err := r.DB.GetContext(ctx, &participant, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ParticipantRepository:GetParticipantByID", err)
		return nil, err
	}

	return &participant, nil
}

func (r *ParticipantRepository) GetByTrainingAndUser(ctx context.Context, trainingID uuid.UUID, userID uuid.UUID) (*entity.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE training_id = $1 AND user_id = $2`

	var participant entity.Participant
	err := r.DB.GetContext(ctx, &participant, query, trainingID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ParticipantRepository:GetByTrainingAndUser", err)
		return nil, err
	}

	return &participant, nil
}

// UpdateStatusAndResync writes the new status and recomputes the training's
// stored participant counter from the authoritative set of confirmed
// registrations, in one transaction. Returns nil when the participant does
// not exist.
func (r *ParticipantRepository) UpdateStatusAndResync(ctx context.Context, participantID uuid.UUID, status entity.ParticipantStatus) (*entity.Participant, error) {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("ParticipantRepository:UpdateStatusAndResync - BeginTx", err)
		return nil, err
	}
	defer tx.Rollback()

	update := `
		UPDATE participants
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + participantColumns

	var updated entity.Participant
	err = tx.GetContext(ctx, &updated, update, participantID, status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ParticipantRepository:UpdateStatusAndResync - Update", err)
		return nil, err
	}

	resync := `
		UPDATE trainings
		SET participant_count = (
			SELECT COUNT(*) FROM participants
			WHERE training_id = $1 AND status = 'confirmed'
		), updated_at = NOW()
		WHERE id = $1
	`

	result, err := tx.ExecContext(ctx, resync, updated.TrainingID)
	if err != nil {
		logger.Error("ParticipantRepository:UpdateStatusAndResync - Resync", err)
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("training %s missing during counter resync", updated.TrainingID)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("ParticipantRepository:UpdateStatusAndResync - Commit", err)
		return nil, err
	}

	return &updated, nil
}

func (r *ParticipantRepository) UpdatePaymentStatus(ctx context.Context, participantID uuid.UUID, paymentStatus entity.PaymentStatus) error {
	query := `
		UPDATE participants
		SET payment_status = $2,
		    paid_at = CASE WHEN $2 = 'paid' THEN NOW() ELSE paid_at END,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.DB.SQLx().ExecContext(ctx, query, participantID, paymentStatus)
	if err != nil {
		logger.Error("ParticipantRepository:UpdatePaymentStatus", err)
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("participant with id %s not found", participantID)
	}

	return nil
}

func (r *ParticipantRepository) ListByTrainingID(ctx context.Context, trainingID uuid.UUID, p params.QueryParams) (*entity.PaginatedParticipantEntity, error) {
	p = p.Normalize()
	offset := (p.PageNumber - 1) * p.PageSize

	var totalItems int
	err := r.DB.GetContext(ctx, &totalItems, `SELECT COUNT(*) FROM participants WHERE training_id = $1`, trainingID)
	if err != nil {
		logger.Error("ParticipantRepository:ListByTrainingID - Count", err)
		return nil, err
	}

	query := `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE training_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`

	var participants []entity.Participant
	err = r.DB.SelectContext(ctx, &participants, query, trainingID, p.PageSize, offset)
	if err != nil {
		logger.Error("ParticipantRepository:ListByTrainingID - Select", err)
		return nil, err
	}

	return &entity.PaginatedParticipantEntity{
		Items:      participants,
		TotalItems: totalItems,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (r *ParticipantRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Participant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var participants []entity.Participant
	err := r.DB.SelectContext(ctx, &participants, query, userID)
	if err != nil {
		logger.Error("ParticipantRepository:ListByUserID", err)
		return nil, err
	}

	return participants, nil
}
