package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"marketplace-api/core/database"
	"marketplace-api/core/logger"
	"marketplace-api/core/params"
	"marketplace-api/modules/training/entity"

	"github.com/google/uuid"
)

// TrainingRepository handles training table database operations
type TrainingRepository struct {
	DB database.Database
}

func NewTrainingRepository(db database.Database) *TrainingRepository {
	return &TrainingRepository{DB: db}
}

// TrainingRepositoryInterface defines the repository contract
type TrainingRepositoryInterface interface {
	CreateTraining(ctx context.Context, training *entity.Training) (*entity.Training, error)
	GetTrainingByID(ctx context.Context, id uuid.UUID) (*entity.Training, error)
	GetTrainingBySlug(ctx context.Context, slug string) (*entity.Training, error)
	GetTrainingsByOwnerID(ctx context.Context, ownerID uuid.UUID, p params.QueryParams) (*entity.PaginatedTrainingEntity, error)
	ListTrainings(ctx context.Context, p params.QueryParams) (*entity.PaginatedTrainingEntity, error)
	UpdateTraining(ctx context.Context, training *entity.Training) error
	DeleteTraining(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	ResyncAllParticipantCounts(ctx context.Context) (int64, error)
}

const trainingColumns = `id, owner_id, title, slug, description, price_cents,
	       max_participants, participant_count, starts_at, created_at, updated_at`

func (r *TrainingRepository) CreateTraining(ctx context.Context, training *entity.Training) (*entity.Training, error) {
	query := `
		INSERT INTO trainings (owner_id, title, slug, description, price_cents, max_participants, starts_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + trainingColumns

	var created entity.Training
	err := r.DB.GetContext(ctx, &created, query,
		training.OwnerID, training.Title, training.Slug, training.Description,
		training.PriceCents, training.MaxParticipants, training.StartsAt)

	if err != nil {
		logger.Error("TrainingRepository:CreateTraining", err)
		return nil, err
	}

	return &created, nil
}

func (r *TrainingRepository) GetTrainingByID(ctx context.Context, id uuid.UUID) (*entity.Training, error) {
	query := `SELECT ` + trainingColumns + ` FROM trainings WHERE id = $1`

	var training entity.Training
	err := r.DB.GetContext(ctx, &training, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TrainingRepository:GetTrainingByID", err)
		return nil, err
	}

	return &training, nil
}

func (r *TrainingRepository) GetTrainingBySlug(ctx context.Context, slug string) (*entity.Training, error) {
	query := `SELECT ` + trainingColumns + ` FROM trainings WHERE slug = $1`

	var training entity.Training
	err := r.DB.GetContext(ctx, &training, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TrainingRepository:GetTrainingBySlug", err)
		return nil, err
	}

	return &training, nil
}

func (r *TrainingRepository) GetTrainingsByOwnerID(ctx context.Context, ownerID uuid.UUID, p params.QueryParams) (*entity.PaginatedTrainingEntity, error) {
	p = p.Normalize()
	offset := (p.PageNumber - 1) * p.PageSize

	var totalItems int
	err := r.DB.GetContext(ctx, &totalItems, `SELECT COUNT(*) FROM trainings WHERE owner_id = $1`, ownerID)
	if err != nil {
		logger.Error("TrainingRepository:GetTrainingsByOwnerID - Count", err)
		return nil, err
	}

	query := `
		SELECT ` + trainingColumns + `
		FROM trainings
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var trainings []entity.Training
	err = r.DB.SelectContext(ctx, &trainings, query, ownerID, p.PageSize, offset)
	if err != nil {
		logger.Error("TrainingRepository:GetTrainingsByOwnerID - Select", err)
		return nil, err
	}

	return &entity.PaginatedTrainingEntity{
		Items:      trainings,
		TotalItems: totalItems,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (r *TrainingRepository) ListTrainings(ctx context.Context, p params.QueryParams) (*entity.PaginatedTrainingEntity, error) {
	p = p.Normalize()
	offset := (p.PageNumber - 1) * p.PageSize

	baseQuery := `FROM trainings`

	var whereClause string
	var args []interface{}
	conditions := []string{}
	argIndex := 1

	if p.Search != "" {
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", argIndex))
		args = append(args, "%"+p.Search+"%")
		argIndex++
	}

	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) " + baseQuery + whereClause

	var totalItems int
	err := r.DB.GetContext(ctx, &totalItems, countQuery, args...)
	if err != nil {
		logger.Error("TrainingRepository:ListTrainings - Count", err)
		return nil, err
	}

	dataQuery := `SELECT ` + trainingColumns + ` ` + baseQuery + whereClause + `
		ORDER BY created_at DESC
		LIMIT $` + fmt.Sprintf("%d", argIndex) + ` OFFSET $` + fmt.Sprintf("%d", argIndex+1)

	args = append(args, p.PageSize, offset)

	var trainings []entity.Training
	err = r.DB.SelectContext(ctx, &trainings, dataQuery, args...)
	if err != nil {
		logger.Error("TrainingRepository:ListTrainings - Select", err)
		return nil, err
	}

	return &entity.PaginatedTrainingEntity{
		Items:      trainings,
		TotalItems: totalItems,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (r *TrainingRepository) UpdateTraining(ctx context.Context, training *entity.Training) error {
	query := `
		UPDATE trainings
		SET title = $2, description = $3, price_cents = $4, max_participants = $5,
		    starts_at = $6, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.DB.SQLx().ExecContext(ctx, query,
		training.ID, training.Title, training.Description, training.PriceCents,
		training.MaxParticipants, training.StartsAt)
	if err != nil {
		logger.Error("TrainingRepository:UpdateTraining", err)
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		logger.Error("TrainingRepository:UpdateTraining - RowsAffected", err)
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("training with id %s not found", training.ID)
	}

	return nil
}

func (r *TrainingRepository) DeleteTraining(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM trainings WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("TrainingRepository:DeleteTraining", err)
		return err
	}
	return nil
}

func (r *TrainingRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM trainings WHERE slug = $1)`
	err := r.DB.GetContext(ctx, &exists, query, slug)
	if err != nil {
		logger.Error("TrainingRepository:SlugExists", err)
		return false, err
	}
	return exists, nil
}

// ResyncAllParticipantCounts rewrites every training's stored counter from the
// authoritative set of confirmed participants. Returns the number of trainings
// whose counter actually changed.
func (r *TrainingRepository) ResyncAllParticipantCounts(ctx context.Context) (int64, error) {
	query := `
		UPDATE trainings t
		SET participant_count = c.confirmed, updated_at = NOW()
		FROM (
			SELECT t2.id, COALESCE(COUNT(p.id) FILTER (WHERE p.status = 'confirmed'), 0) AS confirmed
			FROM trainings t2
			LEFT JOIN participants p ON p.training_id = t2.id
			GROUP BY t2.id
		) c
		WHERE c.id = t.id AND t.participant_count <> c.confirmed
	`

	result, err := r.DB.SQLx().ExecContext(ctx, query)
	if err != nil {
		logger.Error("TrainingRepository:ResyncAllParticipantCounts", err)
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return rowsAffected, nil
}
