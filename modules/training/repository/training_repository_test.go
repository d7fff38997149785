package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"marketplace-api/core/database"
	"marketplace-api/core/params"
	"marketplace-api/modules/training/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMockTrainingRepo(t *testing.T) (*TrainingRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewTrainingRepository(database.NewFromSQLx(sqlxDB)), mock
}

func trainingRows(tr *entity.Training) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "owner_id", "title", "slug", "description", "price_cents",
		"max_participants", "participant_count", "starts_at", "created_at", "updated_at",
	}).AddRow(
		tr.ID, tr.OwnerID, tr.Title, tr.Slug, nil, tr.PriceCents,
		tr.MaxParticipants, tr.ParticipantCount, nil, time.Now(), time.Now(),
	)
}

func TestCreateTraining(t *testing.T) {
	repo, mock := newMockTrainingRepo(t)

	tr := &entity.Training{
		ID:              uuid.New(),
		OwnerID:         uuid.New(),
		Title:           "Sourdough Basics",
		Slug:            "sourdough-basics",
		PriceCents:      4900,
		MaxParticipants: 12,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO trainings")).
		WillReturnRows(trainingRows(tr))

	created, err := repo.CreateTraining(context.Background(), tr)
	require.NoError(t, err)
	require.Equal(t, tr.Slug, created.Slug)
	require.Equal(t, 12, created.MaxParticipants)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTrainingBySlugNotFound(t *testing.T) {
	repo, mock := newMockTrainingRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM trainings WHERE slug")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	tr, err := repo.GetTrainingBySlug(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, tr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListTrainingsWithSearch(t *testing.T) {
	repo, mock := newMockTrainingRepo(t)

	tr := &entity.Training{
		ID:              uuid.New(),
		OwnerID:         uuid.New(),
		Title:           "Sourdough Basics",
		Slug:            "sourdough-basics",
		MaxParticipants: 12,
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM trainings WHERE title ILIKE $1")).
		WithArgs("%sourdough%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM trainings WHERE title ILIKE $1")).
		WithArgs("%sourdough%", 20, 0).
		WillReturnRows(trainingRows(tr))

	page, err := repo.ListTrainings(context.Background(), params.QueryParams{Search: "sourdough"})
	require.NoError(t, err)
	require.Equal(t, 1, page.TotalItems)
	require.Len(t, page.Items, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResyncAllParticipantCounts(t *testing.T) {
	repo, mock := newMockTrainingRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE trainings t")).
		WillReturnResult(sqlmock.NewResult(0, 3))

	changed, err := repo.ResyncAllParticipantCounts(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(3), changed)
	require.NoError(t, mock.ExpectationsWereMet())
}
