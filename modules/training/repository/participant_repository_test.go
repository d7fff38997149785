package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"marketplace-api/core/database"
	"marketplace-api/modules/training/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*ParticipantRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	wrapped := database.NewFromSQLx(sqlxDB)
	return NewParticipantRepository(wrapped), mock
}

func participantRows(p *entity.Participant) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "training_id", "user_id", "code", "full_name", "email", "phone",
		"address", "message", "status", "payment_status", "paid_at", "created_at", "updated_at",
	}).AddRow(
		p.ID, p.TrainingID, p.UserID, p.Code, p.FullName, p.Email, p.Phone,
		p.Address, nil, p.Status, p.PaymentStatus, nil, time.Now(), time.Now(),
	)
}

func pendingParticipant() *entity.Participant {
	return &entity.Participant{
		ID:            uuid.New(),
		TrainingID:    uuid.New(),
		UserID:        uuid.New(),
		Code:          "A1B2C3D4E5",
		FullName:      "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "555-0101",
		Address:       "1 Main St",
		Status:        entity.ParticipantStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
	}
}

func TestRegisterClaimsSeatAndInserts(t *testing.T) {
	repo, mock := newMockRepo(t)
	p := pendingParticipant()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE trainings")).
		WithArgs(p.TrainingID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO participants")).
		WillReturnRows(participantRows(p))
	mock.ExpectCommit()

	created, err := repo.Register(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, p.Code, created.Code)
	require.Equal(t, entity.ParticipantStatusPending, created.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterFullTraining(t *testing.T) {
	repo, mock := newMockRepo(t)
	p := pendingParticipant()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE trainings")).
		WithArgs(p.TrainingID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(p.TrainingID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), p)
	require.ErrorIs(t, err, ErrTrainingFull)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterTrainingMissing(t *testing.T) {
	repo, mock := newMockRepo(t)
	p := pendingParticipant()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE trainings")).
		WithArgs(p.TrainingID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(p.TrainingID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), p)
	require.ErrorIs(t, err, ErrTrainingNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateUniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)
	p := pendingParticipant()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE trainings")).
		WithArgs(p.TrainingID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO participants")).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), p)
	require.ErrorIs(t, err, ErrAlreadyRegistered)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusAndResync(t *testing.T) {
	repo, mock := newMockRepo(t)
	p := pendingParticipant()
	p.Status = entity.ParticipantStatusConfirmed

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE participants")).
		WithArgs(p.ID, entity.ParticipantStatusConfirmed).
		WillReturnRows(participantRows(p))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE trainings")).
		WithArgs(p.TrainingID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := repo.UpdateStatusAndResync(context.Background(), p.ID, entity.ParticipantStatusConfirmed)
	require.NoError(t, err)
	require.Equal(t, entity.ParticipantStatusConfirmed, updated.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePaymentStatusMarksPaid(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE participants")).
		WithArgs(id, entity.PaymentStatusPaid).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePaymentStatus(context.Background(), id, entity.PaymentStatusPaid)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePaymentStatusMissingParticipant(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE participants")).
		WithArgs(id, entity.PaymentStatusFailed).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePaymentStatus(context.Background(), id, entity.PaymentStatusFailed)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusAndResyncMissingParticipant(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE participants")).
		WithArgs(id, entity.ParticipantStatusRejected).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	updated, err := repo.UpdateStatusAndResync(context.Background(), id, entity.ParticipantStatusRejected)
	require.NoError(t, err)
	require.Nil(t, updated)
	require.NoError(t, mock.ExpectationsWereMet())
}
