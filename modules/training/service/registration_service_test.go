package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"marketplace-api/core/errors"
	"marketplace-api/core/params"
	"marketplace-api/modules/training/dto"
	"marketplace-api/modules/training/entity"
	"marketplace-api/modules/training/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
)

// fakeTrainingRepo backs the service with an in-memory training table
type fakeTrainingRepo struct {
	mu        sync.Mutex
	trainings map[uuid.UUID]*entity.Training
}

func newFakeTrainingRepo(trainings ...*entity.Training) *fakeTrainingRepo {
	m := make(map[uuid.UUID]*entity.Training)
	for _, t := range trainings {
		m[t.ID] = t
	}
	return &fakeTrainingRepo{trainings: m}
}

func (f *fakeTrainingRepo) CreateTraining(ctx context.Context, t *entity.Training) (*entity.Training, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = uuid.New()
	f.trainings[t.ID] = t
	return t, nil
}

func (f *fakeTrainingRepo) GetTrainingByID(ctx context.Context, id uuid.UUID) (*entity.Training, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.trainings[id]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTrainingRepo) GetTrainingBySlug(ctx context.Context, slug string) (*entity.Training, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.trainings {
		if t.Slug == slug {
			copied := *t
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeTrainingRepo) GetTrainingsByOwnerID(ctx context.Context, ownerID uuid.UUID, p params.QueryParams) (*entity.PaginatedTrainingEntity, error) {
	return &entity.PaginatedTrainingEntity{}, nil
}

func (f *fakeTrainingRepo) ListTrainings(ctx context.Context, p params.QueryParams) (*entity.PaginatedTrainingEntity, error) {
	return &entity.PaginatedTrainingEntity{}, nil
}

func (f *fakeTrainingRepo) UpdateTraining(ctx context.Context, t *entity.Training) error { return nil }
func (f *fakeTrainingRepo) DeleteTraining(ctx context.Context, id uuid.UUID) error       { return nil }
func (f *fakeTrainingRepo) SlugExists(ctx context.Context, slug string) (bool, error)    { return false, nil }
func (f *fakeTrainingRepo) ResyncAllParticipantCounts(ctx context.Context) (int64, error) {
	return 0, nil
}

// fakeParticipantRepo enforces the capacity and uniqueness invariants the real
// transaction enforces, so concurrent registration behavior can be exercised.
type fakeParticipantRepo struct {
	mu           sync.Mutex
	trainings    *fakeTrainingRepo
	participants map[uuid.UUID]*entity.Participant
}

func newFakeParticipantRepo(trainings *fakeTrainingRepo) *fakeParticipantRepo {
	return &fakeParticipantRepo{
		trainings:    trainings,
		participants: make(map[uuid.UUID]*entity.Participant),
	}
}

func (f *fakeParticipantRepo) Register(ctx context.Context, p *entity.Participant) (*entity.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.trainings.mu.Lock()
	training, ok := f.trainings.trainings[p.TrainingID]
	if !ok {
		f.trainings.mu.Unlock()
		return nil, repository.ErrTrainingNotFound
	}
	if training.ParticipantCount >= training.MaxParticipants {
		f.trainings.mu.Unlock()
		return nil, repository.ErrTrainingFull
	}

	for _, existing := range f.participants {
		if existing.TrainingID == p.TrainingID && existing.UserID == p.UserID {
			f.trainings.mu.Unlock()
			return nil, repository.ErrAlreadyRegistered
		}
	}

	training.ParticipantCount++
	f.trainings.mu.Unlock()

	created := *p
	created.ID = uuid.New()
	f.participants[created.ID] = &created
	return &created, nil
}

func (f *fakeParticipantRepo) GetParticipantByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.participants[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakeParticipantRepo) GetByTrainingAndUser(ctx context.Context, trainingID uuid.UUID, userID uuid.UUID) (*entity.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.participants {
		if p.TrainingID == trainingID && p.UserID == userID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeParticipantRepo) UpdateStatusAndResync(ctx context.Context, participantID uuid.UUID, status entity.ParticipantStatus) (*entity.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.participants[participantID]
	if !ok {
		return nil, nil
	}
	p.Status = status

	confirmed := 0
	for _, other := range f.participants {
		if other.TrainingID == p.TrainingID && other.Status == entity.ParticipantStatusConfirmed {
			confirmed++
		}
	}

	f.trainings.mu.Lock()
	if training, ok := f.trainings.trainings[p.TrainingID]; ok {
		training.ParticipantCount = confirmed
	}
	f.trainings.mu.Unlock()

	copied := *p
	return &copied, nil
}

func (f *fakeParticipantRepo) UpdatePaymentStatus(ctx context.Context, participantID uuid.UUID, status entity.PaymentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.participants[participantID]
	if !ok {
		return fmt.Errorf("participant with id %s not found", participantID)
	}
	p.PaymentStatus = status
	if status == entity.PaymentStatusPaid && p.PaidAt == nil {
		now := time.Now()
		p.PaidAt = &now
	}
	return nil
}

func (f *fakeParticipantRepo) ListByTrainingID(ctx context.Context, trainingID uuid.UUID, p params.QueryParams) (*entity.PaginatedParticipantEntity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []entity.Participant
	for _, part := range f.participants {
		if part.TrainingID == trainingID {
			items = append(items, *part)
		}
	}
	return &entity.PaginatedParticipantEntity{Items: items, TotalItems: len(items)}, nil
}

func (f *fakeParticipantRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []entity.Participant
	for _, part := range f.participants {
		if part.UserID == userID {
			items = append(items, *part)
		}
	}
	return items, nil
}

// fakeEnqueuer records enqueued tasks
type fakeEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
}

func (f *fakeEnqueuer) Enqueue(ctx context.Context, task *asynq.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
	return nil
}

func (f *fakeEnqueuer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

func newTestService(trainings ...*entity.Training) (RegistrationServiceInterface, *fakeTrainingRepo, *fakeParticipantRepo, *fakeEnqueuer) {
	trainingRepo := newFakeTrainingRepo(trainings...)
	participantRepo := newFakeParticipantRepo(trainingRepo)
	enqueuer := &fakeEnqueuer{}
	svc := NewRegistrationService(participantRepo, trainingRepo, enqueuer, nil)
	return svc, trainingRepo, participantRepo, enqueuer
}

func testTraining(max, count int) *entity.Training {
	return &entity.Training{
		ID:               uuid.New(),
		OwnerID:          uuid.New(),
		Title:            "Sourdough Basics",
		Slug:             "sourdough-basics",
		MaxParticipants:  max,
		ParticipantCount: count,
	}
}

func registerReq() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "555-0101",
		Address:  "1 Main St",
	}
}

func TestRegisterSuccess(t *testing.T) {
	training := testTraining(5, 0)
	svc, trainingRepo, _, enqueuer := newTestService(training)

	resp, appErr := svc.Register(context.Background(), training.ID, uuid.New(), registerReq())
	require.Nil(t, appErr)
	require.Equal(t, string(entity.ParticipantStatusPending), resp.Status)
	require.Equal(t, string(entity.PaymentStatusPending), resp.PaymentStatus)
	require.NotEmpty(t, resp.Code)

	stored, _ := trainingRepo.GetTrainingByID(context.Background(), training.ID)
	require.Equal(t, 1, stored.ParticipantCount)
	require.Equal(t, 1, enqueuer.count())
}

func TestRegisterTrainingNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, appErr := svc.Register(context.Background(), uuid.New(), uuid.New(), registerReq())
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestRegisterTrainingFull(t *testing.T) {
	training := testTraining(2, 2)
	svc, _, _, enqueuer := newTestService(training)

	_, appErr := svc.Register(context.Background(), training.ID, uuid.New(), registerReq())
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrTrainingFull, appErr.Code)
	require.Zero(t, enqueuer.count())
}

func TestRegisterLastSeat(t *testing.T) {
	training := testTraining(3, 2)
	svc, trainingRepo, _, _ := newTestService(training)

	_, appErr := svc.Register(context.Background(), training.ID, uuid.New(), registerReq())
	require.Nil(t, appErr)

	stored, _ := trainingRepo.GetTrainingByID(context.Background(), training.ID)
	require.Equal(t, 3, stored.ParticipantCount)

	_, appErr = svc.Register(context.Background(), training.ID, uuid.New(), registerReq())
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrTrainingFull, appErr.Code)
}

func TestRegisterDuplicate(t *testing.T) {
	training := testTraining(5, 0)
	svc, trainingRepo, _, _ := newTestService(training)
	userID := uuid.New()

	_, appErr := svc.Register(context.Background(), training.ID, userID, registerReq())
	require.Nil(t, appErr)

	_, appErr = svc.Register(context.Background(), training.ID, userID, registerReq())
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrAlreadyExists, appErr.Code)

	details, ok := appErr.Details.(dto.ExistingRegistration)
	require.True(t, ok)
	require.Equal(t, string(entity.ParticipantStatusPending), details.Status)
	require.Equal(t, string(entity.PaymentStatusPending), details.PaymentStatus)

	// The duplicate attempt must not claim a second seat
	stored, _ := trainingRepo.GetTrainingByID(context.Background(), training.ID)
	require.Equal(t, 1, stored.ParticipantCount)
}

func TestRegisterConcurrentLastSeat(t *testing.T) {
	training := testTraining(1, 0)
	svc, trainingRepo, _, _ := newTestService(training)

	const attempts = 20
	results := make(chan *errors.AppError, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, appErr := svc.Register(context.Background(), training.ID, uuid.New(), registerReq())
			results <- appErr
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, full int
	for appErr := range results {
		if appErr == nil {
			succeeded++
		} else if appErr.Code == errors.ErrTrainingFull {
			full++
		}
	}

	require.Equal(t, 1, succeeded)
	require.Equal(t, attempts-1, full)

	stored, _ := trainingRepo.GetTrainingByID(context.Background(), training.ID)
	require.Equal(t, 1, stored.ParticipantCount)
}

func TestUpdateStatusConfirm(t *testing.T) {
	training := testTraining(5, 0)
	svc, trainingRepo, _, enqueuer := newTestService(training)

	resp, appErr := svc.Register(context.Background(), training.ID, uuid.New(), registerReq())
	require.Nil(t, appErr)
	participantID := uuid.MustParse(resp.ID)

	updated, appErr := svc.UpdateStatus(context.Background(), participantID, training.OwnerID,
		&dto.UpdateParticipantStatusRequest{Status: "confirmed"})
	require.Nil(t, appErr)
	require.Equal(t, string(entity.ParticipantStatusConfirmed), updated.Status)

	// Counter resyncs to the confirmed set: 1 confirmed
	stored, _ := trainingRepo.GetTrainingByID(context.Background(), training.ID)
	require.Equal(t, 1, stored.ParticipantCount)

	// One task for the registration, one for the status change
	require.Equal(t, 2, enqueuer.count())
}

func TestUpdateStatusRejectReleasesSeat(t *testing.T) {
	training := testTraining(1, 0)
	svc, trainingRepo, _, _ := newTestService(training)

	resp, appErr := svc.Register(context.Background(), training.ID, uuid.New(), registerReq())
	require.Nil(t, appErr)
	participantID := uuid.MustParse(resp.ID)

	// Pending registration holds the only seat
	_, appErr = svc.Register(context.Background(), training.ID, uuid.New(), registerReq())
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrTrainingFull, appErr.Code)

	_, appErr = svc.UpdateStatus(context.Background(), participantID, training.OwnerID,
		&dto.UpdateParticipantStatusRequest{Status: "rejected"})
	require.Nil(t, appErr)

	// Rejection frees the seat for the next registrant
	stored, _ := trainingRepo.GetTrainingByID(context.Background(), training.ID)
	require.Equal(t, 0, stored.ParticipantCount)

	_, appErr = svc.Register(context.Background(), training.ID, uuid.New(), registerReq())
	require.Nil(t, appErr)
}

func TestUpdateStatusForbiddenForNonOwner(t *testing.T) {
	training := testTraining(5, 0)
	svc, _, _, _ := newTestService(training)

	resp, appErr := svc.Register(context.Background(), training.ID, uuid.New(), registerReq())
	require.Nil(t, appErr)

	_, appErr = svc.UpdateStatus(context.Background(), uuid.MustParse(resp.ID), uuid.New(),
		&dto.UpdateParticipantStatusRequest{Status: "confirmed"})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestUpdateStatusInvalidStatus(t *testing.T) {
	training := testTraining(5, 0)
	svc, _, _, _ := newTestService(training)

	_, appErr := svc.UpdateStatus(context.Background(), uuid.New(), training.OwnerID,
		&dto.UpdateParticipantStatusRequest{Status: "approved"})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestUpdatePaymentStatusMarkPaid(t *testing.T) {
	training := testTraining(5, 0)
	svc, trainingRepo, _, _ := newTestService(training)

	resp, appErr := svc.Register(context.Background(), training.ID, uuid.New(), registerReq())
	require.Nil(t, appErr)
	participantID := uuid.MustParse(resp.ID)

	paid, appErr := svc.UpdatePaymentStatus(context.Background(), participantID, training.OwnerID,
		&dto.UpdatePaymentStatusRequest{PaymentStatus: "paid"})
	require.Nil(t, appErr)
	require.Equal(t, string(entity.PaymentStatusPaid), paid.PaymentStatus)
	require.NotNil(t, paid.PaidAt)

	// Payment bookkeeping never touches the seat counter
	stored, _ := trainingRepo.GetTrainingByID(context.Background(), training.ID)
	require.Equal(t, 1, stored.ParticipantCount)
}

func TestUpdatePaymentStatusForbiddenForNonOwner(t *testing.T) {
	training := testTraining(5, 0)
	svc, _, _, _ := newTestService(training)

	resp, appErr := svc.Register(context.Background(), training.ID, uuid.New(), registerReq())
	require.Nil(t, appErr)

	_, appErr = svc.UpdatePaymentStatus(context.Background(), uuid.MustParse(resp.ID), uuid.New(),
		&dto.UpdatePaymentStatusRequest{PaymentStatus: "paid"})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestUpdatePaymentStatusInvalidValue(t *testing.T) {
	training := testTraining(5, 0)
	svc, _, _, _ := newTestService(training)

	_, appErr := svc.UpdatePaymentStatus(context.Background(), uuid.New(), training.OwnerID,
		&dto.UpdatePaymentStatusRequest{PaymentStatus: "refunded"})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestCancelRegistration(t *testing.T) {
	training := testTraining(5, 0)
	svc, trainingRepo, _, _ := newTestService(training)
	userID := uuid.New()

	resp, appErr := svc.Register(context.Background(), training.ID, userID, registerReq())
	require.Nil(t, appErr)

	cancelled, appErr := svc.CancelRegistration(context.Background(), uuid.MustParse(resp.ID), userID)
	require.Nil(t, appErr)
	require.Equal(t, string(entity.ParticipantStatusRejected), cancelled.Status)

	stored, _ := trainingRepo.GetTrainingByID(context.Background(), training.ID)
	require.Equal(t, 0, stored.ParticipantCount)
}

func TestCancelRegistrationForbiddenForOtherUser(t *testing.T) {
	training := testTraining(5, 0)
	svc, _, _, _ := newTestService(training)

	resp, appErr := svc.Register(context.Background(), training.ID, uuid.New(), registerReq())
	require.Nil(t, appErr)

	_, appErr = svc.CancelRegistration(context.Background(), uuid.MustParse(resp.ID), uuid.New())
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestGetTrainingParticipantsOwnerOnly(t *testing.T) {
	training := testTraining(5, 0)
	svc, _, _, _ := newTestService(training)

	_, appErr := svc.Register(context.Background(), training.ID, uuid.New(), registerReq())
	require.Nil(t, appErr)

	page, appErr := svc.GetTrainingParticipants(context.Background(), training.ID, training.OwnerID, params.QueryParams{})
	require.Nil(t, appErr)
	require.Len(t, page.Items, 1)

	_, appErr = svc.GetTrainingParticipants(context.Background(), training.ID, uuid.New(), params.QueryParams{})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrForbidden, appErr.Code)
}
