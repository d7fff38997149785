package service

import (
	"context"
	"testing"
	"time"

	"marketplace-api/core/errors"
	"marketplace-api/modules/training/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fakeKV implements the cache contract in memory and counts hits
type fakeKV struct {
	values map[string]string
	sets   int
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: make(map[string]string)}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.values[key] = value
	f.sets++
	return nil
}

func (f *fakeKV) Del(ctx context.Context, key string) error {
	delete(f.values, key)
	return nil
}

func (f *fakeKV) Expire(ctx context.Context, key string, ttl time.Duration) error { return nil }

func (f *fakeKV) AddToTokenBlacklist(ctx context.Context, token string) error { return nil }
func (f *fakeKV) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	return false, nil
}
func (f *fakeKV) IncrementLoginAttempt(ctx context.Context, key string) error { return nil }
func (f *fakeKV) IsLoginBlocked(ctx context.Context, key string) (bool, error) {
	return false, nil
}

func TestCreateTrainingValidatesCapacity(t *testing.T) {
	svc := NewTrainingService(newFakeTrainingRepo(), nil)

	_, appErr := svc.CreateTraining(context.Background(), uuid.New(), &dto.CreateTrainingRequest{
		Title:           "Sourdough Basics",
		MaxParticipants: 0,
	})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestGetTrainingBySlugCaches(t *testing.T) {
	training := testTraining(10, 4)
	kv := newFakeKV()
	svc := NewTrainingService(newFakeTrainingRepo(training), kv)

	first, appErr := svc.GetTrainingBySlug(context.Background(), training.Slug)
	require.Nil(t, appErr)
	require.Equal(t, 6, first.SeatsLeft)
	require.Equal(t, 1, kv.sets)

	// Second read is served from the cache, no extra write
	second, appErr := svc.GetTrainingBySlug(context.Background(), training.Slug)
	require.Nil(t, appErr)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 1, kv.sets)
}

func TestUpdateTrainingCannotShrinkBelowClaimedSeats(t *testing.T) {
	training := testTraining(10, 7)
	repo := newFakeTrainingRepo(training)
	svc := NewTrainingService(repo, nil)

	_, appErr := svc.UpdateTraining(context.Background(), training.ID, training.OwnerID, &dto.UpdateTrainingRequest{
		MaxParticipants: 5,
	})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrInvalidInput, appErr.Code)

	resp, appErr := svc.UpdateTraining(context.Background(), training.ID, training.OwnerID, &dto.UpdateTrainingRequest{
		MaxParticipants: 8,
	})
	require.Nil(t, appErr)
	require.Equal(t, 8, resp.MaxParticipants)
}

func TestUpdateTrainingForbiddenForNonOwner(t *testing.T) {
	training := testTraining(10, 0)
	svc := NewTrainingService(newFakeTrainingRepo(training), nil)

	_, appErr := svc.UpdateTraining(context.Background(), training.ID, uuid.New(), &dto.UpdateTrainingRequest{
		Title: "Hijacked",
	})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestDeleteTrainingNotFound(t *testing.T) {
	svc := NewTrainingService(newFakeTrainingRepo(), nil)

	appErr := svc.DeleteTraining(context.Background(), uuid.New(), uuid.New())
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrNotFound, appErr.Code)
}
