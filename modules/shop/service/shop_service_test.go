package service

import (
	"context"
	"strings"
	"testing"

	"marketplace-api/core/errors"
	"marketplace-api/core/params"
	"marketplace-api/modules/shop/dto"
	"marketplace-api/modules/shop/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fakeShopRepo backs the service with an in-memory shop table
type fakeShopRepo struct {
	shops map[uuid.UUID]*entity.Shop
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{shops: make(map[uuid.UUID]*entity.Shop)}
}

func (f *fakeShopRepo) CreateShop(ctx context.Context, s *entity.Shop) (*entity.Shop, error) {
	s.ID = uuid.New()
	f.shops[s.ID] = s
	return s, nil
}

func (f *fakeShopRepo) GetShopByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	s, ok := f.shops[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (f *fakeShopRepo) GetShopBySlug(ctx context.Context, slug string) (*entity.Shop, error) {
	for _, s := range f.shops {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeShopRepo) GetShopsByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]entity.Shop, error) {
	var out []entity.Shop
	for _, s := range f.shops {
		if s.OwnerID == ownerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeShopRepo) ListShops(ctx context.Context, p params.QueryParams) (*entity.PaginatedShopEntity, error) {
	return &entity.PaginatedShopEntity{}, nil
}

func (f *fakeShopRepo) UpdateShop(ctx context.Context, s *entity.Shop) error { return nil }
func (f *fakeShopRepo) DeleteShop(ctx context.Context, id uuid.UUID) error {
	delete(f.shops, id)
	return nil
}

func (f *fakeShopRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	for _, s := range f.shops {
		if s.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateShopSlugFromName(t *testing.T) {
	svc := NewShopService(newFakeShopRepo())

	resp, appErr := svc.CreateShop(context.Background(), uuid.New(), &dto.CreateShopRequest{
		Name: "Rosa Pottery Studio",
	})
	require.Nil(t, appErr)
	require.Equal(t, "rosa-pottery-studio", resp.Slug)
}

func TestCreateShopSlugCollision(t *testing.T) {
	svc := NewShopService(newFakeShopRepo())

	first, appErr := svc.CreateShop(context.Background(), uuid.New(), &dto.CreateShopRequest{Name: "Bakehouse"})
	require.Nil(t, appErr)
	require.Equal(t, "bakehouse", first.Slug)

	second, appErr := svc.CreateShop(context.Background(), uuid.New(), &dto.CreateShopRequest{Name: "Bakehouse"})
	require.Nil(t, appErr)
	require.NotEqual(t, first.Slug, second.Slug)
	require.True(t, strings.HasPrefix(second.Slug, "bakehouse-"))
}

func TestUpdateShopOwnershipCheck(t *testing.T) {
	repo := newFakeShopRepo()
	svc := NewShopService(repo)
	ownerID := uuid.New()

	created, appErr := svc.CreateShop(context.Background(), ownerID, &dto.CreateShopRequest{Name: "Bakehouse"})
	require.Nil(t, appErr)
	shopID := uuid.MustParse(created.ID)

	_, appErr = svc.UpdateShop(context.Background(), shopID, uuid.New(), &dto.UpdateShopRequest{Name: "Hijacked"})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrForbidden, appErr.Code)

	updated, appErr := svc.UpdateShop(context.Background(), shopID, ownerID, &dto.UpdateShopRequest{Name: "Bakehouse II"})
	require.Nil(t, appErr)
	require.Equal(t, "Bakehouse II", updated.Name)
}

func TestDeleteShopNotFound(t *testing.T) {
	svc := NewShopService(newFakeShopRepo())

	appErr := svc.DeleteShop(context.Background(), uuid.New(), uuid.New())
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrNotFound, appErr.Code)
}
