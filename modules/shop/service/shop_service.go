package service

import (
	"context"

	"marketplace-api/core/errors"
	"marketplace-api/core/params"
	"marketplace-api/core/utils"
	"marketplace-api/modules/shop/dto"
	"marketplace-api/modules/shop/entity"
	"marketplace-api/modules/shop/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ShopService handles shop business logic
type ShopService struct {
	repo repository.ShopRepositoryInterface
}

// ShopServiceInterface defines the service contract
type ShopServiceInterface interface {
	CreateShop(ctx context.Context, ownerID uuid.UUID, req *dto.CreateShopRequest) (*dto.ShopResponse, *errors.AppError)
	GetShopBySlug(ctx context.Context, slug string) (*dto.ShopResponse, *errors.AppError)
	GetMyShops(ctx context.Context, ownerID uuid.UUID) ([]dto.ShopResponse, *errors.AppError)
	ListShops(ctx context.Context, p params.QueryParams) (*dto.PaginatedShopResponse, *errors.AppError)
	UpdateShop(ctx context.Context, shopID uuid.UUID, ownerID uuid.UUID, req *dto.UpdateShopRequest) (*dto.ShopResponse, *errors.AppError)
	DeleteShop(ctx context.Context, shopID uuid.UUID, ownerID uuid.UUID) *errors.AppError
}

// NewShopService creates a new shop service
func NewShopService(repo repository.ShopRepositoryInterface) ShopServiceInterface {
	return &ShopService{repo: repo}
}

// CreateShop opens a new shop owned by the caller
func (s *ShopService) CreateShop(ctx context.Context, ownerID uuid.UUID, req *dto.CreateShopRequest) (*dto.ShopResponse, *errors.AppError) {
	shopSlug, appErr := s.uniqueSlug(ctx, req.Name)
	if appErr != nil {
		return nil, appErr
	}

	shop := &entity.Shop{
		OwnerID: ownerID,
		Name:    req.Name,
		Slug:    shopSlug,
	}
	if req.Description != "" {
		shop.Description = &req.Description
	}

	created, err := s.repo.CreateShop(ctx, shop)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create shop", err)
	}

	return dto.ToShopResponse(created), nil
}

// GetShopBySlug retrieves a shop by its public slug
func (s *ShopService) GetShopBySlug(ctx context.Context, shopSlug string) (*dto.ShopResponse, *errors.AppError) {
	shop, err := s.repo.GetShopBySlug(ctx, shopSlug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get shop", err)
	}
	if shop == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Shop not found", nil)
	}
	return dto.ToShopResponse(shop), nil
}

// GetMyShops retrieves the caller's shops
func (s *ShopService) GetMyShops(ctx context.Context, ownerID uuid.UUID) ([]dto.ShopResponse, *errors.AppError) {
	shops, err := s.repo.GetShopsByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get shops", err)
	}

	result := make([]dto.ShopResponse, 0, len(shops))
	for i := range shops {
		result = append(result, *dto.ToShopResponse(&shops[i]))
	}

	return result, nil
}

// ListShops retrieves the public shop directory
func (s *ShopService) ListShops(ctx context.Context, p params.QueryParams) (*dto.PaginatedShopResponse, *errors.AppError) {
	page, err := s.repo.ListShops(ctx, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list shops", err)
	}
	return dto.ToPaginatedShopResponse(page), nil
}

// UpdateShop updates shop details after an ownership check
func (s *ShopService) UpdateShop(ctx context.Context, shopID uuid.UUID, ownerID uuid.UUID, req *dto.UpdateShopRequest) (*dto.ShopResponse, *errors.AppError) {
	shop, err := s.repo.GetShopByID(ctx, shopID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get shop", err)
	}
	if shop == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Shop not found", nil)
	}
	if shop.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not authorized", nil)
	}

	if req.Name != "" {
		shop.Name = req.Name
	}
	if req.Description != "" {
		shop.Description = &req.Description
	}

	if err := s.repo.UpdateShop(ctx, shop); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update shop", err)
	}

	return dto.ToShopResponse(shop), nil
}

// DeleteShop deletes a shop after an ownership check
func (s *ShopService) DeleteShop(ctx context.Context, shopID uuid.UUID, ownerID uuid.UUID) *errors.AppError {
	shop, err := s.repo.GetShopByID(ctx, shopID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to get shop", err)
	}
	if shop == nil {
		return errors.NewAppError(errors.ErrNotFound, "Shop not found", nil)
	}
	if shop.OwnerID != ownerID {
		return errors.NewAppError(errors.ErrForbidden, "Not authorized", nil)
	}

	if err := s.repo.DeleteShop(ctx, shopID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete shop", err)
	}

	return nil
}

// uniqueSlug derives a slug from the name, appending a random suffix when the
// plain slug is taken
func (s *ShopService) uniqueSlug(ctx context.Context, name string) (string, *errors.AppError) {
	base := slug.Make(name)

	exists, err := s.repo.SlugExists(ctx, base)
	if err != nil {
		return "", errors.NewAppError(errors.ErrInternalServer, "Failed to check slug", err)
	}
	if !exists {
		return base, nil
	}

	return base + "-" + utils.GenerateSlugSuffix(), nil
}
