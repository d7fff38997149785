package service

import (
	"context"

	"marketplace-api/core/errors"
	"marketplace-api/core/params"
	"marketplace-api/core/utils"
	"marketplace-api/modules/product/dto"
	"marketplace-api/modules/product/entity"
	"marketplace-api/modules/product/repository"
	shoprepo "marketplace-api/modules/shop/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ProductService handles product business logic. Ownership checks go through
// the shop a product belongs to.
type ProductService struct {
	repo  repository.ProductRepositoryInterface
	shops shoprepo.ShopRepositoryInterface
}

// ProductServiceInterface defines the service contract
type ProductServiceInterface interface {
	CreateProduct(ctx context.Context, ownerID uuid.UUID, req *dto.CreateProductRequest) (*dto.ProductResponse, *errors.AppError)
	GetProductBySlug(ctx context.Context, slug string) (*dto.ProductResponse, *errors.AppError)
	ListProducts(ctx context.Context, p params.QueryParams) (*dto.PaginatedProductResponse, *errors.AppError)
	ListShopProducts(ctx context.Context, shopID uuid.UUID, p params.QueryParams) (*dto.PaginatedProductResponse, *errors.AppError)
	UpdateProduct(ctx context.Context, productID uuid.UUID, ownerID uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, *errors.AppError)
	DeleteProduct(ctx context.Context, productID uuid.UUID, ownerID uuid.UUID) *errors.AppError
}

// NewProductService creates a new product service
func NewProductService(repo repository.ProductRepositoryInterface, shops shoprepo.ShopRepositoryInterface) ProductServiceInterface {
	return &ProductService{repo: repo, shops: shops}
}

// CreateProduct lists a new product under a shop the caller owns
func (s *ProductService) CreateProduct(ctx context.Context, ownerID uuid.UUID, req *dto.CreateProductRequest) (*dto.ProductResponse, *errors.AppError) {
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid shop ID", nil)
	}

	shop, err := s.shops.GetShopByID(ctx, shopID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get shop", err)
	}
	if shop == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Shop not found", nil)
	}
	if shop.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not authorized", nil)
	}

	productSlug, appErr := s.uniqueSlug(ctx, req.Name)
	if appErr != nil {
		return nil, appErr
	}

	product := &entity.Product{
		ShopID:     shopID,
		Name:       req.Name,
		Slug:       productSlug,
		PriceCents: req.PriceCents,
		Stock:      req.Stock,
	}
	if req.Description != "" {
		product.Description = &req.Description
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create product", err)
	}

	return dto.ToProductResponse(created), nil
}

// GetProductBySlug retrieves a product by its public slug
func (s *ProductService) GetProductBySlug(ctx context.Context, productSlug string) (*dto.ProductResponse, *errors.AppError) {
	product, err := s.repo.GetProductBySlug(ctx, productSlug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get product", err)
	}
	if product == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Product not found", nil)
	}
	return dto.ToProductResponse(product), nil
}

// ListProducts retrieves the public catalog of active products
func (s *ProductService) ListProducts(ctx context.Context, p params.QueryParams) (*dto.PaginatedProductResponse, *errors.AppError) {
	page, err := s.repo.ListProducts(ctx, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list products", err)
	}
	return dto.ToPaginatedProductResponse(page), nil
}

// ListShopProducts retrieves a shop's products
func (s *ProductService) ListShopProducts(ctx context.Context, shopID uuid.UUID, p params.QueryParams) (*dto.PaginatedProductResponse, *errors.AppError) {
	page, err := s.repo.ListByShopID(ctx, shopID, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list products", err)
	}
	return dto.ToPaginatedProductResponse(page), nil
}

// UpdateProduct updates product details after a shop ownership check
func (s *ProductService) UpdateProduct(ctx context.Context, productID uuid.UUID, ownerID uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, *errors.AppError) {
	product, appErr := s.ownedProduct(ctx, productID, ownerID)
	if appErr != nil {
		return nil, appErr
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = &req.Description
	}
	if req.PriceCents != nil {
		product.PriceCents = *req.PriceCents
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Stock cannot be negative", nil)
		}
		product.Stock = *req.Stock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update product", err)
	}

	return dto.ToProductResponse(product), nil
}

// DeleteProduct deletes a product after a shop ownership check
func (s *ProductService) DeleteProduct(ctx context.Context, productID uuid.UUID, ownerID uuid.UUID) *errors.AppError {
	if _, appErr := s.ownedProduct(ctx, productID, ownerID); appErr != nil {
		return appErr
	}

	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete product", err)
	}

	return nil
}

func (s *ProductService) ownedProduct(ctx context.Context, productID uuid.UUID, ownerID uuid.UUID) (*entity.Product, *errors.AppError) {
	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get product", err)
	}
	if product == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Product not found", nil)
	}

	shop, err := s.shops.GetShopByID(ctx, product.ShopID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get shop", err)
	}
	if shop == nil || shop.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not authorized", nil)
	}

	return product, nil
}

// uniqueSlug derives a slug from the name, appending a random suffix when the
// plain slug is taken
func (s *ProductService) uniqueSlug(ctx context.Context, name string) (string, *errors.AppError) {
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
