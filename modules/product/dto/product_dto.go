package dto

import (
	"time"

	"marketplace-api/modules/product/entity"
)

// ===================== Request DTOs =====================

// CreateProductRequest for listing a new product
type CreateProductRequest struct {
	ShopID      string `json:"shop_id" validate:"required,uuid"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents" validate:"min=0"`
	Stock       int    `json:"stock" validate:"min=0"`
}

// UpdateProductRequest for updating product details
type UpdateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  *int64 `json:"price_cents"`
	Stock       *int   `json:"stock"`
	IsActive    *bool  `json:"is_active"`
}

// ===================== Response DTOs =====================

// ProductResponse for product details
type ProductResponse struct {
	ID          string    `json:"id"`
	ShopID      string    `json:"shop_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// PaginatedProductResponse for paginated product lists
type PaginatedProductResponse struct {
	Items      []ProductResponse `json:"items"`
	TotalItems int               `json:"total_items"`
	PageNumber int               `json:"page_number"`
	PageSize   int               `json:"page_size"`
}

// ===================== Mapper Functions =====================

// ToProductResponse maps entity to DTO
func ToProductResponse(p *entity.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:         p.ID.String(),
		ShopID:     p.ShopID.String(),
		Name:       p.Name,
		Slug:       p.Slug,
		PriceCents: p.PriceCents,
		Stock:      p.Stock,
		IsActive:   p.IsActive,
		CreatedAt:  p.CreatedAt,
	}

	if p.Description != nil {
		resp.Description = *p.Description
	}

	return resp
}

// ToPaginatedProductResponse maps a page of entities to DTOs
func ToPaginatedProductResponse(page *entity.PaginatedProductEntity) *PaginatedProductResponse {
	items := make([]ProductResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *ToProductResponse(&page.Items[i]))
	}

	return &PaginatedProductResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
