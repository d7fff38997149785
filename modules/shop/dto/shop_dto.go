package dto

import (
	"time"

	"marketplace-api/modules/shop/entity"
)

// ===================== Request DTOs =====================

// CreateShopRequest for opening a new shop
type CreateShopRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateShopRequest for updating shop details
type UpdateShopRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ===================== Response DTOs =====================

// ShopResponse for shop details
type ShopResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// PaginatedShopResponse for paginated shop lists
type PaginatedShopResponse struct {
	Items      []ShopResponse `json:"items"`
	TotalItems int            `json:"total_items"`
	PageNumber int            `json:"page_number"`
	PageSize   int            `json:"page_size"`
}

// ===================== Mapper Functions =====================

// ToShopResponse maps entity to DTO
func ToShopResponse(s *entity.Shop) *ShopResponse {
	resp := &ShopResponse{
		ID:        s.ID.String(),
		OwnerID:   s.OwnerID.String(),
		Name:      s.Name,
		Slug:      s.Slug,
		CreatedAt: s.CreatedAt,
	}

	if s.Description != nil {
		resp.Description = *s.Description
	}

	return resp
}

// ToPaginatedShopResponse maps a page of entities to DTOs
func ToPaginatedShopResponse(page *entity.PaginatedShopEntity) *PaginatedShopResponse {
	items := make([]ShopResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *ToShopResponse(&page.Items[i]))
	}

	return &PaginatedShopResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
