package entity

import (
	"time"

	"github.com/google/uuid"
)

// Shop is a seller's storefront. Products are listed under a shop.
type Shop struct {
	ID          uuid.UUID `db:"id" json:"id"`
	OwnerID     uuid.UUID `db:"owner_id" json:"owner_id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// PaginatedShopEntity wraps a page of shops
type PaginatedShopEntity struct {
	Items      []Shop `json:"items"`
	TotalItems int    `json:"total_items"`
	PageNumber int    `json:"page_number"`
	PageSize   int    `json:"page_size"`
}
