package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a physical or digital item listed under a shop
type Product struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ShopID      uuid.UUID `db:"shop_id" json:"shop_id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description *string   `db:"description" json:"description,omitempty"`
	PriceCents  int64     `db:"price_cents" json:"price_cents"`
	Stock       int       `db:"stock" json:"stock"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// PaginatedProductEntity wraps a page of products
type PaginatedProductEntity struct {
	Items      []Product `json:"items"`
	TotalItems int       `json:"total_items"`
	PageNumber int       `json:"page_number"`
	PageSize   int       `json:"page_size"`
}
