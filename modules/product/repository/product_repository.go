package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"marketplace-api/core/database"
	"marketplace-api/core/logger"
	"marketplace-api/core/params"
	"marketplace-api/modules/product/entity"

	"github.com/google/uuid"
)

// ProductRepository handles product table database operations
type ProductRepository struct {
	DB database.Database
}

func NewProductRepository(db database.Database) *ProductRepository {
	return &ProductRepository{DB: db}
}

// ProductRepositoryInterface defines the repository contract
type ProductRepositoryInterface interface {
	CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error)
	ListByShopID(ctx context.Context, shopID uuid.UUID, p params.QueryParams) (*entity.PaginatedProductEntity, error)
	ListProducts(ctx context.Context, p params.QueryParams) (*entity.PaginatedProductEntity, error)
	UpdateProduct(ctx context.Context, product *entity.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

const productColumns = `id, shop_id, name, slug, description, price_cents, stock, is_active, created_at, updated_at`

func (r *ProductRepository) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	query := `
		INSERT INTO products (shop_id, name, slug, description, price_cents, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + productColumns

	var created entity.Product
	err := r.DB.GetContext(ctx, &created, query,
		product.ShopID, product.Name, product.Slug, product.Description,
		product.PriceCents, product.Stock)
	if err != nil {
		logger.Error("ProductRepository:CreateProduct", err)
		return nil, err
	}

	return &created, nil
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var product entity.Product
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ProductRepository:GetProductByID", err)
		return nil, err
	}

	return &product, nil
}

func (r *ProductRepository) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`

	var product entity.Product
	err := r.DB.GetContext(ctx, &product, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ProductRepository:GetProductBySlug", err)
		return nil, err
	}

	return &product, nil
}

func (r *ProductRepository) ListByShopID(ctx context.Context, shopID uuid.UUID, p params.QueryParams) (*entity.PaginatedProductEntity, error) {
	p = p.Normalize()
	offset := (p.PageNumber - 1) * p.PageSize

	var totalItems int
	err := r.DB.GetContext(ctx, &totalItems, `SELECT COUNT(*) FROM products WHERE shop_id = $1`, shopID)
	if err != nil {
		logger.Error("ProductRepository:ListByShopID - Count", err)
		return nil, err
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE shop_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var products []entity.Product
	err = r.DB.SelectContext(ctx, &products, query, shopID, p.PageSize, offset)
	if err != nil {
		logger.Error("ProductRepository:ListByShopID - Select", err)
		return nil, err
	}

	return &entity.PaginatedProductEntity{
		Items:      products,
		TotalItems: totalItems,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (r *ProductRepository) ListProducts(ctx context.Context, p params.QueryParams) (*entity.PaginatedProductEntity, error) {
	p = p.Normalize()
	offset := (p.PageNumber - 1) * p.PageSize

	baseQuery := `FROM products`

	var whereClause string
	var args []interface{}
	conditions := []string{"is_active = TRUE"}
	argIndex := 1

	if p.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIndex))
		args = append(args, "%"+p.Search+"%")
		argIndex++
	}

	whereClause = " WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT COUNT(*) " + baseQuery + whereClause

	var totalItems int
	err := r.DB.GetContext(ctx, &totalItems, countQuery, args...)
	if err != nil {
		logger.Error("ProductRepository:ListProducts - Count", err)
		return nil, err
	}

	dataQuery := `SELECT ` + productColumns + ` ` + baseQuery + whereClause + `
		ORDER BY created_at DESC
		LIMIT $` + fmt.Sprintf("%d", argIndex) + ` OFFSET $` + fmt.Sprintf("%d", argIndex+1)

	args = append(args, p.PageSize, offset)

	var products []entity.Product
	err = r.DB.SelectContext(ctx, &products, dataQuery, args...)
	if err != nil {
		logger.Error("ProductRepository:ListProducts - Select", err)
		return nil, err
	}

	return &entity.PaginatedProductEntity{
		Items:      products,
		TotalItems: totalItems,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price_cents = $4, stock = $5,
		    is_active = $6, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.DB.SQLx().ExecContext(ctx, query,
		product.ID, product.Name, product.Description, product.PriceCents,
		product.Stock, product.IsActive)
	if err != nil {
		logger.Error("ProductRepository:UpdateProduct", err)
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product with id %s not found", product.ID)
	}

	return nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("ProductRepository:DeleteProduct", err)
		return err
	}
	return nil
}

func (r *ProductRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM products WHERE slug = $1)`
	err := r.DB.GetContext(ctx, &exists, query, slug)
	if err != nil {
		logger.Error("ProductRepository:SlugExists", err)
		return false, err
	}
	return exists, nil
}
