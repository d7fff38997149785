package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"marketplace-api/core/database"
	"marketplace-api/core/logger"
	"marketplace-api/core/params"
	"marketplace-api/modules/shop/entity"

	"github.com/google/uuid"
)

// ShopRepository handles shop table database operations
type ShopRepository struct {
	DB database.Database
}

func NewShopRepository(db database.Database) *ShopRepository {
	return &ShopRepository{DB: db}
}

// ShopRepositoryInterface defines the repository contract
type ShopRepositoryInterface interface {
	CreateShop(ctx context.Context, shop *entity.Shop) (*entity.Shop, error)
	GetShopByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error)
	GetShopBySlug(ctx context.Context, slug string) (*entity.Shop, error)
	GetShopsByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]entity.Shop, error)
	ListShops(ctx context.Context, p params.QueryParams) (*entity.PaginatedShopEntity, error)
	UpdateShop(ctx context.Context, shop *entity.Shop) error
	DeleteShop(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

const shopColumns = `id, owner_id, name, slug, description, created_at, updated_at`

func (r *ShopRepository) CreateShop(ctx context.Context, shop *entity.Shop) (*entity.Shop, error) {
	query := `
		INSERT INTO shops (owner_id, name, slug, description)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + shopColumns

	var created entity.Shop
	err := r.DB.GetContext(ctx, &created, query,
		shop.OwnerID, shop.Name, shop.Slug, shop.Description)
	if err != nil {
		logger.Error("ShopRepository:CreateShop", err)
		return nil, err
	}

	return &created, nil
}

func (r *ShopRepository) GetShopByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE id = $1`

	var shop entity.Shop
	err := r.DB.GetContext(ctx, &shop, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ShopRepository:GetShopByID", err)
		return nil, err
	}

	return &shop, nil
}

func (r *ShopRepository) GetShopBySlug(ctx context.Context, slug string) (*entity.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE slug = $1`

	var shop entity.Shop
	err := r.DB.GetContext(ctx, &shop, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ShopRepository:GetShopBySlug", err)
		return nil, err
	}

	return &shop, nil
}

func (r *ShopRepository) GetShopsByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]entity.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE owner_id = $1 ORDER BY created_at DESC`

	var shops []entity.Shop
	err := r.DB.SelectContext(ctx, &shops, query, ownerID)
	if err != nil {
		logger.Error("ShopRepository:GetShopsByOwnerID", err)
		return nil, err
	}

	return shops, nil
}

func (r *ShopRepository) ListShops(ctx context.Context, p params.QueryParams) (*entity.PaginatedShopEntity, error) {
	p = p.Normalize()
	offset := (p.PageNumber - 1) * p.PageSize

	baseQuery := `FROM shops`

	var whereClause string
	var args []interface{}
	conditions := []string{}
	argIndex := 1

	if p.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIndex))
		args = append(args, "%"+p.Search+"%")
		argIndex++
	}

	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) " + baseQuery + whereClause

	var totalItems int
	err := r.DB.GetContext(ctx, &totalItems, countQuery, args...)
	if err != nil {
		logger.Error("ShopRepository:ListShops - Count", err)
		return nil, err
	}

	dataQuery := `SELECT ` + shopColumns + ` ` + baseQuery + whereClause + `
		ORDER BY created_at DESC
		LIMIT $` + fmt.Sprintf("%d", argIndex) + ` OFFSET $` + fmt.Sprintf("%d", argIndex+1)

	args = append(args, p.PageSize, offset)

	var shops []entity.Shop
	err = r.DB.SelectContext(ctx, &shops, dataQuery, args...)
	if err != nil {
		logger.Error("ShopRepository:ListShops - Select", err)
		return nil, err
	}

	return &entity.PaginatedShopEntity{
		Items:      shops,
		TotalItems: totalItems,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (r *ShopRepository) UpdateShop(ctx context.Context, shop *entity.Shop) error {
	query := `
		UPDATE shops
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.DB.SQLx().ExecContext(ctx, query, shop.ID, shop.Name, shop.Description)
	if err != nil {
		logger.Error("ShopRepository:UpdateShop", err)
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("shop with id %s not found", shop.ID)
	}

	return nil
}

func (r *ShopRepository) DeleteShop(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM shops WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("ShopRepository:DeleteShop", err)
		return err
	}
	return nil
}

func (r *ShopRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM shops WHERE slug = $1)`
	err := r.DB.GetContext(ctx, &exists, query, slug)
	if err != nil {
		logger.Error("ShopRepository:SlugExists", err)
		return false, err
	}
	return exists, nil
}
