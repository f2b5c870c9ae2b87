package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shopnest/marketplace/internal/domain"
	"github.com/shopnest/marketplace/pkg/database"
	apperrors "github.com/shopnest/marketplace/pkg/errors"
)

// ShopRepository implements repository.ShopRepository using PostgreSQL.
type ShopRepository struct {
	pool database.DBTX
}

// NewShopRepository creates a new PostgreSQL-backed shop repository.
func NewShopRepository(pool database.DBTX) *ShopRepository {
	return &ShopRepository{pool: pool}
}

// GetByID retrieves a shop by its ID.
func (r *ShopRepository) GetByID(ctx context.Context, id int64) (*domain.Shop, error) {
	query := `
		SELECT id, name, vendor_id, created_at, updated_at
		FROM shops
		WHERE id = $1`

	return r.scanShop(ctx, query, id)
}

// GetByVendorAndID retrieves a shop only if the given vendor owns it.
func (r *ShopRepository) GetByVendorAndID(ctx context.Context, vendorID, shopID int64) (*domain.Shop, error) {
	query := `
		SELECT id, name, vendor_id, created_at, updated_at
		FROM shops
		WHERE vendor_id = $1 AND id = $2`

	return r.scanShop(ctx, query, vendorID, shopID)
}

func (r *ShopRepository) scanShop(ctx context.Context, query string, args ...any) (*domain.Shop, error) {
	var s domain.Shop

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&s.ID,
		&s.Name,
		&s.VendorID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan shop: %w", err)
	}

	return &s, nil
}
