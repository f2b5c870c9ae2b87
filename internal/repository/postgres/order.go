package postgres

import (
	"context"
	"fmt"

	"github.com/shopnest/marketplace/pkg/database"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// ListIDsByCustomer returns the identifiers of every order placed by a
// customer.
func (r *OrderRepository) ListIDsByCustomer(ctx context.Context, customerID int64) ([]int64, error) {
	query := `SELECT id FROM orders WHERE customer_id = $1`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list order ids: %w", err)
	}
	defer rows.Close()

	var ids []int64

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan order id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	if ids == nil {
		ids = []int64{}
	}

	return ids, nil
}

// ItemExists reports whether any of the given orders contains the product.
func (r *OrderRepository) ItemExists(ctx context.Context, orderIDs []int64, productID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM order_items WHERE order_id = ANY($1) AND product_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, orderIDs, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check order item: %w", err)
	}

	return exists, nil
}
