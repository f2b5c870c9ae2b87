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

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a new review and populates its generated identifier.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (customer_id, product_id, content, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		review.CustomerID,
		review.ProductID,
		review.Content,
		review.Rating,
		review.CreatedAt,
		review.UpdatedAt,
	).Scan(&review.ID)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// GetByCustomerAndProduct retrieves the review a customer posted for a
// product, if any.
func (r *ReviewRepository) GetByCustomerAndProduct(ctx context.Context, customerID, productID int64) (*domain.Review, error) {
	query := `
		SELECT id, customer_id, product_id, content, rating, created_at, updated_at
		FROM reviews
		WHERE customer_id = $1 AND product_id = $2`

	var rv domain.Review

	err := r.pool.QueryRow(ctx, query, customerID, productID).Scan(
		&rv.ID,
		&rv.CustomerID,
		&rv.ProductID,
		&rv.Content,
		&rv.Rating,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}

	return &rv, nil
}

// ListByProduct returns all reviews for a product, each joined with the
// posting customer's email.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	query := `
		SELECT r.id, r.customer_id, r.product_id, r.content, r.rating, c.email, r.created_at, r.updated_at
		FROM reviews r
		JOIN customers c ON c.id = r.customer_id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review

	for rows.Next() {
		var rv domain.Review

		if err := rows.Scan(
			&rv.ID,
			&rv.CustomerID,
			&rv.ProductID,
			&rv.Content,
			&rv.Rating,
			&rv.AuthorEmail,
			&rv.CreatedAt,
			&rv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}

		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, nil
}
