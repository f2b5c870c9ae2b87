package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopnest/marketplace/internal/domain"
	"github.com/shopnest/marketplace/internal/event"
	"github.com/shopnest/marketplace/internal/repository"
	apperrors "github.com/shopnest/marketplace/pkg/errors"
	"github.com/shopnest/marketplace/pkg/validator"
)

// CreateReviewInput holds the JSON body of a review submission.
type CreateReviewInput struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
}

// ReviewService implements the business logic for posting product reviews.
type ReviewService struct {
	products repository.ProductRepository
	reviews  repository.ReviewRepository
	orders   repository.OrderRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	products repository.ProductRepository,
	reviews repository.ReviewRepository,
	orders repository.OrderRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		products: products,
		reviews:  reviews,
		orders:   orders,
		producer: producer,
		logger:   logger,
	}
}

// CreateReview posts a review on behalf of a customer. A customer may
// review a product once, and only after purchasing it.
func (s *ReviewService) CreateReview(ctx context.Context, customerID, productID int64, input CreateReviewInput) (*domain.Review, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("product")
		}
		return nil, apperrors.Internal("failed to fetch product", err)
	}

	if _, err := s.reviews.GetByCustomerAndProduct(ctx, customerID, productID); err == nil {
		return nil, apperrors.Conflict("you have already reviewed this product")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.Internal("failed to look up existing review", err)
	}

	if !verifyPurchase(ctx, s.orders, customerID, productID, s.logger) {
		return nil, apperrors.Forbidden("only verified purchasers may review this product")
	}

	now := time.Now().UTC()
	review := &domain.Review{
		CustomerID: customerID,
		ProductID:  productID,
		Content:    input.Content,
		Rating:     input.Rating,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if err := s.producer.PublishReviewCreated(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.created event",
			slog.Int64("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review created",
		slog.Int64("review_id", review.ID),
		slog.Int64("product_id", review.ProductID),
		slog.Int64("customer_id", review.CustomerID),
		slog.Int("rating", review.Rating),
	)

	return review, nil
}
