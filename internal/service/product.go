package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopnest/marketplace/internal/domain"
	"github.com/shopnest/marketplace/internal/event"
	"github.com/shopnest/marketplace/internal/repository"
	"github.com/shopnest/marketplace/internal/storage"
	apperrors "github.com/shopnest/marketplace/pkg/errors"
	"github.com/shopnest/marketplace/pkg/pagination"
)

var (
	// idPattern matches shop and category references in submissions.
	idPattern = regexp.MustCompile(`^[0-9]+$`)
	// pricePattern matches a positive integer with no leading zero.
	pricePattern = regexp.MustCompile(`^[1-9][0-9]*$`)
)

// ProductService implements the business logic for product operations:
// query composition, submission validation, vendor ownership checks, and
// product detail assembly.
type ProductService struct {
	products   repository.ProductRepository
	shops      repository.ShopRepository
	categories repository.CategoryRepository
	reviews    repository.ReviewRepository
	orders     repository.OrderRepository
	storage    storage.Storage
	producer   *event.Producer
	logger     *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	products repository.ProductRepository,
	shops repository.ShopRepository,
	categories repository.CategoryRepository,
	reviews repository.ReviewRepository,
	orders repository.OrderRepository,
	store storage.Storage,
	producer *event.Producer,
	logger *slog.Logger,
) *ProductService {
	return &ProductService{
		products:   products,
		shops:      shops,
		categories: categories,
		reviews:    reviews,
		orders:     orders,
		storage:    store,
		producer:   producer,
		logger:     logger,
	}
}

// ListQuery holds the raw listing parameters as received from the client.
type ListQuery struct {
	// Page is the raw page value; non-numeric or below 1 defaults to 1.
	Page string
	// Filter is a JSON-encoded predicate fragment; malformed input
	// silently becomes an empty filter.
	Filter string
	// Search is a free-text title search; blank after trimming is absent.
	Search string
}

// filterFields is the client-controllable slice of the product predicate.
type filterFields struct {
	ShopID     *int64 `json:"shopId"`
	CategoryID *int64 `json:"categoryId"`
	MinPrice   *int64 `json:"minPrice"`
	MaxPrice   *int64 `json:"maxPrice"`
}

// decodeFilter parses the raw filter JSON. Any decode failure yields an
// empty filter; the parameter is optional and malformed input is not an
// error the client hears about.
func decodeFilter(raw string) filterFields {
	var f filterFields
	if raw == "" {
		return f
	}
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return filterFields{}
	}
	return f
}

// buildFilter composes the repository predicate: decoded filter fields
// first, then the mandatory scope constraint so a client filter can never
// override it, then the search condition.
func buildFilter(q ListQuery, scopeCategoryID *int64, window pagination.Window) repository.ProductFilter {
	f := decodeFilter(q.Filter)

	pf := repository.ProductFilter{
		ShopID:     f.ShopID,
		CategoryID: f.CategoryID,
		MinPrice:   f.MinPrice,
		MaxPrice:   f.MaxPrice,
		Limit:      window.PageSize,
		Offset:     window.Offset,
	}

	if scopeCategoryID != nil {
		pf.CategoryID = scopeCategoryID
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		pf.Search = &search
	}

	return pf
}

// ListProducts returns a page of products matching the query.
func (s *ProductService) ListProducts(ctx context.Context, q ListQuery) ([]domain.Product, pagination.Result, error) {
	window := pagination.WindowForPage(pagination.ParsePage(q.Page))

	products, total, err := s.products.List(ctx, buildFilter(q, nil, window))
	if err != nil {
		return nil, pagination.Result{}, apperrors.Internal("failed to fetch products", err)
	}

	return products, pagination.NewResult(window, total), nil
}

// ListProductsByCategory returns a page of products scoped to a category.
// The category must exist; otherwise the product query is never issued.
func (s *ProductService) ListProductsByCategory(ctx context.Context, categoryID int64, q ListQuery) ([]domain.Product, pagination.Result, error) {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, pagination.Result{}, apperrors.InvalidInput("category does not exist")
		}
		return nil, pagination.Result{}, apperrors.Internal("failed to fetch category", err)
	}

	window := pagination.WindowForPage(pagination.ParsePage(q.Page))

	products, total, err := s.products.List(ctx, buildFilter(q, &categoryID, window))
	if err != nil {
		return nil, pagination.Result{}, apperrors.Internal("failed to fetch products", err)
	}

	return products, pagination.NewResult(window, total), nil
}

// ProductSubmission holds the raw form fields of a create or edit request.
// All fields arrive as strings from the multipart form.
type ProductSubmission struct {
	Title      string
	Price      string
	ShopID     string
	CategoryID string
}

// parsedSubmission is a submission that passed validation.
type parsedSubmission struct {
	Title      string
	Price      int64
	ShopID     int64
	CategoryID int64
}

// validateSubmission checks the submission fields in a fixed order; the
// first failing check wins and later fields are not evaluated. imageRequired
// is false on the edit path when no new upload accompanies the form.
func validateSubmission(sub ProductSubmission, hasImage, imageRequired bool) (parsedSubmission, error) {
	if !idPattern.MatchString(sub.ShopID) {
		return parsedSubmission{}, apperrors.InvalidInput("invalid shop reference")
	}

	if !idPattern.MatchString(sub.CategoryID) {
		return parsedSubmission{}, apperrors.InvalidInput("category required")
	}

	title := strings.TrimSpace(sub.Title)
	if title == "" {
		return parsedSubmission{}, apperrors.InvalidInput("invalid title")
	}

	if !pricePattern.MatchString(sub.Price) {
		return parsedSubmission{}, apperrors.InvalidInput("invalid price")
	}

	if imageRequired && !hasImage {
		return parsedSubmission{}, apperrors.InvalidInput("invalid image")
	}

	shopID, err := strconv.ParseInt(sub.ShopID, 10, 64)
	if err != nil {
		return parsedSubmission{}, apperrors.InvalidInput("invalid shop reference")
	}

	categoryID, err := strconv.ParseInt(sub.CategoryID, 10, 64)
	if err != nil {
		return parsedSubmission{}, apperrors.InvalidInput("category required")
	}

	price, err := strconv.ParseInt(sub.Price, 10, 64)
	if err != nil {
		return parsedSubmission{}, apperrors.InvalidInput("invalid price")
	}

	return parsedSubmission{
		Title:      title,
		Price:      price,
		ShopID:     shopID,
		CategoryID: categoryID,
	}, nil
}

// guardShopOwnership confirms the vendor owns the shop. A miss is an
// access-denied condition that does not reveal whether the shop exists
// under another vendor.
func (s *ProductService) guardShopOwnership(ctx context.Context, vendorID, shopID int64) error {
	if _, err := s.shops.GetByVendorAndID(ctx, vendorID, shopID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Forbidden("vendor has no access to shop")
		}
		return apperrors.Internal("failed to verify shop ownership", err)
	}
	return nil
}

// CreateProduct validates the submission, confirms shop ownership, rejects
// case-insensitive title duplicates within the shop, stores the image, and
// persists the product.
func (s *ProductService) CreateProduct(ctx context.Context, vendorID int64, sub ProductSubmission, image *storage.UploadInput) (*domain.Product, error) {
	parsed, err := validateSubmission(sub, image != nil, true)
	if err != nil {
		return nil, err
	}

	if err := s.guardShopOwnership(ctx, vendorID, parsed.ShopID); err != nil {
		return nil, err
	}

	if _, err := s.products.FindByShopAndTitle(ctx, parsed.ShopID, parsed.Title); err == nil {
		return nil, apperrors.Conflict("product with this title already exists")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.Internal("failed to check for duplicate title", err)
	}

	upload, err := s.storage.Upload(ctx, image)
	if err != nil {
		return nil, apperrors.Internal("failed to store product image", err)
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Title:      parsed.Title,
		Price:      parsed.Price,
		Image:      upload.Key,
		ShopID:     parsed.ShopID,
		CategoryID: parsed.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.Int64("product_id", product.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "product created",
		slog.Int64("product_id", product.ID),
		slog.Int64("shop_id", product.ShopID),
	)

	return product, nil
}

// UpdateProduct validates the submission (a new image is optional), confirms
// shop ownership, and applies the changes. A replaced image file is removed
// best-effort after the new one is stored.
func (s *ProductService) UpdateProduct(ctx context.Context, vendorID, productID int64, sub ProductSubmission, image *storage.UploadInput) (*domain.Product, error) {
	parsed, err := validateSubmission(sub, image != nil, false)
	if err != nil {
		return nil, err
	}

	if err := s.guardShopOwnership(ctx, vendorID, parsed.ShopID); err != nil {
		return nil, err
	}

	product, err := s.products.GetByShopAndID(ctx, productID, parsed.ShopID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("product")
		}
		return nil, apperrors.Internal("failed to fetch product", err)
	}

	product.Title = parsed.Title
	product.Price = parsed.Price
	product.CategoryID = parsed.CategoryID

	if image != nil {
		upload, err := s.storage.Upload(ctx, image)
		if err != nil {
			return nil, apperrors.Internal("failed to store product image", err)
		}

		oldImage := product.Image
		product.Image = upload.Key

		if oldImage != "" {
			if err := s.storage.Delete(ctx, oldImage); err != nil {
				s.logger.WarnContext(ctx, "failed to remove replaced product image",
					slog.Int64("product_id", product.ID),
					slog.String("image", oldImage),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if err := s.producer.PublishProductUpdated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.Int64("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.Int64("product_id", product.ID),
		slog.Int64("shop_id", product.ShopID),
	)

	return product, nil
}

// DeleteProduct removes a product. The product is resolved first so a
// missing product short-circuits with not-found before the ownership guard
// is ever consulted.
func (s *ProductService) DeleteProduct(ctx context.Context, vendorID, productID int64) error {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("product")
		}
		return apperrors.Internal("failed to fetch product", err)
	}

	if err := s.guardShopOwnership(ctx, vendorID, product.ShopID); err != nil {
		return err
	}

	if err := s.products.Delete(ctx, productID); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if product.Image != "" {
		if err := s.storage.Delete(ctx, product.Image); err != nil {
			s.logger.WarnContext(ctx, "failed to remove deleted product image",
				slog.Int64("product_id", productID),
				slog.String("image", product.Image),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := s.producer.PublishProductDeleted(ctx, productID, product.ShopID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.deleted event",
			slog.Int64("product_id", productID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.Int64("product_id", productID),
		slog.Int64("shop_id", product.ShopID),
	)

	return nil
}

// GetProductDetail assembles the public view of a product: shop summary,
// reviews with author emails, and whether the requesting customer may post
// a new review. customerID is nil for anonymous requests.
func (s *ProductService) GetProductDetail(ctx context.Context, productID int64, customerID *int64) (*domain.ProductDetail, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("product")
		}
		return nil, apperrors.Internal("failed to fetch product", err)
	}

	shop, err := s.shops.GetByID(ctx, product.ShopID)
	if err != nil {
		return nil, apperrors.Internal("failed to fetch shop", err)
	}

	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, apperrors.Internal("failed to fetch reviews", err)
	}

	return &domain.ProductDetail{
		Product:       *product,
		Shop:          &domain.ShopSummary{Name: shop.Name},
		Reviews:       reviews,
		CanPostReview: s.canPostReview(ctx, customerID, productID),
	}, nil
}

// canPostReview decides review eligibility. An anonymous request is a
// guaranteed non-match, never a wildcard against the review store. An
// existing review wins without consulting purchase history.
func (s *ProductService) canPostReview(ctx context.Context, customerID *int64, productID int64) bool {
	if customerID == nil {
		return false
	}

	_, err := s.reviews.GetByCustomerAndProduct(ctx, *customerID, productID)
	if err == nil {
		return false
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.ErrorContext(ctx, "failed to look up existing review",
			slog.Int64("product_id", productID),
			slog.String("error", err.Error()),
		)
		return false
	}

	return verifyPurchase(ctx, s.orders, *customerID, productID, s.logger)
}

// verifyPurchase reports whether the customer has an order containing the
// product. Every failure path yields false; a verification error must never
// grant review eligibility.
func verifyPurchase(ctx context.Context, orders repository.OrderRepository, customerID, productID int64, logger *slog.Logger) bool {
	orderIDs, err := orders.ListIDsByCustomer(ctx, customerID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list customer orders",
			slog.Int64("customer_id", customerID),
			slog.String("error", err.Error()),
		)
		return false
	}

	if len(orderIDs) == 0 {
		return false
	}

	purchased, err := orders.ItemExists(ctx, orderIDs, productID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to check order items",
			slog.Int64("customer_id", customerID),
			slog.Int64("product_id", productID),
			slog.String("error", err.Error()),
		)
		return false
	}

	return purchased
}
