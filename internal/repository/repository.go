package repository

import (
	"context"

	"github.com/shopnest/marketplace/internal/domain"
)

// ProductFilter defines the predicate and window for listing products. All
// set fields are AND-combined; none may widen a scope already applied by the
// caller.
type ProductFilter struct {
	ShopID     *int64
	CategoryID *int64
	MinPrice   *int64
	MaxPrice   *int64
	// Search adds a case-insensitive "title contains" condition.
	Search *string

	Limit  int
	Offset int
}

// ProductRepository defines the persistence port for products.
type ProductRepository interface {
	// Create inserts a new product into the store.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its identifier.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// GetByShopAndID retrieves a product by identifier scoped to a shop.
	GetByShopAndID(ctx context.Context, id, shopID int64) (*domain.Product, error)

	// FindByShopAndTitle retrieves a product in a shop whose title matches
	// the given title under case-insensitive comparison.
	FindByShopAndTitle(ctx context.Context, shopID int64, title string) (*domain.Product, error)

	// List returns products matching the filter along with the total count.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)

	// Update modifies an existing product in the store.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product from the store by its identifier.
	Delete(ctx context.Context, id int64) error
}

// ShopRepository defines the persistence port for shops.
type ShopRepository interface {
	// GetByID retrieves a shop by its identifier.
	GetByID(ctx context.Context, id int64) (*domain.Shop, error)

	// GetByVendorAndID retrieves a shop only if it is owned by the given
	// vendor. A miss does not distinguish "no such shop" from "owned by
	// someone else".
	GetByVendorAndID(ctx context.Context, vendorID, shopID int64) (*domain.Shop, error)
}

// CategoryRepository defines the persistence port for categories.
type CategoryRepository interface {
	// GetByID retrieves a category by its identifier.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// ListAll returns all categories.
	ListAll(ctx context.Context) ([]domain.Category, error)
}

// ReviewRepository defines the persistence port for product reviews.
type ReviewRepository interface {
	// Create inserts a new review into the store.
	Create(ctx context.Context, review *domain.Review) error

	// GetByCustomerAndProduct retrieves the review a customer posted for a
	// product, if any.
	GetByCustomerAndProduct(ctx context.Context, customerID, productID int64) (*domain.Review, error)

	// ListByProduct returns all reviews for a product, each joined with the
	// posting customer's email.
	ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error)
}

// OrderRepository defines the read-only port into order history.
type OrderRepository interface {
	// ListIDsByCustomer returns the identifiers of all orders placed by the
	// customer.
	ListIDsByCustomer(ctx context.Context, customerID int64) ([]int64, error)

	// ItemExists reports whether any of the given orders contains an item
	// for the product.
	ItemExists(ctx context.Context, orderIDs []int64, productID int64) (bool, error)
}
