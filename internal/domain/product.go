package domain

import (
	"time"
)

// Product represents a product listed in a vendor's shop. Title is unique
// within a shop under case-insensitive comparison.
type Product struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Price      int64     `json:"price"`
	Image      string    `json:"image"`
	ShopID     int64     `json:"shopId"`
	CategoryID int64     `json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ShopSummary is the slice of shop data embedded in a product detail view.
type ShopSummary struct {
	Name string `json:"name"`
}

// ProductDetail is the enriched product view returned by the detail endpoint:
// the product's public fields plus its shop, its reviews with author
// identity, and whether the requesting customer may post a new review.
type ProductDetail struct {
	Product
	Shop          *ShopSummary `json:"shop,omitempty"`
	Reviews       []Review     `json:"reviews"`
	CanPostReview bool         `json:"canPostReview"`
}
