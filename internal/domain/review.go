package domain

import (
	"time"
)

// Review is a customer's review of a product. A customer posts at most one
// review per product. AuthorEmail is joined from the customer account when
// the review is read for a product detail view.
type Review struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customerId"`
	ProductID   int64     `json:"productId"`
	Content     string    `json:"content"`
	Rating      int       `json:"rating"`
	AuthorEmail string    `json:"authorEmail,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
