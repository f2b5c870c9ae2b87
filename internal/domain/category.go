package domain

import (
	"time"
)

// Category classifies products. A product belongs to exactly one category at
// a time.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
