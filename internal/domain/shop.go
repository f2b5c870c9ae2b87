package domain

import (
	"time"
)

// Shop represents a storefront owned by exactly one vendor. A vendor may own
// several shops.
type Shop struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	VendorID  int64     `json:"vendorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
