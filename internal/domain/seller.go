package domain

import (
	"context"
	"time"
)

// Seller list orderings accepted by the storefront.
const (
	SellerListTop = "top"
	SellerListNew = "new"
)

// Seller represents an approved marketplace vendor.
type Seller struct {
	ID                 int64     `json:"id"`
	FirstName          string    `json:"f_name"`
	LastName           string    `json:"l_name"`
	Phone              string    `json:"phone"`
	Image              string    `json:"image"`
	MinimumOrderAmount float64   `json:"minimum_order_amount,omitempty"`
	Approved           bool      `json:"-"`
	CreatedAt          time.Time `json:"created_at"`
	Shop               *Shop     `json:"shop,omitempty"`
}

// Shop is the storefront attached to a seller.
type Shop struct {
	ID       int64  `json:"id"`
	SellerID int64  `json:"seller_id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Banner   string `json:"banner"`
}

// SellerWithCounts pairs a seller with the order and active product counts
// shown on listing pages.
type SellerWithCounts struct {
	Seller
	OrdersCount  int `json:"orders_count"`
	ProductCount int `json:"product_count"`
}

// SellerListQuery describes a page of the approved seller listing.
// Offset is a row offset; the page-number translation happens at the
// HTTP layer.
type SellerListQuery struct {
	Type   string
	Limit  int
	Offset int
}

// SellerRepository defines read access to seller records.
type SellerRepository interface {
	// GetProfile loads a single seller with its shop.
	// Returns a not-found error when the seller does not exist.
	GetProfile(ctx context.Context, id int64) (*Seller, error)

	// ListApproved returns a page of approved sellers with counts and the
	// total number of matching sellers. Type "top" restricts to sellers
	// with at least one order and sorts by order count, "new" sorts by
	// creation time descending.
	ListApproved(ctx context.Context, q SellerListQuery) ([]*SellerWithCounts, int, error)

	// Random returns up to limit approved sellers in random order.
	Random(ctx context.Context, limit int) ([]*Seller, error)
}
