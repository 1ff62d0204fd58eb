package domain

import "context"

// WishlistRepository defines read access to customer wishlists.
type WishlistRepository interface {
	// CountsForCustomer returns, per product id, how many of the given
	// products the customer has wishlisted. Products absent from the map
	// are not wishlisted.
	CountsForCustomer(ctx context.Context, customerID int64, productIDs []int64) (map[int64]int, error)
}
