package postgres

import (
	"context"
	"fmt"

	"github.com/vendora/seller-service/pkg/database"
)

// WishlistRepository implements domain.WishlistRepository using PostgreSQL.
type WishlistRepository struct {
	db database.DBTX
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(db database.DBTX) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// CountsForCustomer returns per-product wishlist counts for the customer.
func (r *WishlistRepository) CountsForCustomer(ctx context.Context, customerID int64, productIDs []int64) (counts map[int64]int, err error) {
	counts = make(map[int64]int, len(productIDs))
	if len(productIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT product_id, count(*)
		FROM wishlists
		WHERE customer_id = $1 AND product_id = ANY($2)
		GROUP BY product_id`

	ctx, end := database.TraceQuery(ctx, "WishlistCountsForCustomer", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, customerID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("wishlist counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID int64
		var n int
		if err = rows.Scan(&productID, &n); err != nil {
			return nil, fmt.Errorf("scan wishlist row: %w", err)
		}
		counts[productID] = n
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist rows: %w", err)
	}

	return counts, nil
}
