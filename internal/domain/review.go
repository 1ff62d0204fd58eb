package domain

import "context"

// Review represents a customer review of a product. Only active reviews
// participate in seller listing aggregates; the seller-info summary counts
// every review on active products, matching the storefront contract.
type Review struct {
	ID         int64 `json:"id"`
	ProductID  int64 `json:"product_id"`
	OrderID    int64 `json:"order_id"`
	CustomerID int64 `json:"customer_id"`
	Rating     int   `json:"rating"`
	Active     bool  `json:"-"`
}

// RatingSummary holds the review aggregates for one owner scope.
type RatingSummary struct {
	AverageRating float64
	ReviewCount   int
	OrderCount    int
}

// ProductRatingTotals holds the per-product rating sum and count used to
// build per-seller aggregates in memory.
type ProductRatingTotals struct {
	ProductID   int64
	SellerID    int64
	RatingSum   int
	RatingCount int
}

// PlatformReviewStats holds the active-review aggregates over the platform
// catalog used to build the synthetic in-house seller entry.
type PlatformReviewStats struct {
	ReviewCount   int
	AverageRating float64
	PositiveCount int
}

// ReviewRepository defines read access to review aggregates.
type ReviewRepository interface {
	// ScopeSummary returns avg rating, review count, and distinct reviewed
	// order count over reviews of active products in scope.
	ScopeSummary(ctx context.Context, scope OwnerScope) (RatingSummary, error)

	// ProductTotalsBySeller returns active-review totals grouped by product
	// for the given sellers' active products.
	ProductTotalsBySeller(ctx context.Context, sellerIDs []int64) ([]ProductRatingTotals, error)

	// PlatformStats returns active-review aggregates over active
	// platform-owned products. Positive means a rating of 4 or higher.
	PlatformStats(ctx context.Context) (PlatformReviewStats, error)
}
