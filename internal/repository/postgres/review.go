package postgres

import (
	"context"
	"fmt"

	"github.com/vendora/seller-service/internal/domain"
	"github.com/vendora/seller-service/pkg/database"
)

// ReviewRepository implements domain.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	db database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(db database.DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// ScopeSummary returns review aggregates over active products in scope.
// The inactive-review filter deliberately does not apply here; the seller
// info endpoint has always counted every review on active products.
func (r *ReviewRepository) ScopeSummary(ctx context.Context, scope domain.OwnerScope) (summary domain.RatingSummary, err error) {
	cond, args, _ := productScope(scope, "p", nil, 1)

	query := fmt.Sprintf(`
		SELECT coalesce(avg(r.rating), 0), count(r.id), count(DISTINCT r.order_id)
		FROM reviews r
		JOIN products p ON p.id = r.product_id
		WHERE p.active AND %s`, cond)

	ctx, end := database.TraceQuery(ctx, "ReviewScopeSummary", query)
	defer func() { end(err) }()

	err = r.db.QueryRow(ctx, query, args...).Scan(
		&summary.AverageRating,
		&summary.ReviewCount,
		&summary.OrderCount,
	)
	if err != nil {
		return domain.RatingSummary{}, fmt.Errorf("review summary: %w", err)
	}

	return summary, nil
}

// ProductTotalsBySeller returns active-review totals per active product for
// the given sellers. Products without reviews are included with zero totals.
func (r *ReviewRepository) ProductTotalsBySeller(ctx context.Context, sellerIDs []int64) (totals []domain.ProductRatingTotals, err error) {
	if len(sellerIDs) == 0 {
		return []domain.ProductRatingTotals{}, nil
	}

	query := `
		SELECT p.id, p.seller_id, coalesce(sum(r.rating), 0), count(r.id)
		FROM products p
		LEFT JOIN reviews r ON r.product_id = p.id AND r.active
		WHERE p.active AND p.added_by = 'seller' AND p.seller_id = ANY($1)
		GROUP BY p.id, p.seller_id`

	ctx, end := database.TraceQuery(ctx, "ProductRatingTotals", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, sellerIDs)
	if err != nil {
		return nil, fmt.Errorf("product rating totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.ProductRatingTotals
		if err = rows.Scan(&t.ProductID, &t.SellerID, &t.RatingSum, &t.RatingCount); err != nil {
			return nil, fmt.Errorf("scan rating totals row: %w", err)
		}
		totals = append(totals, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating totals rows: %w", err)
	}

	if totals == nil {
		totals = []domain.ProductRatingTotals{}
	}

	return totals, nil
}

// PlatformStats returns active-review aggregates over active platform
// products.
func (r *ReviewRepository) PlatformStats(ctx context.Context) (stats domain.PlatformReviewStats, err error) {
	query := `
		SELECT count(r.id), coalesce(avg(r.rating), 0), count(*) FILTER (WHERE r.rating >= 4)
		FROM reviews r
		JOIN products p ON p.id = r.product_id
		WHERE r.active AND p.active AND p.added_by = 'platform'`

	ctx, end := database.TraceQuery(ctx, "PlatformReviewStats", query)
	defer func() { end(err) }()

	err = r.db.QueryRow(ctx, query).Scan(
		&stats.ReviewCount,
		&stats.AverageRating,
		&stats.PositiveCount,
	)
	if err != nil {
		return domain.PlatformReviewStats{}, fmt.Errorf("platform review stats: %w", err)
	}

	return stats, nil
}
