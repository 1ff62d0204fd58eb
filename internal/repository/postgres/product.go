package postgres

import (
	"context"
	"fmt"

	"github.com/vendora/seller-service/internal/domain"
	"github.com/vendora/seller-service/pkg/database"
)

// ProductRepository implements domain.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `p.id, p.name, p.image, p.unit_price, p.added_by, p.seller_id, p.category_id, p.featured, p.created_at,
	       (SELECT count(*) FROM reviews r WHERE r.product_id = p.id AND r.active) AS reviews_count`

// CountActive returns the number of active products in scope.
func (r *ProductRepository) CountActive(ctx context.Context, scope domain.OwnerScope) (count int, err error) {
	cond, args, _ := productScope(scope, "p", nil, 1)
	query := fmt.Sprintf(`SELECT count(*) FROM products p WHERE p.active AND %s`, cond)

	ctx, end := database.TraceQuery(ctx, "CountActiveProducts", query)
	defer func() { end(err) }()

	if err = r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}

// ListFeatured returns a page of featured active products in scope.
func (r *ProductRepository) ListFeatured(ctx context.Context, q domain.ProductListQuery) ([]*domain.ProductListing, int, error) {
	cond, args, argIndex := productScope(q.Scope, "p", nil, 1)

	query := fmt.Sprintf(`
		SELECT `+productColumns+`,
		       count(*) OVER() AS total_count
		FROM products p
		WHERE p.active AND p.featured AND %s
		ORDER BY p.created_at DESC, p.id
		LIMIT $%d OFFSET $%d`, cond, argIndex, argIndex+1)

	args = append(args, q.Limit, q.Offset)

	return r.listProducts(ctx, "ListFeaturedProducts", query, args)
}

// ListRecommended returns a page of active products in scope ranked by
// delivered-order count, then by summed tag visit counts.
func (r *ProductRepository) ListRecommended(ctx context.Context, q domain.ProductListQuery) ([]*domain.ProductListing, int, error) {
	cond, args, argIndex := productScope(q.Scope, "p", nil, 1)

	query := fmt.Sprintf(`
		SELECT `+productColumns+`,
		       (SELECT count(DISTINCT oi.order_id)
		        FROM order_items oi
		        JOIN orders o ON o.id = oi.order_id
		        WHERE oi.product_id = p.id AND o.delivery_status = 'delivered') AS delivered_count,
		       (SELECT coalesce(sum(t.visit_count), 0)
		        FROM product_tags pt
		        JOIN tags t ON t.id = pt.tag_id
		        WHERE pt.product_id = p.id) AS tag_visits,
		       count(*) OVER() AS total_count
		FROM products p
		WHERE p.active AND %s
		ORDER BY delivered_count DESC, tag_visits DESC, p.id
		LIMIT $%d OFFSET $%d`, cond, argIndex, argIndex+1)

	args = append(args, q.Limit, q.Offset)

	return r.listRanked(ctx, "ListRecommendedProducts", query, args)
}

// ListBestSelling returns a page of active products in scope ranked by
// delivered-order count alone.
func (r *ProductRepository) ListBestSelling(ctx context.Context, q domain.ProductListQuery) ([]*domain.ProductListing, int, error) {
	cond, args, argIndex := productScope(q.Scope, "p", nil, 1)

	query := fmt.Sprintf(`
		SELECT `+productColumns+`,
		       (SELECT count(DISTINCT oi.order_id)
		        FROM order_items oi
		        JOIN orders o ON o.id = oi.order_id
		        WHERE oi.product_id = p.id AND o.delivery_status = 'delivered') AS delivered_count,
		       0 AS tag_visits,
		       count(*) OVER() AS total_count
		FROM products p
		WHERE p.active AND %s
		ORDER BY delivered_count DESC, p.id
		LIMIT $%d OFFSET $%d`, cond, argIndex, argIndex+1)

	args = append(args, q.Limit, q.Offset)

	return r.listRanked(ctx, "ListBestSellingProducts", query, args)
}

// ListActive returns a page of active products in scope, newest first.
func (r *ProductRepository) ListActive(ctx context.Context, q domain.ProductListQuery) ([]*domain.ProductListing, int, error) {
	cond, args, argIndex := productScope(q.Scope, "p", nil, 1)

	query := fmt.Sprintf(`
		SELECT `+productColumns+`,
		       count(*) OVER() AS total_count
		FROM products p
		WHERE p.active AND %s
		ORDER BY p.created_at DESC, p.id
		LIMIT $%d OFFSET $%d`, cond, argIndex, argIndex+1)

	args = append(args, q.Limit, q.Offset)

	return r.listProducts(ctx, "ListActiveProducts", query, args)
}

func (r *ProductRepository) listProducts(ctx context.Context, operation, query string, args []any) (products []*domain.ProductListing, total int, err error) {
	ctx, end := database.TraceQuery(ctx, operation, query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.ProductListing

		if err = rows.Scan(
			&p.ID,
			&p.Name,
			&p.Image,
			&p.UnitPrice,
			&p.AddedBy,
			&p.SellerID,
			&p.CategoryID,
			&p.Featured,
			&p.CreatedAt,
			&p.ReviewsCount,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		p.Active = true

		products = append(products, &p)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []*domain.ProductListing{}
	}

	return products, total, nil
}

// listRanked scans listings whose queries carry the delivered_count and
// tag_visits ranking columns; the ranks themselves are not emitted.
func (r *ProductRepository) listRanked(ctx context.Context, operation, query string, args []any) (products []*domain.ProductListing, total int, err error) {
	ctx, end := database.TraceQuery(ctx, operation, query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list ranked products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.ProductListing
		var deliveredCount, tagVisits int

		if err = rows.Scan(
			&p.ID,
			&p.Name,
			&p.Image,
			&p.UnitPrice,
			&p.AddedBy,
			&p.SellerID,
			&p.CategoryID,
			&p.Featured,
			&p.CreatedAt,
			&p.ReviewsCount,
			&deliveredCount,
			&tagVisits,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		p.Active = true

		products = append(products, &p)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []*domain.ProductListing{}
	}

	return products, total, nil
}
