package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vendora/seller-service/internal/domain"
	"github.com/vendora/seller-service/pkg/database"
	apperrors "github.com/vendora/seller-service/pkg/errors"
)

// SellerRepository implements domain.SellerRepository using PostgreSQL.
type SellerRepository struct {
	db database.DBTX
}

// NewSellerRepository creates a new PostgreSQL-backed seller repository.
func NewSellerRepository(db database.DBTX) *SellerRepository {
	return &SellerRepository{db: db}
}

const sellerColumns = `s.id, s.first_name, s.last_name, s.phone, s.image, s.minimum_order_amount, s.approved, s.created_at,
	       sh.id, sh.name, sh.image, sh.banner`

// GetProfile loads a single seller with its shop.
func (r *SellerRepository) GetProfile(ctx context.Context, id int64) (seller *domain.Seller, err error) {
	query := `
		SELECT ` + sellerColumns + `
		FROM sellers s
		LEFT JOIN shops sh ON sh.seller_id = s.id
		WHERE s.id = $1`

	ctx, end := database.TraceQuery(ctx, "GetSellerProfile", query)
	defer func() { end(err) }()

	var s domain.Seller
	var shopID *int64
	var shopName, shopImage, shopBanner *string

	err = r.db.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.FirstName,
		&s.LastName,
		&s.Phone,
		&s.Image,
		&s.MinimumOrderAmount,
		&s.Approved,
		&s.CreatedAt,
		&shopID,
		&shopName,
		&shopImage,
		&shopBanner,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("seller", id)
		}
		return nil, fmt.Errorf("scan seller: %w", err)
	}

	if shopID != nil {
		s.Shop = &domain.Shop{
			ID:       *shopID,
			SellerID: s.ID,
			Name:     deref(shopName),
			Image:    deref(shopImage),
			Banner:   deref(shopBanner),
		}
	}

	return &s, nil
}

// ListApproved returns a page of approved sellers with order and product
// counts, plus the total number of approved sellers matching the filter.
func (r *SellerRepository) ListApproved(ctx context.Context, q domain.SellerListQuery) (sellers []*domain.SellerWithCounts, total int, err error) {
	where := "s.approved"
	orderBy := "s.id"

	switch q.Type {
	case domain.SellerListTop:
		where += " AND EXISTS (SELECT 1 FROM orders o WHERE o.seller_is = 'seller' AND o.seller_id = s.id)"
		orderBy = "orders_count DESC, s.id"
	case domain.SellerListNew:
		orderBy = "s.created_at DESC, s.id"
	}

	query := fmt.Sprintf(`
		SELECT `+sellerColumns+`,
		       (SELECT count(*) FROM orders o WHERE o.seller_is = 'seller' AND o.seller_id = s.id) AS orders_count,
		       (SELECT count(*) FROM products p WHERE p.added_by = 'seller' AND p.seller_id = s.id AND p.active) AS product_count,
		       count(*) OVER() AS total_count
		FROM sellers s
		LEFT JOIN shops sh ON sh.seller_id = s.id
		WHERE %s
		ORDER BY %s
		LIMIT $1 OFFSET $2`, where, orderBy)

	ctx, end := database.TraceQuery(ctx, "ListApprovedSellers", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, q.Limit, q.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list sellers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc domain.SellerWithCounts
		var shopID *int64
		var shopName, shopImage, shopBanner *string

		if err = rows.Scan(
			&sc.ID,
			&sc.FirstName,
			&sc.LastName,
			&sc.Phone,
			&sc.Image,
			&sc.MinimumOrderAmount,
			&sc.Approved,
			&sc.CreatedAt,
			&shopID,
			&shopName,
			&shopImage,
			&shopBanner,
			&sc.OrdersCount,
			&sc.ProductCount,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan seller row: %w", err)
		}

		if shopID != nil {
			sc.Shop = &domain.Shop{
				ID:       *shopID,
				SellerID: sc.ID,
				Name:     deref(shopName),
				Image:    deref(shopImage),
				Banner:   deref(shopBanner),
			}
		}

		sellers = append(sellers, &sc)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate seller rows: %w", err)
	}

	if sellers == nil {
		sellers = []*domain.SellerWithCounts{}
	}

	return sellers, total, nil
}

// Random returns up to limit approved sellers in random order.
func (r *SellerRepository) Random(ctx context.Context, limit int) (sellers []*domain.Seller, err error) {
	query := `
		SELECT ` + sellerColumns + `
		FROM sellers s
		LEFT JOIN shops sh ON sh.seller_id = s.id
		WHERE s.approved
		ORDER BY random()
		LIMIT $1`

	ctx, end := database.TraceQuery(ctx, "RandomSellers", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("random sellers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.Seller
		var shopID *int64
		var shopName, shopImage, shopBanner *string

		if err = rows.Scan(
			&s.ID,
			&s.FirstName,
			&s.LastName,
			&s.Phone,
			&s.Image,
			&s.MinimumOrderAmount,
			&s.Approved,
			&s.CreatedAt,
			&shopID,
			&shopName,
			&shopImage,
			&shopBanner,
		); err != nil {
			return nil, fmt.Errorf("scan seller row: %w", err)
		}

		if shopID != nil {
			s.Shop = &domain.Shop{
				ID:       *shopID,
				SellerID: s.ID,
				Name:     deref(shopName),
				Image:    deref(shopImage),
				Banner:   deref(shopBanner),
			}
		}

		sellers = append(sellers, &s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seller rows: %w", err)
	}

	if sellers == nil {
		sellers = []*domain.Seller{}
	}

	return sellers, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
