package postgres

import (
	"context"
	"fmt"

	"github.com/vendora/seller-service/internal/domain"
	"github.com/vendora/seller-service/pkg/database"
)

// OrderRepository implements domain.OrderRepository using PostgreSQL.
type OrderRepository struct {
	db database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(db database.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

// CountByFulfiller returns the number of orders fulfilled by the scope's
// owner.
func (r *OrderRepository) CountByFulfiller(ctx context.Context, scope domain.OwnerScope) (count int, err error) {
	var (
		query string
		args  []any
	)

	if scope.IsPlatform() {
		query = `SELECT count(*) FROM orders WHERE seller_is = 'platform'`
	} else {
		query = `SELECT count(*) FROM orders WHERE seller_is = 'seller' AND seller_id = $1`
		args = append(args, scope.SellerID)
	}

	ctx, end := database.TraceQuery(ctx, "CountOrdersByFulfiller", query)
	defer func() { end(err) }()

	if err = r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}

	return count, nil
}
