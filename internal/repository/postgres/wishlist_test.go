package postgres

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/seller-service/internal/domain"
	"github.com/vendora/seller-service/pkg/database"
)

func TestWishlistRepository_CountsForCustomer(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewWishlistRepository(mock)

	mock.ExpectQuery(`SELECT product_id, count\(\*\) FROM wishlists`).
		WithArgs(int64(55), []int64{1, 2, 3}).
		WillReturnRows(
			pgxmock.NewRows([]string{"product_id", "count"}).
				AddRow(int64(1), 1),
		)

	counts, err := repo.CountsForCustomer(context.Background(), 55, []int64{1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, 1, counts[1])
	assert.Zero(t, counts[2])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_CountsForCustomer_NoProducts(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewWishlistRepository(mock)

	counts, err := repo.CountsForCustomer(context.Background(), 55, nil)
	require.NoError(t, err)
	assert.Empty(t, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_CountByFulfiller(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewOrderRepository(mock)

	mock.ExpectQuery(`SELECT count\(\*\) FROM orders WHERE seller_is = 'platform'`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.CountByFulfiller(context.Background(), domain.OwnerScope{Kind: domain.OwnerPlatform})
	require.NoError(t, err)
	assert.Equal(t, 12, count)

	mock.ExpectQuery(`SELECT count\(\*\) FROM orders WHERE seller_is = 'seller' AND seller_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(9))

	count, err = repo.CountByFulfiller(context.Background(), domain.ScopeForSeller(7))
	require.NoError(t, err)
	assert.Equal(t, 9, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
