package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/seller-service/internal/domain"
	"github.com/vendora/seller-service/pkg/database"
	apperrors "github.com/vendora/seller-service/pkg/errors"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func setupSellerRepo(t *testing.T) (*SellerRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return NewSellerRepository(mock), mock
}

var sellerCols = []string{
	"id", "first_name", "last_name", "phone", "image", "minimum_order_amount", "approved", "created_at",
	"shop_id", "shop_name", "shop_image", "shop_banner",
}

var sellerListCols = append(append([]string{}, sellerCols...),
	"orders_count", "product_count", "total_count",
)

func ptr[T any](v T) *T { return &v }

var testCreatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// ---------------------------------------------------------------------------
// GetProfile
// ---------------------------------------------------------------------------

func TestSellerRepository_GetProfile_Success(t *testing.T) {
	repo, mock := setupSellerRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM sellers s").
		WithArgs(int64(7)).
		WillReturnRows(
			pgxmock.NewRows(sellerCols).
				AddRow(int64(7), "Amina", "Rahman", "+8801000000000", "sellers/7.png", 50.0, true, testCreatedAt,
					ptr(int64(70)), ptr("Amina Stores"), ptr("shops/70.png"), ptr("shops/70-banner.png")),
		)

	seller, err := repo.GetProfile(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), seller.ID)
	assert.Equal(t, "Amina", seller.FirstName)
	assert.Equal(t, 50.0, seller.MinimumOrderAmount)
	require.NotNil(t, seller.Shop)
	assert.Equal(t, int64(70), seller.Shop.ID)
	assert.Equal(t, int64(7), seller.Shop.SellerID)
	assert.Equal(t, "Amina Stores", seller.Shop.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSellerRepository_GetProfile_NoShop(t *testing.T) {
	repo, mock := setupSellerRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM sellers s").
		WithArgs(int64(3)).
		WillReturnRows(
			pgxmock.NewRows(sellerCols).
				AddRow(int64(3), "Tomas", "Novak", "", "", 0.0, true, testCreatedAt,
					(*int64)(nil), (*string)(nil), (*string)(nil), (*string)(nil)),
		)

	seller, err := repo.GetProfile(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, seller.Shop)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSellerRepository_GetProfile_NotFound(t *testing.T) {
	repo, mock := setupSellerRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM sellers s").
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	seller, err := repo.GetProfile(context.Background(), 404)
	assert.Nil(t, seller)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// ListApproved
// ---------------------------------------------------------------------------

func TestSellerRepository_ListApproved_ReturnsTotalFromWindow(t *testing.T) {
	repo, mock := setupSellerRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM sellers s").
		WithArgs(10, 0).
		WillReturnRows(
			pgxmock.NewRows(sellerListCols).
				AddRow(int64(7), "Amina", "Rahman", "", "", 0.0, true, testCreatedAt,
					ptr(int64(70)), ptr("Amina Stores"), ptr(""), ptr(""), 9, 2, 42).
				AddRow(int64(9), "Tomas", "Novak", "", "", 0.0, true, testCreatedAt,
					(*int64)(nil), (*string)(nil), (*string)(nil), (*string)(nil), 1, 1, 42),
		)

	sellers, total, err := repo.ListApproved(context.Background(), domain.SellerListQuery{Limit: 10, Offset: 0})
	require.NoError(t, err)

	assert.Equal(t, 42, total)
	require.Len(t, sellers, 2)
	assert.Equal(t, int64(7), sellers[0].ID)
	assert.Equal(t, 9, sellers[0].OrdersCount)
	assert.Equal(t, 2, sellers[0].ProductCount)
	assert.Nil(t, sellers[1].Shop)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSellerRepository_ListApproved_Empty(t *testing.T) {
	repo, mock := setupSellerRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM sellers s").
		WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows(sellerListCols))

	sellers, total, err := repo.ListApproved(context.Background(), domain.SellerListQuery{Limit: 10, Offset: 0})
	require.NoError(t, err)

	assert.Zero(t, total)
	assert.NotNil(t, sellers)
	assert.Empty(t, sellers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// Random
// ---------------------------------------------------------------------------

func TestSellerRepository_Random(t *testing.T) {
	repo, mock := setupSellerRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM sellers s.+ORDER BY random").
		WithArgs(10).
		WillReturnRows(
			pgxmock.NewRows(sellerCols).
				AddRow(int64(2), "Noor", "Ali", "", "", 0.0, true, testCreatedAt,
					(*int64)(nil), (*string)(nil), (*string)(nil), (*string)(nil)),
		)

	sellers, err := repo.Random(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	assert.Equal(t, int64(2), sellers[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
