package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/vendora/seller-service/internal/domain"
	apperrors "github.com/vendora/seller-service/pkg/errors"
)

// randomSellerLimit caps the random seller sample.
const randomSellerLimit = 10

// SellerService aggregates seller and product listing data for the
// storefront. All derivation (rating math, the synthetic in-house entry,
// minimum order gating) lives here; repositories only fetch.
type SellerService struct {
	sellers   domain.SellerRepository
	products  domain.ProductRepository
	reviews   domain.ReviewRepository
	orders    domain.OrderRepository
	wishlists domain.WishlistRepository
	settings  domain.SettingsRepository
	formatter ProductFormatter

	inHouseShopName string
	logger          *slog.Logger
}

// NewSellerService creates a new seller aggregation service.
func NewSellerService(
	sellers domain.SellerRepository,
	products domain.ProductRepository,
	reviews domain.ReviewRepository,
	orders domain.OrderRepository,
	wishlists domain.WishlistRepository,
	settings domain.SettingsRepository,
	formatter ProductFormatter,
	inHouseShopName string,
	logger *slog.Logger,
) *SellerService {
	return &SellerService{
		sellers:         sellers,
		products:        products,
		reviews:         reviews,
		orders:          orders,
		wishlists:       wishlists,
		settings:        settings,
		formatter:       formatter,
		inHouseShopName: inHouseShopName,
		logger:          logger,
	}
}

// --- Input/Output types ---

// ListSellersInput holds the parameters for the seller listing.
type ListSellersInput struct {
	Type  string
	Limit int
	Page  int
}

// ProductPageInput holds the parameters for scoped product listings.
type ProductPageInput struct {
	SellerID   int64
	CustomerID int64
	Limit      int
	Page       int
}

// SellerInfo is the seller detail payload. PositiveReview and
// RatingPercentage carry the same value; both keys have shipped since the
// first storefront release and clients read either one.
type SellerInfo struct {
	Seller             *domain.Seller `json:"seller"`
	AvgRating          float64        `json:"avg_rating"`
	PositiveReview     int            `json:"positive_review"`
	TotalReview        int            `json:"total_review"`
	TotalOrder         int            `json:"total_order"`
	TotalProduct       int            `json:"total_product"`
	MinimumOrderAmount float64        `json:"minimum_order_amount"`
	RatingPercentage   int            `json:"rating_percentage"`
}

// SellerListEntry is one row of the seller listing. PositiveReview is a raw
// percentage, emitted unrounded.
type SellerListEntry struct {
	domain.SellerWithCounts
	TotalRating    int     `json:"total_rating"`
	RatingCount    int     `json:"rating_count"`
	AverageRating  float64 `json:"average_rating"`
	PositiveReview float64 `json:"positive_review"`
}

// SellerListPage is the seller listing envelope. Offset echoes the
// page number the client sent.
type SellerListPage struct {
	TotalSize int                `json:"total_size"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
	Sellers   []*SellerListEntry `json:"sellers"`
}

// ProductListPage is the product listing envelope.
type ProductListPage struct {
	TotalSize int                      `json:"total_size"`
	Limit     int                      `json:"limit"`
	Offset    int                      `json:"offset"`
	Products  []*domain.ProductListing `json:"products"`
}

// --- Operations ---

// GetSellerInfo returns the seller detail payload. Seller id 0 addresses
// the platform's own catalog: the seller object is null and the stats run
// over platform-owned products. An unknown seller id degrades the same way
// rather than erroring; storefront pages render an empty profile.
func (s *SellerService) GetSellerInfo(ctx context.Context, sellerID int64) (*SellerInfo, error) {
	scope := domain.ScopeForSeller(sellerID)

	var seller *domain.Seller
	if !scope.IsPlatform() {
		var err error
		seller, err = s.sellers.GetProfile(ctx, sellerID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("load seller %d: %w", sellerID, err)
			}
			seller = nil
		}
	}

	summary, err := s.reviews.ScopeSummary(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("review summary: %w", err)
	}

	totalProduct, err := s.products.CountActive(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	snap := s.settingsSnapshot(ctx)

	var minOrderAmount float64
	if seller != nil && snap.MinimumOrderAmountEnabled && snap.SellerMinimumOrderEnabled {
		minOrderAmount = seller.MinimumOrderAmount
	}
	if seller != nil {
		// The raw column is only exposed through the gated top-level field.
		seller.MinimumOrderAmount = 0
	}

	pct := ratingPercentage(summary.AverageRating)

	return &SellerInfo{
		Seller:             seller,
		AvgRating:          summary.AverageRating,
		PositiveReview:     pct,
		TotalReview:        summary.ReviewCount,
		TotalOrder:         summary.OrderCount,
		TotalProduct:       totalProduct,
		MinimumOrderAmount: minOrderAmount,
		RatingPercentage:   pct,
	}, nil
}

// ListSellers returns a page of approved sellers with rating aggregates,
// always preceded by the synthetic in-house entry. The synthetic entry is
// never counted in TotalSize and appears on every page.
func (s *SellerService) ListSellers(ctx context.Context, input ListSellersInput) (*SellerListPage, error) {
	q := domain.SellerListQuery{
		Type:   input.Type,
		Limit:  input.Limit,
		Offset: pageOffset(input.Page, input.Limit),
	}

	rows, total, err := s.sellers.ListApproved(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}

	sellerIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		sellerIDs = append(sellerIDs, row.ID)
	}

	totals, err := s.reviews.ProductTotalsBySeller(ctx, sellerIDs)
	if err != nil {
		return nil, fmt.Errorf("rating totals: %w", err)
	}

	type sellerTotals struct {
		ratingSum   int
		ratingCount int
	}
	bySeller := make(map[int64]sellerTotals, len(sellerIDs))
	for _, t := range totals {
		agg := bySeller[t.SellerID]
		agg.ratingSum += t.RatingSum
		agg.ratingCount += t.RatingCount
		bySeller[t.SellerID] = agg
	}

	inHouse, err := s.inHouseEntry(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*SellerListEntry, 0, len(rows)+1)
	entries = append(entries, inHouse)

	for _, row := range rows {
		agg := bySeller[row.ID]

		divisor := agg.ratingCount
		if divisor < 1 {
			divisor = 1
		}

		// Listings never expose the raw minimum order column.
		row.MinimumOrderAmount = 0

		entries = append(entries, &SellerListEntry{
			SellerWithCounts: *row,
			TotalRating:      agg.ratingSum,
			RatingCount:      agg.ratingCount,
			AverageRating:    float64(agg.ratingSum) / float64(divisor),
		})
	}

	return &SellerListPage{
		TotalSize: total,
		Limit:     input.Limit,
		Offset:    input.Page,
		Sellers:   entries,
	}, nil
}

// inHouseEntry builds the synthetic seller representing the platform's own
// catalog.
func (s *SellerService) inHouseEntry(ctx context.Context) (*SellerListEntry, error) {
	platform := domain.OwnerScope{Kind: domain.OwnerPlatform}

	stats, err := s.reviews.PlatformStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("platform review stats: %w", err)
	}

	productCount, err := s.products.CountActive(ctx, platform)
	if err != nil {
		return nil, fmt.Errorf("count platform products: %w", err)
	}

	ordersCount, err := s.orders.CountByFulfiller(ctx, platform)
	if err != nil {
		return nil, fmt.Errorf("count platform orders: %w", err)
	}

	// Emitted as the raw quotient; clients have always received the
	// unrounded percentage here.
	var positive float64
	if stats.ReviewCount > 0 {
		positive = float64(stats.PositiveCount) * 100 / float64(stats.ReviewCount)
	}

	return &SellerListEntry{
		SellerWithCounts: domain.SellerWithCounts{
			Seller: domain.Seller{
				ID: 0,
				Shop: &domain.Shop{
					ID:   0,
					Name: s.inHouseShopName,
				},
			},
			OrdersCount:  ordersCount,
			ProductCount: productCount,
		},
		// total_rating has always carried the review count here, not the
		// sum of ratings. Storefront clients depend on it; do not "fix".
		TotalRating:    stats.ReviewCount,
		RatingCount:    stats.ReviewCount,
		AverageRating:  stats.AverageRating,
		PositiveReview: positive,
	}, nil
}

// MoreSellers returns up to ten approved sellers in random order.
func (s *SellerService) MoreSellers(ctx context.Context) ([]*domain.Seller, error) {
	sellers, err := s.sellers.Random(ctx, randomSellerLimit)
	if err != nil {
		return nil, fmt.Errorf("random sellers: %w", err)
	}

	for _, seller := range sellers {
		seller.MinimumOrderAmount = 0
	}

	return sellers, nil
}

// FeaturedProducts returns a page of featured products in the seller's
// scope, with wishlist counts for the requesting customer.
func (s *SellerService) FeaturedProducts(ctx context.Context, input ProductPageInput) (*ProductListPage, error) {
	products, total, err := s.products.ListFeatured(ctx, s.productQuery(input))
	if err != nil {
		return nil, fmt.Errorf("featured products: %w", err)
	}

	s.applyWishlistCounts(ctx, input.CustomerID, products)

	return s.productPage(input, products, total), nil
}

// RecommendedProducts returns a page of products in the seller's scope
// ranked by delivered-order count, then by tag visit totals.
func (s *SellerService) RecommendedProducts(ctx context.Context, input ProductPageInput) (*ProductListPage, error) {
	products, total, err := s.products.ListRecommended(ctx, s.productQuery(input))
	if err != nil {
		return nil, fmt.Errorf("recommended products: %w", err)
	}

	return s.productPage(input, products, total), nil
}

// BestSellingProducts returns a page of products in the seller's scope
// ranked by delivered-order count.
func (s *SellerService) BestSellingProducts(ctx context.Context, input ProductPageInput) (*ProductListPage, error) {
	products, total, err := s.products.ListBestSelling(ctx, s.productQuery(input))
	if err != nil {
		return nil, fmt.Errorf("best selling products: %w", err)
	}

	return s.productPage(input, products, total), nil
}

// SellerProducts returns a plain page of the seller's active products,
// newest first.
func (s *SellerService) SellerProducts(ctx context.Context, input ProductPageInput) (*ProductListPage, error) {
	products, total, err := s.products.ListActive(ctx, s.productQuery(input))
	if err != nil {
		return nil, fmt.Errorf("seller products: %w", err)
	}

	return s.productPage(input, products, total), nil
}

func (s *SellerService) productQuery(input ProductPageInput) domain.ProductListQuery {
	return domain.ProductListQuery{
		Scope:  domain.ScopeForSeller(input.SellerID),
		Limit:  input.Limit,
		Offset: pageOffset(input.Page, input.Limit),
	}
}

func (s *SellerService) productPage(input ProductPageInput, products []*domain.ProductListing, total int) *ProductListPage {
	for _, p := range products {
		s.formatter.Format(p)
	}

	return &ProductListPage{
		TotalSize: total,
		Limit:     input.Limit,
		Offset:    input.Page,
		Products:  products,
	}
}

// applyWishlistCounts fills per-product wishlist counts for the customer.
// Anonymous requests and lookup failures leave all counts at zero.
func (s *SellerService) applyWishlistCounts(ctx context.Context, customerID int64, products []*domain.ProductListing) {
	if customerID <= 0 || len(products) == 0 {
		return
	}

	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	counts, err := s.wishlists.CountsForCustomer(ctx, customerID, ids)
	if err != nil {
		s.logger.WarnContext(ctx, "wishlist count lookup failed",
			slog.Int64("customer_id", customerID),
			slog.String("error", err.Error()),
		)
		return
	}

	for _, p := range products {
		p.WishlistCount = counts[p.ID]
	}
}

// settingsSnapshot loads business settings, degrading to all-disabled when
// the settings store is unavailable.
func (s *SellerService) settingsSnapshot(ctx context.Context) domain.SettingsSnapshot {
	snap, err := s.settings.Snapshot(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "settings snapshot unavailable, treating flags as disabled",
			slog.String("error", err.Error()),
		)
		return domain.SettingsSnapshot{}
	}
	return snap
}

// ratingPercentage maps a 0..5 average onto a 0..100 percentage.
func ratingPercentage(avg float64) int {
	return int(math.Round(avg * 100 / 5))
}

func pageOffset(page, limit int) int {
	if page <= 1 {
		return 0
	}
	return (page - 1) * limit
}
