package domain

import (
	"context"
	"time"
)

// OwnerKind discriminates who owns a product or fulfills an order.
type OwnerKind string

const (
	OwnerPlatform OwnerKind = "platform"
	OwnerSeller   OwnerKind = "seller"
)

// OwnerScope identifies whose catalog a query runs against. The storefront
// API addresses the platform's own catalog with seller id 0; ScopeForSeller
// translates that sentinel once at the boundary so everything below works
// with an explicit scope.
type OwnerScope struct {
	Kind     OwnerKind
	SellerID int64
}

// ScopeForSeller maps a wire-level seller id to an owner scope.
func ScopeForSeller(id int64) OwnerScope {
	if id == 0 {
		return OwnerScope{Kind: OwnerPlatform}
	}
	return OwnerScope{Kind: OwnerSeller, SellerID: id}
}

// IsPlatform reports whether the scope targets the platform catalog.
func (s OwnerScope) IsPlatform() bool {
	return s.Kind == OwnerPlatform
}

// Product represents a catalog item. Products are created by the catalog
// service; this service only reads them.
type Product struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Image      string    `json:"image"`
	UnitPrice  float64   `json:"unit_price"`
	AddedBy    OwnerKind `json:"added_by"`
	SellerID   int64     `json:"seller_id"`
	CategoryID int64     `json:"category_id"`
	Active     bool      `json:"-"`
	Featured   bool      `json:"featured"`
	CreatedAt  time.Time `json:"created_at"`
}

// ProductListing is a product row as emitted by listing endpoints.
type ProductListing struct {
	Product
	ReviewsCount  int `json:"reviews_count"`
	WishlistCount int `json:"wish_list_count"`
}

// ProductListQuery describes a page of a scoped product listing.
type ProductListQuery struct {
	Scope  OwnerScope
	Limit  int
	Offset int
}

// ProductRepository defines read access to the product catalog.
type ProductRepository interface {
	// CountActive returns the number of active products in scope.
	CountActive(ctx context.Context, scope OwnerScope) (int, error)

	// ListFeatured returns a page of featured active products in scope
	// with review counts, plus the total number of matching products.
	ListFeatured(ctx context.Context, q ProductListQuery) ([]*ProductListing, int, error)

	// ListRecommended returns a page of active products in scope ranked
	// by delivered-order count, then by summed tag visit counts.
	ListRecommended(ctx context.Context, q ProductListQuery) ([]*ProductListing, int, error)

	// ListBestSelling returns a page of active products in scope ranked
	// by delivered-order count alone.
	ListBestSelling(ctx context.Context, q ProductListQuery) ([]*ProductListing, int, error)

	// ListActive returns a page of active products in scope, newest first.
	ListActive(ctx context.Context, q ProductListQuery) ([]*ProductListing, int, error)
}
