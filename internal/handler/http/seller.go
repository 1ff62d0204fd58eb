package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vendora/seller-service/internal/customer"
	"github.com/vendora/seller-service/internal/service"
	"github.com/vendora/seller-service/pkg/httputil"
	"github.com/vendora/seller-service/pkg/pagination"
)

// SellerHandler handles HTTP requests for seller storefront endpoints.
type SellerHandler struct {
	service  *service.SellerService
	resolver customer.Resolver
	logger   *slog.Logger
}

// NewSellerHandler creates a new seller HTTP handler.
func NewSellerHandler(svc *service.SellerService, resolver customer.Resolver, logger *slog.Logger) *SellerHandler {
	return &SellerHandler{
		service:  svc,
		resolver: resolver,
		logger:   logger,
	}
}

// GetSellerInfo handles GET /api/v1/sellers/{sellerId}
// @Summary Seller profile with rating aggregates
// @Description Returns the seller with review stats. Seller id 0 addresses the platform's own catalog.
// @Tags sellers
// @Produce json
// @Param sellerId path int true "Seller id, 0 for in-house"
// @Success 200 {object} service.SellerInfo
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/sellers/{sellerId} [get]
func (h *SellerHandler) GetSellerInfo(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := h.sellerIDParam(w, r)
	if !ok {
		return
	}

	info, err := h.service.GetSellerInfo(r.Context(), sellerID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, info)
}

// ListSellers handles GET /api/v1/sellers
// @Summary Paginated seller listing
// @Description Returns approved sellers with rating aggregates, led by the synthetic in-house entry. The offset parameter is a page number.
// @Tags sellers
// @Produce json
// @Param type query string false "Ordering: top, new"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page number" default(1)
// @Success 200 {object} service.SellerListPage
// @Router /api/v1/sellers [get]
func (h *SellerHandler) ListSellers(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromRequest(r)

	page, err := h.service.ListSellers(r.Context(), service.ListSellersInput{
		Type:  r.URL.Query().Get("type"),
		Limit: p.Limit,
		Page:  p.Page,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, page)
}

// MoreSellers handles GET /api/v1/sellers/more
// @Summary Random seller sample
// @Description Returns up to ten approved sellers in random order.
// @Tags sellers
// @Produce json
// @Success 200 {array} domain.Seller
// @Router /api/v1/sellers/more [get]
func (h *SellerHandler) MoreSellers(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.service.MoreSellers(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, sellers)
}

// FeaturedProducts handles GET /api/v1/sellers/{sellerId}/featured-products
// @Summary Featured products of a seller
// @Description Returns featured active products in the seller's scope with per-customer wishlist counts.
// @Tags sellers
// @Produce json
// @Param sellerId path int true "Seller id, 0 for in-house"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page number" default(1)
// @Success 200 {object} service.ProductListPage
// @Router /api/v1/sellers/{sellerId}/featured-products [get]
func (h *SellerHandler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	input, ok := h.productPageInput(w, r)
	if !ok {
		return
	}

	page, err := h.service.FeaturedProducts(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, page)
}

// BestSellingProducts handles GET /api/v1/sellers/{sellerId}/best-selling-products
// @Summary Best selling products of a seller
// @Description Returns active products ranked by delivered-order count.
// @Tags sellers
// @Produce json
// @Param sellerId path int true "Seller id, 0 for in-house"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page number" default(1)
// @Success 200 {object} service.ProductListPage
// @Router /api/v1/sellers/{sellerId}/best-selling-products [get]
func (h *SellerHandler) BestSellingProducts(w http.ResponseWriter, r *http.Request) {
	input, ok := h.productPageInput(w, r)
	if !ok {
		return
	}

	page, err := h.service.BestSellingProducts(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, page)
}

// RecommendedProducts handles GET /api/v1/sellers/{sellerId}/recommended-products
// @Summary Recommended products of a seller
// @Description Returns active products ranked by delivered-order count, then tag visit totals.
// @Tags sellers
// @Produce json
// @Param sellerId path int true "Seller id, 0 for in-house"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page number" default(1)
// @Success 200 {object} service.ProductListPage
// @Router /api/v1/sellers/{sellerId}/recommended-products [get]
func (h *SellerHandler) RecommendedProducts(w http.ResponseWriter, r *http.Request) {
	input, ok := h.productPageInput(w, r)
	if !ok {
		return
	}

	page, err := h.service.RecommendedProducts(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, page)
}

// SellerProducts handles GET /api/v1/sellers/{sellerId}/products
// @Summary Products of a seller
// @Description Returns active products in the seller's scope, newest first.
// @Tags sellers
// @Produce json
// @Param sellerId path int true "Seller id, 0 for in-house"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page number" default(1)
// @Success 200 {object} service.ProductListPage
// @Router /api/v1/sellers/{sellerId}/products [get]
func (h *SellerHandler) SellerProducts(w http.ResponseWriter, r *http.Request) {
	input, ok := h.productPageInput(w, r)
	if !ok {
		return
	}

	page, err := h.service.SellerProducts(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, page)
}

func (h *SellerHandler) sellerIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "sellerId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "seller id must be a non-negative integer"},
		})
		return 0, false
	}
	return id, true
}

func (h *SellerHandler) productPageInput(w http.ResponseWriter, r *http.Request) (service.ProductPageInput, bool) {
	sellerID, ok := h.sellerIDParam(w, r)
	if !ok {
		return service.ProductPageInput{}, false
	}

	p := pagination.FromRequest(r)

	return service.ProductPageInput{
		SellerID:   sellerID,
		CustomerID: h.resolver.Resolve(r.Context(), r),
		Limit:      p.Limit,
		Page:       p.Page,
	}, true
}
