package service

import (
	"strings"

	"github.com/vendora/seller-service/internal/domain"
)

// ProductFormatter prepares product listings for emission. Implementations
// must not depend on aggregation state; they see one product at a time.
type ProductFormatter interface {
	Format(p *domain.ProductListing)
}

// MediaFormatter resolves relative image paths against the media base URL.
type MediaFormatter struct {
	baseURL string
}

// NewMediaFormatter creates a formatter rooted at baseURL.
func NewMediaFormatter(baseURL string) *MediaFormatter {
	return &MediaFormatter{baseURL: strings.TrimRight(baseURL, "/")}
}

// Format rewrites the product image to an absolute URL. Already-absolute
// URLs and empty images pass through untouched.
func (f *MediaFormatter) Format(p *domain.ProductListing) {
	if p.Image == "" || f.baseURL == "" {
		return
	}
	if strings.HasPrefix(p.Image, "http://") || strings.HasPrefix(p.Image, "https://") {
		return
	}
	p.Image = f.baseURL + "/" + strings.TrimLeft(p.Image, "/")
}

// NopFormatter leaves products untouched.
type NopFormatter struct{}

func (NopFormatter) Format(*domain.ProductListing) {}
