package customer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vendora/seller-service/pkg/httpclient"
)

// HeaderCustomerID is the header carrying the authenticated customer id,
// set by the API gateway.
const HeaderCustomerID = "X-Customer-ID"

// AnonymousID is the customer id used for unauthenticated requests.
const AnonymousID int64 = 0

// Resolver resolves the requesting customer from an incoming request.
// Resolution never fails the request; any problem yields AnonymousID.
type Resolver interface {
	Resolve(ctx context.Context, r *http.Request) int64
}

// HeaderResolver trusts the gateway-set customer header as-is. Used when no
// user service is configured (local development, tests).
type HeaderResolver struct{}

// Resolve parses the customer header, returning AnonymousID when it is
// absent or malformed.
func (HeaderResolver) Resolve(_ context.Context, r *http.Request) int64 {
	raw := r.Header.Get(HeaderCustomerID)
	if raw == "" {
		return AnonymousID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return AnonymousID
	}
	return id
}

// UserServiceResolver verifies the customer header against the user service
// through a circuit-broken HTTP client.
type UserServiceResolver struct {
	client  *httpclient.CircuitBreakerClient
	baseURL string
	logger  *slog.Logger
}

// NewUserServiceResolver creates a resolver backed by the user service at
// baseURL.
func NewUserServiceResolver(client *httpclient.CircuitBreakerClient, baseURL string, logger *slog.Logger) *UserServiceResolver {
	return &UserServiceResolver{
		client:  client,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Resolve verifies the header-claimed customer against the user service.
// Any failure, including an open circuit, degrades to AnonymousID so that
// listing endpoints keep serving.
func (s *UserServiceResolver) Resolve(ctx context.Context, r *http.Request) int64 {
	id := HeaderResolver{}.Resolve(ctx, r)
	if id == AnonymousID {
		return AnonymousID
	}

	url := fmt.Sprintf("%s/api/v1/users/%d", s.baseURL, id)

	resp, err := s.client.Get(ctx, url)
	if err != nil {
		s.logger.WarnContext(ctx, "customer verification failed, treating as anonymous",
			slog.Int64("customer_id", id),
			slog.String("error", err.Error()),
		)
		return AnonymousID
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return AnonymousID
	}

	return id
}
