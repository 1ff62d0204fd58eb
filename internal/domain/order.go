package domain

import "context"

// Order delivery status recorded by the order service.
const DeliveryStatusDelivered = "delivered"

// OrderRepository defines read access to order counts.
type OrderRepository interface {
	// CountByFulfiller returns the number of orders fulfilled by the
	// given scope's owner.
	CountByFulfiller(ctx context.Context, scope OwnerScope) (int, error)
}
