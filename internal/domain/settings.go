package domain

import "context"

// Business setting keys read by this service.
const (
	SettingMinimumOrderAmountStatus   = "minimum_order_amount_status"
	SettingMinimumOrderAmountBySeller = "minimum_order_amount_by_seller"
)

// SettingsSnapshot is a point-in-time view of the business settings the
// aggregator needs. It is resolved once per request and passed down
// explicitly rather than looked up ambiently.
type SettingsSnapshot struct {
	MinimumOrderAmountEnabled bool
	SellerMinimumOrderEnabled bool
}

// SettingsRepository provides the current business settings snapshot.
type SettingsRepository interface {
	Snapshot(ctx context.Context) (SettingsSnapshot, error)
}
