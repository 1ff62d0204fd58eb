package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/vendora/seller-service/internal/domain"
	"github.com/vendora/seller-service/pkg/database"
)

// SettingsRepository implements domain.SettingsRepository using PostgreSQL.
type SettingsRepository struct {
	db database.DBTX
}

// NewSettingsRepository creates a new PostgreSQL-backed settings repository.
func NewSettingsRepository(db database.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Snapshot loads the business settings this service depends on. Missing
// rows are treated as disabled.
func (r *SettingsRepository) Snapshot(ctx context.Context) (snap domain.SettingsSnapshot, err error) {
	query := `SELECT key, value FROM business_settings WHERE key = ANY($1)`

	ctx, end := database.TraceQuery(ctx, "SettingsSnapshot", query)
	defer func() { end(err) }()

	keys := []string{
		domain.SettingMinimumOrderAmountStatus,
		domain.SettingMinimumOrderAmountBySeller,
	}

	rows, err := r.db.Query(ctx, query, keys)
	if err != nil {
		return domain.SettingsSnapshot{}, fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err = rows.Scan(&key, &value); err != nil {
			return domain.SettingsSnapshot{}, fmt.Errorf("scan setting row: %w", err)
		}

		switch key {
		case domain.SettingMinimumOrderAmountStatus:
			snap.MinimumOrderAmountEnabled = settingEnabled(value)
		case domain.SettingMinimumOrderAmountBySeller:
			snap.SellerMinimumOrderEnabled = settingEnabled(value)
		}
	}

	if err = rows.Err(); err != nil {
		return domain.SettingsSnapshot{}, fmt.Errorf("iterate setting rows: %w", err)
	}

	return snap, nil
}

// settingEnabled interprets the stringly-typed settings table. The admin
// panel historically wrote both "1" and "true".
func settingEnabled(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "on":
		return true
	default:
		return false
	}
}
