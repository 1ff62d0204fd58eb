package postgres

import (
	"fmt"

	"github.com/vendora/seller-service/internal/domain"
)

// productScope renders the WHERE fragment selecting products owned by the
// given scope. The returned argIndex accounts for any placeholder consumed.
func productScope(scope domain.OwnerScope, alias string, args []any, argIndex int) (string, []any, int) {
	if scope.IsPlatform() {
		return fmt.Sprintf("%s.added_by = 'platform'", alias), args, argIndex
	}
	cond := fmt.Sprintf("%s.added_by = 'seller' AND %s.seller_id = $%d", alias, alias, argIndex)
	return cond, append(args, scope.SellerID), argIndex + 1
}
