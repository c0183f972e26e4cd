package ports

import "context"

// Port: item master lookups needed by save-time checks. AssetAccount
// returns 0 with nil error for unknown items.
type ItemCatalog interface {
	AssetAccount(ctx context.Context, itemID int64) (int64, error)
}
