package keyvalue

import "context"

// Well-known keys in a client's persisted space. They mirror the storage
// slots the storefront UI wrote before state moved behind this service.
const (
	KeyCart            = "cart_storage"
	KeyFavoriteIDs     = "fact_favorites"
	KeyFavoriteFacts   = "fact_favorites_data"
	KeyCheckoutSession = "saved_checkout"
	KeyProfile         = "user_profile"
)

// Store is a per-client persisted key/value space holding serialized records.
// Implementations must treat unreadable records as absent: the stored data
// predates any schema discipline, so a corrupt value is discarded rather than
// surfaced. Cross-client writes are last-write-wins; there is no merge.
type Store interface {
	// Get decodes the record under key into dest, reporting whether a
	// readable record existed.
	Get(ctx context.Context, clientID, key string, dest any) (bool, error)
	// Set serializes value and replaces whatever is under key.
	Set(ctx context.Context, clientID, key string, value any) error
	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, clientID string, keys ...string) error
}
