package usecase

const (
	// DefaultPageSize is applied when a listing gives no limit.
	DefaultPageSize = 50

	// MaxPageSize caps a single listing page.
	MaxPageSize = 500

	// BalanceCacheKey is the cache slot for the serialized balance
	// snapshot. Bump the suffix when the serialization shape changes.
	BalanceCacheKey = "balances:v2"
)
