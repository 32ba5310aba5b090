package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopsetu/shopledger/internal/domain"
)

// ErrCacheMiss is returned by Cache implementations when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// EntryFilter narrows an entry listing. A zero Limit means no limit; zero
// From/To leave the range open on that side.
type EntryFilter struct {
	Kind   domain.Kind
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// EntryRepository defines data access for ledger entries. Implementations
// must return entries in ascending (created_at, id) order — the replay order
// the balance engine expects.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Entry, error)
	List(ctx context.Context, filter EntryFilter) ([]*domain.Entry, error)
	ListAll(ctx context.Context) ([]*domain.Entry, error)
	Delete(ctx context.Context, tx Transaction, id string) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique, lexicographically sortable IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines byte-value caching operations. Update is a
// read-modify-write that is atomic with respect to other Updates of the
// same key: fn receives the current value and returns its replacement. An
// absent key surfaces as ErrCacheMiss without fn being called.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Update(ctx context.Context, key string, ttl time.Duration, fn func(old []byte) ([]byte, error)) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// BalanceProjector keeps a derived balance projection in step with entry
// writes. Projection maintenance must never fail a write: implementations
// degrade to invalidation and let the next read recompute.
type BalanceProjector interface {
	ApplyEntry(ctx context.Context, entry *domain.Entry)
	Invalidate(ctx context.Context)
}

// MetricsRecorder records engine and write-path metrics.
type MetricsRecorder interface {
	EntryCreated(kind domain.Kind)
	EntryDeleted(kind domain.Kind)
	RecomputeObserved(duration time.Duration, entries int)
	BalanceCacheHit()
	BalanceCacheMiss()
}
