package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/shopsetu/shopledger/internal/domain"
)

// BalanceUseCase serves the derived balance projection. The source of truth
// is always the entry history: a cache miss triggers a full recompute, and a
// new entry advances the cached map through the engine's incremental path.
// Any doubt about the cached value falls back to invalidate-and-recompute;
// incremental drift is never trusted over a replay.
//
// The cached value is a balanceSnapshot, not a bare map. LastEntryID lets
// the incremental path deduplicate entries that a recompute already folded
// in, and keeps snapshot writes monotonic when recomputes and incremental
// applies race.
type BalanceUseCase struct {
	entryRepo EntryRepository
	cache     Cache
	cacheTTL  time.Duration
	metrics   MetricsRecorder
	logger    zerolog.Logger
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(
	entryRepo EntryRepository,
	cache Cache,
	cacheTTL time.Duration,
	metrics MetricsRecorder,
	logger zerolog.Logger,
) *BalanceUseCase {
	return &BalanceUseCase{
		entryRepo: entryRepo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		metrics:   metrics,
		logger:    logger,
	}
}

// balanceSnapshot is the cached projection envelope. LastEntryID is the
// highest entry ID folded into Balances; IDs are ULIDs, so string order is
// creation order.
type balanceSnapshot struct {
	LastEntryID string            `json:"last_entry_id"`
	Balances    domain.BalanceMap `json:"balances"`
}

// Balances returns the balance map for the full entry history.
func (uc *BalanceUseCase) Balances(ctx context.Context) (domain.BalanceMap, error) {
	if snap, ok := uc.cachedSnapshot(ctx); ok {
		uc.metrics.BalanceCacheHit()
		return snap.Balances, nil
	}
	uc.metrics.BalanceCacheMiss()

	entries, err := uc.entryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	balances, err := domain.Recompute(entries)
	if err != nil {
		return nil, err
	}
	uc.metrics.RecomputeObserved(time.Since(start), len(entries))

	var lastID string
	for _, entry := range entries {
		if entry.ID > lastID {
			lastID = entry.ID
		}
	}
	uc.storeSnapshot(ctx, balanceSnapshot{LastEntryID: lastID, Balances: balances})
	return balances, nil
}

// AccountBalance resolves a label and returns that account's balance, zero
// when the account has no entries yet.
func (uc *BalanceUseCase) AccountBalance(ctx context.Context, label string) (domain.Account, decimal.Decimal, error) {
	account, err := domain.ResolveAccount(label)
	if err != nil {
		return "", decimal.Zero, err
	}

	balances, err := uc.Balances(ctx)
	if err != nil {
		return "", decimal.Zero, err
	}

	return account, balances.Get(account), nil
}

// ApplyEntry advances the cached projection by one already-persisted entry.
// The read-modify-write is atomic against concurrent applies, and an entry
// the snapshot has already folded in is skipped, not applied twice. No
// cached snapshot means nothing to do; any failure degrades to
// invalidation.
func (uc *BalanceUseCase) ApplyEntry(ctx context.Context, entry *domain.Entry) {
	err := uc.cache.Update(ctx, BalanceCacheKey, uc.cacheTTL, func(old []byte) ([]byte, error) {
		var snap balanceSnapshot
		if err := json.Unmarshal(old, &snap); err != nil {
			return nil, err
		}
		if snap.LastEntryID >= entry.ID {
			// A recompute that ran after this entry was persisted has
			// already folded it in.
			return old, nil
		}
		next, err := domain.ApplyIncremental(snap.Balances, entry)
		if err != nil {
			return nil, err
		}
		return json.Marshal(balanceSnapshot{LastEntryID: entry.ID, Balances: next})
	})
	if err == nil || errors.Is(err, ErrCacheMiss) {
		return
	}

	uc.logger.Warn().Err(err).Str("entry_id", entry.ID).
		Msg("incremental balance update failed, dropping cached projection")
	uc.Invalidate(ctx)
}

// Invalidate drops the cached projection.
func (uc *BalanceUseCase) Invalidate(ctx context.Context) {
	if err := uc.cache.Delete(ctx, BalanceCacheKey); err != nil {
		uc.logger.Warn().Err(err).Msg("failed to drop cached balance projection")
	}
}

func (uc *BalanceUseCase) cachedSnapshot(ctx context.Context) (balanceSnapshot, bool) {
	var snap balanceSnapshot

	data, err := uc.cache.Get(ctx, BalanceCacheKey)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			uc.logger.Warn().Err(err).Msg("balance cache read failed")
		}
		return snap, false
	}

	if err := json.Unmarshal(data, &snap); err != nil || snap.Balances == nil {
		uc.logger.Warn().Err(err).Msg("corrupt cached balance projection, dropping it")
		uc.Invalidate(ctx)
		return snap, false
	}

	return snap, true
}

// storeSnapshot writes a freshly recomputed snapshot, but never replaces a
// cached one that has folded in later entries: a slow recompute must not
// roll the projection back behind a concurrent incremental apply.
func (uc *BalanceUseCase) storeSnapshot(ctx context.Context, snap balanceSnapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		uc.logger.Warn().Err(err).Msg("failed to serialize balance projection")
		return
	}

	err = uc.cache.Update(ctx, BalanceCacheKey, uc.cacheTTL, func(old []byte) ([]byte, error) {
		var cur balanceSnapshot
		if err := json.Unmarshal(old, &cur); err == nil && cur.Balances != nil && cur.LastEntryID >= snap.LastEntryID {
			return old, nil
		}
		return data, nil
	})
	if errors.Is(err, ErrCacheMiss) {
		err = uc.cache.Set(ctx, BalanceCacheKey, data, uc.cacheTTL)
	}
	if err != nil {
		uc.logger.Warn().Err(err).Msg("failed to cache balance projection")
	}
}
