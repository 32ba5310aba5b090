package usecase

import (
	"context"
	"time"

	"github.com/shopsetu/shopledger/internal/domain"
)

// EntryUseCase handles the entry write path: validation, persistence and
// keeping the balance projection in step. Invalid entries are rejected here,
// before they ever reach the store — the engine must never see a history it
// would refuse to fold.
type EntryUseCase struct {
	entryRepo EntryRepository
	txManager TransactionManager
	idGen     IDGenerator
	projector BalanceProjector
	metrics   MetricsRecorder
	now       func() time.Time
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(
	entryRepo EntryRepository,
	txManager TransactionManager,
	idGen IDGenerator,
	projector BalanceProjector,
	metrics MetricsRecorder,
) *EntryUseCase {
	return &EntryUseCase{
		entryRepo: entryRepo,
		txManager: txManager,
		idGen:     idGen,
		projector: projector,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Create validates and persists one new entry. ID and CreatedAt are always
// assigned server-side: client-supplied values are discarded, so IDs cannot
// collide and the replay order matches insertion order. Entries are
// immutable once stored.
func (uc *EntryUseCase) Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	entry.ID = uc.idGen.Generate()
	entry.CreatedAt = uc.now().UTC()

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	uc.metrics.EntryCreated(entry.Kind)
	uc.projector.ApplyEntry(ctx, entry)

	return entry, nil
}

// Get retrieves one entry.
func (uc *EntryUseCase) Get(ctx context.Context, id string) (*domain.Entry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// List lists entries matching the filter, with the page size clamped.
func (uc *EntryUseCase) List(ctx context.Context, filter EntryFilter) ([]*domain.Entry, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageSize
	}
	if filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.entryRepo.List(ctx, filter)
}

// Delete removes an entry. Balances stay consistent because they are always
// re-derived from the remaining history; the cached projection is simply
// dropped.
func (uc *EntryUseCase) Delete(ctx context.Context, id string) (*domain.Entry, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	entry, err := uc.entryRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Delete(ctx, tx, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.metrics.EntryDeleted(entry.Kind)
	uc.projector.Invalidate(ctx)

	return entry, nil
}
