package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopsetu/shopledger/internal/domain"
	"github.com/shopsetu/shopledger/internal/usecase"
	"github.com/shopsetu/shopledger/tests/testutil"
)

func TestEntryRepositoryReplayOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	s, _ := newStack(t)
	s.db.TruncateAll(ctx)

	// Same timestamp: ULID order breaks the tie.
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	first := testutil.SaleEntry("recharge", 100)
	second := testutil.SaleEntry("xerox", 50)
	first.CreatedAt = at
	second.CreatedAt = at

	// Insert in reverse to prove ordering comes from the query.
	if err := s.entryRepo.Create(ctx, second); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := s.entryRepo.Create(ctx, first); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	entries, err := s.entryRepo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID > entries[1].ID {
		t.Fatalf("expected ascending id order, got %s before %s", entries[0].ID, entries[1].ID)
	}
}

func TestEntryRepositoryKindFilter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	s, _ := newStack(t)
	s.db.TruncateAll(ctx)

	for _, entry := range []*domain.Entry{
		testutil.SaleEntry("recharge", 100),
		testutil.AdjustmentEntry("cash", 500),
		testutil.SaleEntry("xerox", 50),
	} {
		if err := s.entryRepo.Create(ctx, entry); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	sales, err := s.entryRepo.List(ctx, usecase.EntryFilter{Kind: domain.KindGenericServiceSale})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(sales) != 2 {
		t.Fatalf("expected 2 sales, got %d", len(sales))
	}
	for _, entry := range sales {
		if entry.Kind != domain.KindGenericServiceSale {
			t.Fatalf("unexpected kind %q", entry.Kind)
		}
		if entry.Sale == nil {
			t.Fatalf("expected decoded sale payload")
		}
	}
}

func TestEntryRepositoryGetMissing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	s, _ := newStack(t)
	s.db.TruncateAll(ctx)

	_, err := s.entryRepo.GetByID(ctx, "01HZXW000000000000000000MM")
	if !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestBalanceProjectionDeduplicatesLateApply(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	s, _ := newStack(t)
	s.db.TruncateAll(ctx)

	// Persist straight through the repository: the projector has not seen
	// this entry yet.
	entry := testutil.AdjustmentEntry("cash", 100)
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// The recompute folds the entry in and caches the result.
	balances, err := s.balanceUC.Balances(ctx)
	if err != nil {
		t.Fatalf("balances failed: %v", err)
	}
	if balances.Get(domain.AccountCash).String() != "100" {
		t.Fatalf("cash = %s, want 100", balances.Get(domain.AccountCash))
	}

	// A late delivery of the same entry must not be counted again.
	s.balanceUC.ApplyEntry(ctx, entry)

	balances, err = s.balanceUC.Balances(ctx)
	if err != nil {
		t.Fatalf("balances failed: %v", err)
	}
	if balances.Get(domain.AccountCash).String() != "100" {
		t.Fatalf("cash = %s after replayed apply, want 100", balances.Get(domain.AccountCash))
	}
}

func TestBalanceProjectionAdvancesIncrementally(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	s, _ := newStack(t)
	s.db.TruncateAll(ctx)

	if _, err := s.entryUC.Create(ctx, testutil.AdjustmentEntry("cash", 750)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Prime the cache.
	balances, err := s.balanceUC.Balances(ctx)
	if err != nil {
		t.Fatalf("balances failed: %v", err)
	}
	if balances.Get(domain.AccountCash).String() != "750" {
		t.Fatalf("cash = %s, want 750", balances.Get(domain.AccountCash))
	}

	// Second write advances the cached projection through the projector.
	if _, err := s.entryUC.Create(ctx, testutil.FundTransferEntry(domain.SourceOmkar, 300, 0)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	balances, err = s.balanceUC.Balances(ctx)
	if err != nil {
		t.Fatalf("balances failed: %v", err)
	}
	if balances.Get(domain.AccountCash).String() != "1050" {
		t.Fatalf("cash = %s, want 1050", balances.Get(domain.AccountCash))
	}
	if balances.Get(domain.AccountCollectFromOmkar).String() != "-300" {
		t.Fatalf("collect_from_omkar = %s, want -300", balances.Get(domain.AccountCollectFromOmkar))
	}
}
