package integration

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	adaptershttp "github.com/shopsetu/shopledger/internal/adapter/http"
	"github.com/shopsetu/shopledger/internal/adapter/http/handler"
	postgresrepo "github.com/shopsetu/shopledger/internal/adapter/repository/postgres"
	redisrepo "github.com/shopsetu/shopledger/internal/adapter/repository/redis"
	"github.com/shopsetu/shopledger/internal/domain"
	"github.com/shopsetu/shopledger/internal/usecase"
	"github.com/shopsetu/shopledger/tests/testutil"
)

// nopMetrics avoids registering Prometheus collectors per test.
type nopMetrics struct{}

func (nopMetrics) EntryCreated(domain.Kind)             {}
func (nopMetrics) EntryDeleted(domain.Kind)             {}
func (nopMetrics) RecomputeObserved(time.Duration, int) {}
func (nopMetrics) BalanceCacheHit()                     {}
func (nopMetrics) BalanceCacheMiss()                    {}

type stack struct {
	db        *testutil.TestDB
	router    adaptershttp.RouterConfig
	entryUC   *usecase.EntryUseCase
	balanceUC *usecase.BalanceUseCase
	entryRepo *postgresrepo.EntryRepository
}

// newStack wires the full service against a real postgres and an in-process
// redis.
func newStack(t *testing.T) (*stack, *redis.Client) {
	t.Helper()

	db := testutil.NewTestDB(t)
	t.Cleanup(db.Cleanup)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	retrier := postgresrepo.NewRetrier(zerolog.Nop())
	entryRepo := postgresrepo.NewEntryRepository(db.Pool, retrier)
	txManager := postgresrepo.NewTxManager(db.Pool)
	idGen := postgresrepo.NewULIDGenerator()
	cache := redisrepo.NewCache(redisClient)

	balanceUC := usecase.NewBalanceUseCase(entryRepo, cache, time.Minute, nopMetrics{}, zerolog.Nop())
	entryUC := usecase.NewEntryUseCase(entryRepo, txManager, idGen, balanceUC, nopMetrics{})
	reportUC := usecase.NewReportUseCase(entryRepo)

	cfg := adaptershttp.RouterConfig{
		EntryHandler:     handler.NewEntryHandler(entryUC),
		BalanceHandler:   handler.NewBalanceHandler(balanceUC),
		ReportHandler:    handler.NewReportHandler(reportUC),
		HealthHandler:    handler.NewHealthHandler(db.Pool, redisClient),
		IdempotencyStore: redisrepo.NewIdempotencyStore(redisClient),
		Logger:           zerolog.Nop(),
	}

	return &stack{
		db:        db,
		router:    cfg,
		entryUC:   entryUC,
		balanceUC: balanceUC,
		entryRepo: entryRepo,
	}, redisClient
}
