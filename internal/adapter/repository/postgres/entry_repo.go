package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopsetu/shopledger/internal/domain"
	"github.com/shopsetu/shopledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository on top of the entries
// table. The kind-specific fields live in a jsonb payload column; id, kind
// and created_at are promoted to real columns so listings can filter and
// order without touching the payload.
type EntryRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool, retrier *Retrier) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		retrier: retrier,
	}
}

// Create inserts a new entry.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	payload, err := json.Marshal(entry.Payload())
	if err != nil {
		return fmt.Errorf("encode entry payload: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO entries (id, kind, payload, created_at) VALUES ($1, $2, $3, $4)`,
		entry.ID, string(entry.Kind), payload, entry.CreatedAt,
	)
	return err
}

// GetByID retrieves a single entry.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, kind, payload, created_at FROM entries WHERE id = $1`,
		id,
	)
	return scanEntry(row)
}

// GetByIDForUpdate retrieves an entry inside tx with a row lock.
func (r *EntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Entry, error) {
	pgxTx := tx.(*Tx).PgxTx()
	row := pgxTx.QueryRow(ctx,
		`SELECT id, kind, payload, created_at FROM entries WHERE id = $1 FOR UPDATE`,
		id,
	)
	return scanEntry(row)
}

// List retrieves entries matching the filter in ascending (created_at, id)
// order.
func (r *EntryRepository) List(ctx context.Context, filter usecase.EntryFilter) ([]*domain.Entry, error) {
	query, args := buildListQuery(filter)

	var entries []*domain.Entry
	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		entries, err = scanEntries(rows)
		return err
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// ListAll retrieves the full entry history in replay order.
func (r *EntryRepository) ListAll(ctx context.Context) ([]*domain.Entry, error) {
	return r.List(ctx, usecase.EntryFilter{})
}

// Delete removes an entry inside tx.
func (r *EntryRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

func buildListQuery(filter usecase.EntryFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, kind, payload, created_at FROM entries`)

	var conds []string
	var args []any

	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		conds = append(conds, fmt.Sprintf("kind = $%d", len(args)))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}

	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}

	sb.WriteString(" ORDER BY created_at ASC, id ASC")

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}

	return sb.String(), args
}

func scanEntries(rows pgx.Rows) ([]*domain.Entry, error) {
	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		entry   domain.Entry
		kind    string
		payload []byte
	)

	err := row.Scan(&entry.ID, &kind, &payload, &entry.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := decodePayload(&entry, domain.Kind(kind), payload); err != nil {
		return nil, fmt.Errorf("decode entry %s: %w", entry.ID, err)
	}

	return &entry, nil
}

func decodePayload(entry *domain.Entry, kind domain.Kind, data []byte) error {
	var payload any
	switch kind {
	case domain.KindMobileBalanceAdjustment:
		payload = &domain.MobileBalanceAdjustment{}
	case domain.KindBankCashAepsAdjustment:
		payload = &domain.BankCashAepsAdjustment{}
	case domain.KindFundTransfer:
		payload = &domain.FundTransfer{}
	case domain.KindAepsTransaction:
		payload = &domain.AepsTransaction{}
	case domain.KindOnlineReceivedCashGiven:
		payload = &domain.OnlineReceivedCashGiven{}
	case domain.KindGenericServiceSale:
		payload = &domain.GenericServiceSale{}
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownEntryKind, kind)
	}

	if err := json.Unmarshal(data, payload); err != nil {
		return err
	}

	return entry.SetPayload(kind, payload)
}
