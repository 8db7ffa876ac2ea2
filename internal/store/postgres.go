package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of *pgxpool.Pool used by PostgresKV.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

const upsertRecord = `INSERT INTO kv_records (key, value, updated_at)
	 VALUES ($1, $2::jsonb, NOW())
	 ON CONFLICT (key) DO UPDATE
	 SET value = EXCLUDED.value, updated_at = NOW()`

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// PostgresKV stores records in the kv_records table created by the
// migrations in internal/db.
type PostgresKV struct {
	db Querier
}

func NewPostgresKV(db Querier) *PostgresKV {
	return &PostgresKV{db: db}
}

func (p *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRow(ctx,
		`SELECT value FROM kv_records WHERE key = $1`,
		key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select kv_records %s: %w", key, err)
	}
	return value, nil
}

func (p *PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	if _, err := p.db.Exec(ctx, upsertRecord, key, string(value)); err != nil {
		return fmt.Errorf("upsert kv_records %s: %w", key, err)
	}
	return nil
}

// SetMulti upserts every entry in one transaction, in key order.
func (p *PostgresKV) SetMulti(ctx context.Context, entries map[string][]byte) error {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after Commit

	for _, k := range keys {
		if _, err := tx.Exec(ctx, upsertRecord, k, string(entries[k])); err != nil {
			return fmt.Errorf("upsert kv_records %s: %w", k, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (p *PostgresKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := p.db.Query(ctx,
		`SELECT key FROM kv_records WHERE key LIKE $1 ORDER BY key`,
		likeEscaper.Replace(prefix)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("list kv_records: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
