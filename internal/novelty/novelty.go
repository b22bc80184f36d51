// Package novelty implements the known-fingerprint set spec.md sections
// 3 and 5 describe: a read-during-run, internally synchronized store
// that lets the scoring engine classify a signature as novel or already
// seen. Two implementations share the Store interface — a per-run
// in-memory map and a durable Postgres-backed variant grounded on the
// teacher's internal/db/postgres.go.
package novelty

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the boundary the pipeline calls against: Known returns a
// snapshot of every fingerprint seen so far, Record adds one.
type Store interface {
	Known(ctx context.Context) (map[string]struct{}, error)
	Record(ctx context.Context, fingerprint, signatureName string) error
}

// MemStore is a per-run, internally synchronized fingerprint set — the
// default store, matching spec.md section 5's "fingerprint cache, if
// present, is per-run and internally synchronized."
type MemStore struct {
	mu    sync.RWMutex
	known map[string]struct{}
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{known: make(map[string]struct{})}
}

// Known returns a defensive copy of the current fingerprint set.
func (m *MemStore) Known(ctx context.Context) (map[string]struct{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]struct{}, len(m.known))
	for fp := range m.known {
		out[fp] = struct{}{}
	}
	return out, nil
}

// Record adds fingerprint to the known set. signatureName is accepted
// for interface parity with PostgresStore but unused here.
func (m *MemStore) Record(ctx context.Context, fingerprint, signatureName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.known[fingerprint] = struct{}{}
	return nil
}

// PostgresStore persists the known-fingerprint set across runs, pool
// setup and upsert pattern carried over from the teacher's
// internal/db/postgres.go.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect opens a pool against dsn and ensures the fingerprint table
// exists.
func Connect(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	store := &PostgresStore{pool: pool}
	if err := store.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS known_fingerprints (
			fingerprint     TEXT PRIMARY KEY,
			signature_name  TEXT NOT NULL,
			first_seen_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`
	_, err := s.pool.Exec(ctx, ddl)
	return err
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Known loads every fingerprint ever recorded.
func (s *PostgresStore) Known(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.pool.Query(ctx, `SELECT fingerprint FROM known_fingerprints`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, err
		}
		out[fp] = struct{}{}
	}
	return out, rows.Err()
}

// Record upserts fingerprint into the durable set.
func (s *PostgresStore) Record(ctx context.Context, fingerprint, signatureName string) error {
	const upsert = `
		INSERT INTO known_fingerprints (fingerprint, signature_name)
		VALUES ($1, $2)
		ON CONFLICT (fingerprint) DO NOTHING;`
	_, err := s.pool.Exec(ctx, upsert, fingerprint, signatureName)
	return err
}
