package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hamed0406/domaincheck/internal/domain"
	"github.com/hamed0406/domaincheck/internal/repo"
)

var _ repo.VerdictStore = (*Store)(nil)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS verdicts (
  id          BIGSERIAL PRIMARY KEY,
  domain      TEXT NOT NULL,
  live        BOOLEAN NOT NULL,
  url         TEXT NULL,
  host        TEXT NULL,
  http_status INTEGER NULL,
  latency_ms  DOUBLE PRECISION NOT NULL,
  checked_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_verdicts_checked_at ON verdicts (checked_at DESC);
`

type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Store{pool: pool, log: log}, nil
}

// Migrate creates the verdicts table if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) Append(ctx context.Context, v *domain.Verdict) error {
	var (
		urlPtr, hostPtr *string
		statusPtr       *int
	)
	if v.Live {
		urlPtr, hostPtr = &v.URL, &v.Host
	}
	if v.HTTPStatus != 0 {
		statusPtr = &v.HTTPStatus
	}
	checkedAt := v.CheckedAt
	if checkedAt.IsZero() {
		checkedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO verdicts
		   (domain, live, url, host, http_status, latency_ms, checked_at)
		 VALUES
		   ($1, $2, $3, $4, $5, $6, $7)`,
		v.Domain, v.Live, urlPtr, hostPtr, statusPtr, v.LatencyMS, checkedAt,
	)
	if err != nil {
		return fmt.Errorf("insert verdict: %w", err)
	}
	return nil
}

func (s *Store) Recent(ctx context.Context, limit int) ([]domain.Verdict, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		`SELECT domain, live, COALESCE(url, ''), COALESCE(host, ''),
		        COALESCE(http_status, 0), latency_ms, checked_at
		   FROM verdicts
		  ORDER BY checked_at DESC, id DESC
		  LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent verdicts: %w", err)
	}
	defer rows.Close()

	var out []domain.Verdict
	for rows.Next() {
		var v domain.Verdict
		if err := rows.Scan(&v.Domain, &v.Live, &v.URL, &v.Host, &v.HTTPStatus, &v.LatencyMS, &v.CheckedAt); err != nil {
			return nil, fmt.Errorf("scan verdict: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) Summary(ctx context.Context) (repo.Summary, error) {
	var sum repo.Summary
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE live),
		        COUNT(*) FILTER (WHERE NOT live)
		   FROM verdicts`).Scan(&sum.Live, &sum.Dead)
	if err != nil {
		return repo.Summary{}, fmt.Errorf("summary: %w", err)
	}
	return sum, nil
}
