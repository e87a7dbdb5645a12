package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hamed0406/domaincheck/internal/domain"
	"github.com/hamed0406/domaincheck/internal/repo"
)

type Store struct {
	mu       sync.RWMutex
	verdicts []domain.Verdict
	live     int
}

func New() *Store {
	return &Store{verdicts: make([]domain.Verdict, 0, 128)}
}

func (m *Store) Append(ctx context.Context, v *domain.Verdict) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *v
	if cp.CheckedAt.IsZero() {
		cp.CheckedAt = time.Now().UTC()
	}
	m.verdicts = append(m.verdicts, cp)
	if cp.Live {
		m.live++
	}
	return nil
}

func (m *Store) Summary(ctx context.Context) (repo.Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return repo.Summary{Live: m.live, Dead: len(m.verdicts) - m.live}, nil
}

func (m *Store) Recent(ctx context.Context, limit int) ([]domain.Verdict, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > len(m.verdicts) {
		limit = len(m.verdicts)
	}
	out := make([]domain.Verdict, 0, limit)
	for i := len(m.verdicts) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.verdicts[i])
	}
	return out, nil
}
