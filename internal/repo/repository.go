package repo

import (
	"context"

	"github.com/hamed0406/domaincheck/internal/domain"
)

// Summary is the live/dead tally of a store.
type Summary struct {
	Live int `json:"live"`
	Dead int `json:"dead"`
}

func (s Summary) Total() int { return s.Live + s.Dead }

// VerdictStore archives verdicts alongside the sink files.
type VerdictStore interface {
	Append(ctx context.Context, v *domain.Verdict) error
	Summary(ctx context.Context) (Summary, error)
	// Recent returns up to limit verdicts, newest first.
	Recent(ctx context.Context, limit int) ([]domain.Verdict, error)
}
