package scheduler

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/hamed0406/domaincheck/internal/domain"
	"github.com/hamed0406/domaincheck/internal/input"
	"github.com/hamed0406/domaincheck/internal/metrics"
)

// DefaultLimit is the admission cap used when none is configured.
const DefaultLimit = 100

// DomainChecker runs the full check for one domain.
type DomainChecker interface {
	Check(ctx context.Context, domain string) domain.Verdict
}

// Scheduler must be built with NewScheduler; the admission cap is fixed
// there.
type Scheduler struct {
	Logger  *zap.Logger
	Checker DomainChecker

	limit int
	sem   *semaphore.Weighted
}

// Report tallies one run.
type Report struct {
	Domains int // tasks launched
	Live    int
	Dead    int
	Faults  int // tasks that ended without a verdict
}

func NewScheduler(logger *zap.Logger, checker DomainChecker, limit int) *Scheduler {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Scheduler{
		Logger:  logger,
		Checker: checker,
		limit:   limit,
		sem:     semaphore.NewWeighted(int64(limit)),
	}
}

// Limit is the number of checks allowed in flight at once.
func (s *Scheduler) Limit() int { return s.limit }

// Run launches one task per domain read from r and returns once every task
// has finished. A task holds an admission slot for the whole check. The
// returned error is a read error on r, if any; tasks launched before it still
// run to completion.
func (s *Scheduler) Run(ctx context.Context, r io.Reader) (Report, error) {
	var (
		rep        Report
		live, dead atomic.Int64
		handles    []<-chan error
	)

	sc := input.NewScanner(r)
	for sc.Scan() {
		d := sc.Text()
		done := make(chan error, 1)
		handles = append(handles, done)
		go func() {
			done <- s.runTask(ctx, d, &live, &dead)
		}()
	}
	readErr := sc.Err()
	if readErr != nil {
		s.Logger.Warn("scheduler_read_error",
			zap.Int("launched", len(handles)),
			zap.Error(readErr),
		)
	}

	rep.Domains = len(handles)
	for _, h := range handles {
		if err := <-h; err != nil {
			rep.Faults++
			metrics.TaskFaults.Inc()
			s.Logger.Error("scheduler_task_fault", zap.Error(err))
		}
	}
	rep.Live = int(live.Load())
	rep.Dead = int(dead.Load())

	s.Logger.Info("scheduler_run_done",
		zap.Int("domains", rep.Domains),
		zap.Int("live", rep.Live),
		zap.Int("dead", rep.Dead),
		zap.Int("faults", rep.Faults),
	)
	return rep, readErr
}

func (s *Scheduler) runTask(ctx context.Context, d string, live, dead *atomic.Int64) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("check %q panicked: %v\n%s", d, p, debug.Stack())
		}
	}()

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("check %q: acquire slot: %w", d, err)
	}
	metrics.InFlight.Inc()
	defer func() {
		metrics.InFlight.Dec()
		s.sem.Release(1)
	}()

	v := s.Checker.Check(ctx, d)
	if v.Live {
		live.Add(1)
	} else {
		dead.Add(1)
	}
	return nil
}
