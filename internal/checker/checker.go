package checker

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/domaincheck/internal/domain"
	"github.com/hamed0406/domaincheck/internal/metrics"
	"github.com/hamed0406/domaincheck/internal/probe"
	"github.com/hamed0406/domaincheck/internal/repo"
	"github.com/hamed0406/domaincheck/internal/sink"
)

// Recorder is where verdicts go: the live/dead sink pair.
type Recorder interface {
	Record(k sink.Kind, text string) error
}

// LineWriter receives one human-readable status line per domain.
type LineWriter interface {
	WriteLine(text string) error
}

type DomainChecker struct {
	Logger  *zap.Logger
	Prober  probe.Checker
	Sinks   Recorder
	Console LineWriter
	Archive repo.VerdictStore // optional
	Verbose bool
}

func New(logger *zap.Logger, prober probe.Checker, sinks Recorder, console LineWriter, verbose bool) *DomainChecker {
	return &DomainChecker{
		Logger:  logger,
		Prober:  prober,
		Sinks:   sinks,
		Console: console,
		Verbose: verbose,
	}
}

// Check probes http:// then https:// for domain, stopping at the first 2xx,
// records the verdict in exactly one sink and prints one status line.
func (c *DomainChecker) Check(ctx context.Context, d string) domain.Verdict {
	start := time.Now()
	v, ok := c.firstLive(ctx, d)
	if !ok {
		v = domain.DeadVerdict(d, time.Since(start).Seconds()*1000)
	}
	c.emit(ctx, v)
	return v
}

func (c *DomainChecker) firstLive(ctx context.Context, d string) (domain.Verdict, bool) {
	for _, u := range domain.CandidateURLs(d) {
		out := c.Prober.Check(ctx, u)
		metrics.ProbesTotal.WithLabelValues(domain.Scheme(u), metrics.Outcome(out.Success)).Inc()
		c.Logger.Debug("checker_probe",
			zap.String("domain", d),
			zap.String("url", u),
			zap.Bool("success", out.Success),
			zap.Int("status", out.StatusCode),
			zap.Float64("latency_ms", out.LatencyMS),
			zap.String("message", out.Message),
		)
		if out.Success {
			return domain.LiveVerdict(d, u, out.StatusCode, out.LatencyMS), true
		}
	}
	return domain.Verdict{}, false
}

func (c *DomainChecker) emit(ctx context.Context, v domain.Verdict) {
	kind := sink.Dead
	if v.Live {
		kind = sink.Live
	}
	metrics.VerdictsTotal.WithLabelValues(kind.String()).Inc()

	if err := c.Sinks.Record(kind, v.SinkText()); err != nil {
		c.Logger.Warn("checker_sink_error",
			zap.String("sink", kind.String()),
			zap.String("domain", v.Domain),
			zap.Error(err),
		)
	}
	if c.Archive != nil {
		if err := c.Archive.Append(ctx, &v); err != nil {
			c.Logger.Warn("checker_archive_error",
				zap.String("domain", v.Domain),
				zap.Error(err),
			)
		}
	}
	if c.Console != nil {
		_ = c.Console.WriteLine(FormatVerdict(v, c.Verbose))
	}
}

// FormatVerdict renders the console line for a verdict.
func FormatVerdict(v domain.Verdict, verbose bool) string {
	if v.Live {
		if verbose {
			return fmt.Sprintf("✓ %s - Active (Status: %s)", v.URL, statusText(v.HTTPStatus))
		}
		return fmt.Sprintf("✓ %s - Active", v.URL)
	}
	if verbose {
		return fmt.Sprintf("✗ %s - Failed (Tried both HTTP & HTTPS)", v.Domain)
	}
	return fmt.Sprintf("✗ %s - Failed", v.Domain)
}

// statusText formats a code the way a status line does, e.g. "200 OK".
func statusText(code int) string {
	if txt := http.StatusText(code); txt != "" {
		return fmt.Sprintf("%d %s", code, txt)
	}
	return fmt.Sprintf("%d", code)
}
