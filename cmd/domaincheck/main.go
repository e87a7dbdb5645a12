package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hamed0406/domaincheck/internal/checker"
	"github.com/hamed0406/domaincheck/internal/config"
	"github.com/hamed0406/domaincheck/internal/httpapi"
	"github.com/hamed0406/domaincheck/internal/input"
	"github.com/hamed0406/domaincheck/internal/logging"
	"github.com/hamed0406/domaincheck/internal/metrics"
	"github.com/hamed0406/domaincheck/internal/notify"
	"github.com/hamed0406/domaincheck/internal/probe"
	"github.com/hamed0406/domaincheck/internal/repo"
	"github.com/hamed0406/domaincheck/internal/repo/memory"
	"github.com/hamed0406/domaincheck/internal/repo/postgres"
	"github.com/hamed0406/domaincheck/internal/scheduler"
	"github.com/hamed0406/domaincheck/internal/sink"
)

func main() {
	var (
		file    string
		verbose bool
	)
	flag.StringVar(&file, "f", "", "input file containing domains, one per line (path, file:// or s3://)")
	flag.StringVar(&file, "file", "", "same as -f")
	flag.BoolVar(&verbose, "v", false, "verbose output")
	flag.BoolVar(&verbose, "verbose", false, "same as -v")
	flag.Parse()

	if file == "" {
		fmt.Fprintln(os.Stderr, "error: --file is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir, verbose)
	if err != nil {
		log.Fatal(err)
	}

	err = run(context.Background(), cfg, file, verbose, logger)
	_ = logger.Sync()
	if err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config, file string, verbose bool, logger *zap.Logger) (err error) {
	metrics.Init()

	src, err := input.Open(ctx, file)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer src.Close()

	sinks, err := sink.Open(cfg.LiveFile, cfg.DeadFile)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, sinks.Close()) }()

	archive, closeArchive, err := openArchive(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeArchive()

	console := sink.NewLineWriter(os.Stdout)
	chk := checker.New(logger, probe.NewHTTPChecker(cfg.RequestTimeout, cfg.MaxConcurrent), sinks, console, verbose)
	chk.Archive = archive
	sched := scheduler.NewScheduler(logger, chk, cfg.MaxConcurrent)

	logger.Info("run_start",
		zap.String("input", file),
		zap.Int("max_concurrent", cfg.MaxConcurrent),
		zap.Duration("timeout", cfg.RequestTimeout),
		zap.String("live_file", cfg.LiveFile),
		zap.String("dead_file", cfg.DeadFile),
	)
	_ = console.WriteLine("Checking domains...")

	statusCtx, stopStatus := context.WithCancel(ctx)
	defer stopStatus()

	var (
		g       errgroup.Group
		rep     scheduler.Report
		readErr error
	)
	if cfg.StatusAddr != "" {
		g.Go(func() error {
			if err := httpapi.NewServer(logger, archive).Serve(statusCtx, cfg.StatusAddr); err != nil {
				logger.Warn("status_server_error", zap.String("addr", cfg.StatusAddr), zap.Error(err))
			}
			return nil
		})
	}
	g.Go(func() error {
		defer stopStatus()
		rep, readErr = sched.Run(ctx, src)
		return nil
	})
	_ = g.Wait()

	_ = console.WriteLine("Domain check completed.")

	if slack := notify.NewSlack(cfg.SlackWebhook); slack != nil {
		sum := notify.RunSummary{
			Source:   file,
			Domains:  rep.Domains,
			Live:     rep.Live,
			Dead:     rep.Dead,
			Faults:   rep.Faults,
			LiveFile: cfg.LiveFile,
			DeadFile: cfg.DeadFile,
		}
		if err := notify.SendSummary(ctx, slack, sum); err != nil {
			logger.Warn("notify_error", zap.Error(err))
		}
	}

	if readErr != nil {
		return fmt.Errorf("read input: %w", readErr)
	}
	return nil
}

// openArchive picks the verdict archive: Postgres when configured, memory
// when only the status API needs one, otherwise none.
func openArchive(ctx context.Context, cfg config.Config, logger *zap.Logger) (repo.VerdictStore, func(), error) {
	if cfg.DatabaseURL != "" {
		store, err := postgres.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open archive: %w", err)
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	if cfg.StatusAddr != "" {
		return memory.New(), func() {}, nil
	}
	return nil, func() {}, nil
}
