// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hamed0406/domaincheck/internal/config"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg := config.FromEnv()

	if cfg.LiveFile == cfg.DeadFile {
		fail("LIVE_FILE and DEAD_FILE point at the same file (" + cfg.LiveFile + ").")
	}
	for name, p := range map[string]string{"LIVE_FILE": cfg.LiveFile, "DEAD_FILE": cfg.DeadFile} {
		if err := writableDir(filepath.Dir(p)); err != nil {
			fail(name + " directory not writable: " + err.Error())
		}
		ok(name + "=" + p)
	}
	if err := writableDir(cfg.LogDir); err != nil {
		fail("LOG_DIR not writable: " + err.Error())
	}
	ok("LOG_DIR=" + cfg.LogDir)

	ok(fmt.Sprintf("MAX_CONCURRENT_CHECKS=%d HTTP_TIMEOUT_MS=%d", cfg.MaxConcurrent, cfg.RequestTimeout.Milliseconds()))
	if cfg.MaxConcurrent > 1000 {
		warn("MAX_CONCURRENT_CHECKS above 1000; check the open-file limit (ulimit -n).")
	}

	if cfg.StatusAddr == "" {
		warn("STATUS_ADDR empty; no /metrics or /api/summary during the run.")
	} else {
		ok("STATUS_ADDR=" + cfg.StatusAddr)
	}
	if cfg.DatabaseURL == "" {
		warn("DATABASE_URL empty; verdicts only go to the sink files.")
	} else {
		ok("DATABASE_URL present")
	}
	if cfg.SlackWebhook == "" {
		warn("SLACK_WEBHOOK_URL empty; no end-of-run notification.")
	} else {
		ok("SLACK_WEBHOOK_URL present")
	}

	ok("preflight passed")
}

func writableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".preflight-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
