package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/domaincheck/internal/domain"
)

func TestPostgresStore_Migrate_Append_Summary(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping Postgres integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := New(ctx, dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("New store: %v", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	before, err := store.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	// Unique names per run so reruns against the same volume stay readable.
	suffix := time.Now().UTC().UnixNano()
	live := domain.LiveVerdict(fmt.Sprintf("live-%d.example", suffix), fmt.Sprintf("https://live-%d.example", suffix), 200, 42)
	dead := domain.DeadVerdict(fmt.Sprintf("dead-%d.example", suffix), 10)
	if err := store.Append(ctx, &live); err != nil {
		t.Fatalf("Append live: %v", err)
	}
	if err := store.Append(ctx, &dead); err != nil {
		t.Fatalf("Append dead: %v", err)
	}

	after, err := store.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if after.Live != before.Live+1 || after.Dead != before.Dead+1 {
		t.Fatalf("unexpected summary change: before=%+v after=%+v", before, after)
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("want 2 recent verdicts, got %d", len(recent))
	}
}
