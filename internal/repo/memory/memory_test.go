package memory

import (
	"context"
	"testing"

	"github.com/hamed0406/domaincheck/internal/domain"
)

func TestMemoryStore_AppendAndSummary(t *testing.T) {
	ctx := context.Background()
	s := New()

	live := domain.LiveVerdict("example.org", "http://example.org", 200, 5)
	dead := domain.DeadVerdict("bad..domain", 7)
	for _, v := range []*domain.Verdict{&live, &dead, &dead} {
		if err := s.Append(ctx, v); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	sum, err := s.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Live != 1 || sum.Dead != 2 {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	all, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(all) != 3 || all[2].Host != "example.org" {
		t.Fatalf("unexpected list: %+v", all)
	}

	last, _ := s.Recent(ctx, 1)
	if len(last) != 1 || last[0].Domain != "bad..domain" {
		t.Fatalf("want newest first, got %+v", last)
	}
}

func TestMemoryStore_AppendCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	v := domain.DeadVerdict("a.example", 1)
	_ = s.Append(ctx, &v)
	v.Domain = "mutated"

	all, _ := s.Recent(ctx, 10)
	if all[0].Domain != "a.example" {
		t.Fatalf("store should keep its own copy, got %q", all[0].Domain)
	}
}
