package notify

import (
	"context"
	"strings"
	"testing"
)

type memNotifier struct {
	title, text string
}

func (m *memNotifier) Send(ctx context.Context, title, text string) error {
	m.title, m.text = title, text
	return nil
}

func TestSendSummary(t *testing.T) {
	n := &memNotifier{}
	s := RunSummary{Source: "domains.txt", Domains: 3, Live: 2, Dead: 1, LiveFile: "live.txt", DeadFile: "dead.txt"}
	if err := SendSummary(context.Background(), n, s); err != nil {
		t.Fatal(err)
	}
	if n.title != "🟢 Domain check completed" {
		t.Fatalf("title: %q", n.title)
	}
	if !strings.Contains(n.text, "Live: 2 (live.txt)") || !strings.Contains(n.text, "Dead: 1 (dead.txt)") {
		t.Fatalf("text: %q", n.text)
	}

	s.Faults = 1
	if s.Title() == n.title {
		t.Fatalf("faulted run should have a different title")
	}
}
