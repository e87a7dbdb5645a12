package notify

import (
	"context"
	"fmt"
)

type Notifier interface {
	Send(ctx context.Context, title, text string) error
}

// RunSummary is the end-of-run tally sent to notifiers.
type RunSummary struct {
	Source   string
	Domains  int
	Live     int
	Dead     int
	Faults   int
	LiveFile string
	DeadFile string
}

func (s RunSummary) Title() string {
	if s.Faults > 0 {
		return "🟠 Domain check completed with faults"
	}
	return "🟢 Domain check completed"
}

func (s RunSummary) Text() string {
	return fmt.Sprintf(
		"Source: %s\nDomains: %d\nLive: %d (%s)\nDead: %d (%s)\nFaults: %d",
		s.Source, s.Domains, s.Live, s.LiveFile, s.Dead, s.DeadFile, s.Faults,
	)
}

// SendSummary delivers the summary through n.
func SendSummary(ctx context.Context, n Notifier, s RunSummary) error {
	return n.Send(ctx, s.Title(), s.Text())
}
