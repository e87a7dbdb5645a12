package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/multierr"
)

// LineWriter appends newline-terminated records. Each WriteLine holds the
// lock across write and flush, so records never interleave and each one has
// reached the underlying writer before the next is admitted.
type LineWriter struct {
	mu sync.Mutex
	w  *bufio.Writer
	c  io.Closer
}

func NewLineWriter(w io.Writer) *LineWriter {
	lw := &LineWriter{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		lw.c = c
	}
	return lw
}

// Create truncates (or creates) the file at path.
func Create(path string) (*LineWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return NewLineWriter(f), nil
}

func (l *LineWriter) WriteLine(text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.w == nil {
		return os.ErrClosed
	}
	if _, err := l.w.WriteString(text); err != nil {
		return err
	}
	if err := l.w.WriteByte('\n'); err != nil {
		return err
	}
	return l.w.Flush()
}

func (l *LineWriter) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.w == nil {
		return nil
	}
	err := l.w.Flush()
	l.w = nil
	if l.c != nil {
		err = multierr.Append(err, l.c.Close())
	}
	return err
}

type Kind int

const (
	Live Kind = iota
	Dead
)

func (k Kind) String() string {
	switch k {
	case Live:
		return "live"
	case Dead:
		return "dead"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sinks is the live/dead pair. The two writers have separate locks.
type Sinks struct {
	live *LineWriter
	dead *LineWriter
}

func New(live, dead io.Writer) *Sinks {
	return &Sinks{live: NewLineWriter(live), dead: NewLineWriter(dead)}
}

// Open creates both files fresh, discarding any previous content. The two
// paths must name different files.
func Open(livePath, deadPath string) (*Sinks, error) {
	if samePath(livePath, deadPath) {
		return nil, fmt.Errorf("live and dead sinks share one file: %s", livePath)
	}
	live, err := Create(livePath)
	if err != nil {
		return nil, fmt.Errorf("create live sink: %w", err)
	}
	dead, err := Create(deadPath)
	if err != nil {
		_ = live.Close()
		return nil, fmt.Errorf("create dead sink: %w", err)
	}
	return &Sinks{live: live, dead: dead}, nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	if absA == absB {
		return true
	}
	// existing files reached through different names (symlinks, hard links)
	infoA, errA := os.Stat(absA)
	infoB, errB := os.Stat(absB)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}

func (s *Sinks) Record(k Kind, text string) error {
	switch k {
	case Live:
		return s.live.WriteLine(text)
	case Dead:
		return s.dead.WriteLine(text)
	default:
		return fmt.Errorf("unknown sink %s", k)
	}
}

func (s *Sinks) Close() error {
	return multierr.Combine(s.live.Close(), s.dead.Close())
}
