package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MaxLineBytes caps a single input line.
const MaxLineBytes = 1 << 20

// s3iface is the subset of the s3 client we use; tests swap in a fake.
type s3iface interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var newS3Client = func(ctx context.Context) (s3iface, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg), nil
}

// Open returns a reader for a plain path, a file:// URI or an s3://bucket/key URI.
func Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if !strings.Contains(uri, "://") {
		return openFile(uri)
	}
	u, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "file":
		return openFile(strings.TrimPrefix(uri, "file://"))
	case "s3":
		cl, err := newS3Client(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 client: %w", err)
		}
		resp, err := cl.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(u.Host),
			Key:    aws.String(strings.TrimPrefix(u.Path, "/")),
		})
		if err != nil {
			return nil, fmt.Errorf("s3 get %s: %w", uri, err)
		}
		return resp.Body, nil
	default:
		return nil, errors.New("unsupported scheme: " + u.Scheme)
	}
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Scanner yields domains: trimmed, non-blank, valid UTF-8 lines. Lines
// longer than MaxLineBytes are drained and skipped like undecodable ones.
type Scanner struct {
	r    *bufio.Reader
	buf  []byte
	text string
	err  error
	done bool
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReaderSize(r, 64*1024)}
}

func (s *Scanner) Scan() bool {
	for !s.done {
		b, ok := s.readLine()
		if !ok || !utf8.Valid(b) {
			continue
		}
		line := strings.TrimSpace(string(b))
		if line == "" {
			continue
		}
		s.text = line
		return true
	}
	return false
}

// readLine returns the next line and whether it is usable. A line cut short
// by a read error or exceeding MaxLineBytes is not.
func (s *Scanner) readLine() ([]byte, bool) {
	s.buf = s.buf[:0]
	tooLong := false
	for {
		chunk, err := s.r.ReadSlice('\n')
		if !tooLong {
			if len(s.buf)+len(chunk) > MaxLineBytes {
				tooLong = true
				s.buf = s.buf[:0]
			} else {
				s.buf = append(s.buf, chunk...)
			}
		}
		switch {
		case err == nil:
			return s.buf, !tooLong
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			s.done = true
			return s.buf, !tooLong
		default:
			s.done = true
			s.err = err
			return nil, false
		}
	}
}

func (s *Scanner) Text() string { return s.text }

// Err returns the first non-EOF read error.
func (s *Scanner) Err() error { return s.err }
