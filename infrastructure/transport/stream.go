package transport

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// errReadTimeout marks a read that gave up before its match arrived.
var errReadTimeout = errors.New("timeout")

// stream turns a blocking reader into chunks that can be awaited with a
// timeout, so SSH channels and telnet sockets share the same read loop.
type stream struct {
	w      io.Writer
	chunks chan []byte
	done   chan struct{}
	once   sync.Once
	err    error
	log    *logrus.Entry
	raw    bool
}

func newStream(r io.Reader, w io.Writer, log *logrus.Entry, raw bool) *stream {
	s := &stream{
		w:      w,
		chunks: make(chan []byte, 16),
		done:   make(chan struct{}),
		log:    log,
		raw:    raw,
	}
	go s.pump(r)
	return s
}

func (s *stream) pump(r io.Reader) {
	defer close(s.chunks)
	buffer := make([]byte, BufferSize)
	for {
		n, err := r.Read(buffer)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buffer[:n])
			select {
			case s.chunks <- chunk:
			case <-s.done:
				return
			}
		}
		if err != nil {
			s.err = err
			return
		}
	}
}

func (s *stream) send(line string) error {
	_, err := s.w.Write([]byte(line + "\n"))
	return err
}

// readUntil accumulates output until match accepts it or the timeout expires.
func (s *stream) readUntil(match func(string) bool, what string, timeout time.Duration) (string, error) {
	return s.readFrom("", match, what, timeout)
}

// readFrom is readUntil with output already received in an earlier read.
func (s *stream) readFrom(pending string, match func(string) bool, what string, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var output strings.Builder
	output.Grow(BufferSize)
	output.WriteString(pending)
	for {
		select {
		case chunk, ok := <-s.chunks:
			if !ok {
				if s.err == nil || s.err == io.EOF {
					return output.String(), fmt.Errorf("connection closed waiting for %s", what)
				}
				return output.String(), fmt.Errorf("read error: %w", s.err)
			}
			output.Write(chunk)
			if s.raw {
				s.log.Debugf("Switch output: Read: %s", chunk)
			}
			text := normalizeNewlines(output.String())
			if match(text) {
				return text, nil
			}
		case <-timer.C:
			return normalizeNewlines(output.String()), fmt.Errorf("%w waiting for %s", errReadTimeout, what)
		}
	}
}

func (s *stream) close() {
	s.once.Do(func() { close(s.done) })
}

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "")
}

func containsAny(patterns ...string) func(string) bool {
	return func(text string) bool {
		for _, p := range patterns {
			if strings.Contains(text, p) {
				return true
			}
		}
		return false
	}
}

func lastLine(text string) string {
	text = strings.TrimRight(text, " \t")
	if idx := strings.LastIndex(text, "\n"); idx >= 0 {
		return strings.TrimSpace(text[idx+1:])
	}
	return strings.TrimSpace(text)
}
