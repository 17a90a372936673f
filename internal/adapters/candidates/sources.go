// Package candidates provides the CandidateSource implementations a phase
// can draw target IDs from.
package candidates

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/bnema/pacer/internal/ports"
)

// SliceSource yields a fixed list of IDs in order.
type SliceSource struct {
	ids  []string
	next int
}

var _ ports.CandidateSource = (*SliceSource)(nil)

func NewSliceSource(ids ...string) *SliceSource {
	return &SliceSource{ids: append([]string(nil), ids...)}
}

func (s *SliceSource) Next(ctx context.Context) (string, bool) {
	if ctx.Err() != nil || s.next >= len(s.ids) {
		return "", false
	}

	id := s.ids[s.next]
	s.next++
	return id, true
}

func (s *SliceSource) Close() error {
	return nil
}

// lineSource reads one ID per line. Blank lines and lines starting with '#'
// are ignored.
type lineSource struct {
	scanner *bufio.Scanner
	done    bool
	close   func(exhausted bool) error
}

func newLineSource(r io.Reader, closeFn func(exhausted bool) error) *lineSource {
	return &lineSource{scanner: bufio.NewScanner(r), close: closeFn}
}

func (s *lineSource) Next(ctx context.Context) (string, bool) {
	if s.done || ctx.Err() != nil {
		return "", false
	}

	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, true
	}

	s.done = true
	return "", false
}

func (s *lineSource) Close() error {
	if s.close == nil {
		return nil
	}

	closeFn := s.close
	s.close = nil
	if err := closeFn(s.done); err != nil {
		return err
	}

	return s.scanner.Err()
}

// OpenFile streams IDs from a text file.
func OpenFile(path string) (ports.CandidateSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candidate file: %w", err)
	}

	return newLineSource(f, func(bool) error { return f.Close() }), nil
}

// OpenCommand streams IDs from the stdout of argv. Closing the source before
// the stream is exhausted kills the process.
func OpenCommand(ctx context.Context, argv []string) (ports.CandidateSource, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, errors.New("open candidate command: command is empty")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("open candidate command: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start candidate command: %w", err)
	}

	return newLineSource(stdout, func(exhausted bool) error {
		if !exhausted {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			return nil
		}
		if err := cmd.Wait(); err != nil {
			return fmt.Errorf("candidate command: %w", err)
		}
		return nil
	}), nil
}
