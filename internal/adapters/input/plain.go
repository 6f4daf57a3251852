package input

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bnema/deepseek-chat-cli/internal/ports"
)

type lineResult struct {
	line string
	err  error
}

// PlainReader reads newline-terminated input from any reader. Lines are
// pumped by one background goroutine so ReadLine can give up on ctx.
type PlainReader struct {
	in  io.Reader
	out io.Writer

	start sync.Once
	lines chan lineResult
}

var _ ports.LineReader = (*PlainReader)(nil)

func NewPlainReader(in io.Reader, out io.Writer) *PlainReader {
	if out == nil {
		out = io.Discard
	}

	return &PlainReader{in: in, out: out, lines: make(chan lineResult, 1)}
}

func (r *PlainReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if prompt != "" {
		if _, err := fmt.Fprint(r.out, prompt); err != nil {
			return "", fmt.Errorf("write prompt: %w", err)
		}
	}

	r.start.Do(func() { go r.pump() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	}
}

func (r *PlainReader) Close() error {
	return nil
}

func (r *PlainReader) pump() {
	defer close(r.lines)

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		r.lines <- lineResult{line: strings.TrimRight(scanner.Text(), "\r")}
	}
	if err := scanner.Err(); err != nil {
		r.lines <- lineResult{err: fmt.Errorf("scan input: %w", err)}
	}
}
