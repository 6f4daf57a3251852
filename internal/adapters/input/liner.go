package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bnema/deepseek-chat-cli/internal/ports"
	"github.com/peterh/liner"
)

// LinerReader edits lines in raw mode with in-session history. Ctrl+C at the
// prompt calls interrupt and is reported as context.Canceled, so the session
// sees the same cancellation a signal would cause.
type LinerReader struct {
	state     *liner.State
	interrupt context.CancelFunc
	closeOnce sync.Once
}

var _ ports.LineReader = (*LinerReader)(nil)

var errNoInterrupt = errors.New("liner reader needs an interrupt func")

func NewLinerReader(interrupt context.CancelFunc) (*LinerReader, error) {
	if interrupt == nil {
		return nil, errNoInterrupt
	}

	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	return &LinerReader{state: state, interrupt: interrupt}, nil
}

func (r *LinerReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	line, err := r.state.Prompt(prompt)
	if err != nil {
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			r.interrupt()
			return "", context.Canceled
		case errors.Is(err, io.EOF):
			return "", io.EOF
		default:
			return "", fmt.Errorf("prompt: %w", err)
		}
	}

	if strings.TrimSpace(line) != "" {
		r.state.AppendHistory(line)
	}

	return line, nil
}

func (r *LinerReader) Close() error {
	var err error
	r.closeOnce.Do(func() {
		err = r.state.Close()
	})
	return err
}
