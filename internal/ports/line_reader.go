package ports

import "context"

// LineReader reads one line of user input. It returns io.EOF once input is
// exhausted and ctx.Err() when ctx ends before a line arrives.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
	Close() error
}
