package ports

import (
	"context"

	"github.com/bnema/deepseek-chat-cli/internal/domain"
)

type CompletionRequest struct {
	Model       string
	Messages    []domain.Message
	MaxTokens   int64
	Temperature float64
}

type Completion struct {
	Content string
	Model   string
	Usage   domain.Usage
}

// Completer sends the whole conversation to the chat-completion service and
// returns the assistant reply. Implementations make exactly one attempt.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (Completion, error)
}
