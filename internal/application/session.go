package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/deepseek-chat-cli/internal/domain"
	"github.com/bnema/deepseek-chat-cli/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInput = errors.New("read input")

type Settings struct {
	Model         string
	MaxTokens     int64
	Temperature   float64
	AssistantName string
	Prompt        string
}

// Session drives one interactive conversation. It is not safe for concurrent
// use: the conversation buffer is only touched from the goroutine calling Run.
type Session struct {
	id           string
	conversation *domain.Conversation
	transcript   *Transcript
	completer    ports.Completer
	input        ports.LineReader
	display      ports.Display
	settings     Settings
	logger       *zap.Logger
	now          func() time.Time

	turns int
	usage domain.Usage
}

func NewSession(
	conversation *domain.Conversation,
	completer ports.Completer,
	input ports.LineReader,
	display ports.Display,
	settings Settings,
	logger *zap.Logger,
) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.AssistantName == "" {
		settings.AssistantName = "Assistant"
	}

	id := uuid.NewString()
	return &Session{
		id:           id,
		conversation: conversation,
		transcript:   &Transcript{},
		completer:    completer,
		input:        input,
		display:      display,
		settings:     settings,
		logger:       logger.With(zap.String("session_id", id)),
		now:          time.Now,
	}
}

func (s *Session) ID() string {
	return s.id
}

// Run shows the welcome banner, loops until the user exits, input ends or ctx
// is cancelled, then shows the goodbye banner exactly once. Only input
// failures are returned; failed completions are reported and the loop goes on.
func (s *Session) Run(ctx context.Context) error {
	s.display.Welcome()
	s.logger.Info("session started",
		zap.String("model", s.settings.Model),
		zap.Int("max_messages", s.conversation.Window().MaxMessages),
		zap.Int("keep_messages", s.conversation.Window().KeepMessages),
	)

	err := s.loop(ctx)
	switch {
	case err == nil:
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		s.display.Info("Shutting down gracefully...")
		err = nil
	default:
		s.display.Error(fmt.Sprintf("Conversation error: %v", err))
	}

	s.display.Goodbye(ports.Summary{Turns: s.turns, Usage: s.usage})
	s.logger.Info("session ended",
		zap.Int("turns", s.turns),
		zap.Int64("tokens", s.usage.Total()),
		zap.Error(err),
	)

	return err
}

func (s *Session) loop(ctx context.Context) error {
	for {
		line, err := awaitFirst(ctx, func(ctx context.Context) (string, error) {
			return s.input.ReadLine(ctx, s.settings.Prompt)
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("%w: %w", ErrInput, err)
		}

		outcome := s.Dispatch(line)
		switch outcome.Kind {
		case OutcomeExit:
			return nil
		case OutcomeHandled:
			continue
		}

		if err := s.chat(ctx, outcome.Text); err != nil {
			return err
		}
	}
}

// chat runs one turn. The user message stays in the buffer whether or not the
// call succeeds. A non-nil error means ctx ended while the call was in flight.
func (s *Session) chat(ctx context.Context, text string) error {
	s.display.User(text)
	s.transcript.Add("You: " + text)
	if err := s.conversation.Append(domain.RoleUser, text); err != nil {
		return fmt.Errorf("append user message: %w", err)
	}

	req := ports.CompletionRequest{
		Model:       s.settings.Model,
		Messages:    s.conversation.Messages(),
		MaxTokens:   s.settings.MaxTokens,
		Temperature: s.settings.Temperature,
	}

	s.display.Thinking()
	started := s.now()
	completion, err := awaitFirst(ctx, func(ctx context.Context) (ports.Completion, error) {
		return s.completer.Complete(ctx, req)
	})
	s.display.ClearThinking()

	if ctxErr := ctx.Err(); ctxErr != nil {
		s.logger.Info("turn abandoned", zap.Int("history_len", s.conversation.Len()))
		return ctxErr
	}

	if err != nil {
		category := domain.ClassifyFailure(err)
		s.display.Error(fmt.Sprintf("Failed to get response: %v", err))
		if hint := category.Hint(); hint != "" {
			s.display.Info(hint)
		}
		s.logger.Warn("completion failed",
			zap.String("category", string(category)),
			zap.Duration("latency", s.now().Sub(started)),
			zap.Error(err),
		)
		return nil
	}

	if strings.TrimSpace(completion.Content) == "" {
		warning := fmt.Sprintf("%s returned an empty reply", s.settings.AssistantName)
		s.display.Warning(warning)
		s.transcript.Add(warning)
	} else {
		s.display.Assistant(completion.Content)
		s.transcript.Add(s.settings.AssistantName + ": " + completion.Content)
	}
	if err := s.conversation.Append(domain.RoleAssistant, completion.Content); err != nil {
		return fmt.Errorf("append assistant message: %w", err)
	}
	if dropped := s.conversation.Trim(); dropped > 0 {
		s.logger.Debug("history trimmed", zap.Int("dropped", dropped), zap.Int("history_len", s.conversation.Len()))
	}

	s.turns++
	s.usage = s.usage.Add(completion.Usage)
	s.logger.Info("completion succeeded",
		zap.Duration("latency", s.now().Sub(started)),
		zap.Int64("input_tokens", completion.Usage.InputTokens),
		zap.Int64("output_tokens", completion.Usage.OutputTokens),
		zap.Int("history_len", s.conversation.Len()),
	)

	return nil
}

type result[T any] struct {
	value T
	err   error
}

// awaitFirst runs fn on its own goroutine and returns as soon as either fn
// finishes or ctx is done. fn receives ctx so it can stop early; if it does
// not, its result is dropped.
func awaitFirst[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	done := make(chan result[T], 1)
	go func() {
		value, err := fn(ctx)
		done <- result[T]{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-done:
		return r.value, r.err
	}
}
