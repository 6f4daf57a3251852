package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/bnema/deepseek-chat-cli/internal/domain"
	"github.com/bnema/deepseek-chat-cli/internal/ports"
	"github.com/bnema/deepseek-chat-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSystemPrompt = "You are DeepSeek, a helpful AI assistant."

var testSettings = Settings{
	Model:         "deepseek-chat",
	MaxTokens:     4096,
	Temperature:   0.7,
	AssistantName: "DeepSeek",
	Prompt:        "> ",
}

type sessionFixture struct {
	conversation *domain.Conversation
	completer    *mocks.MockCompleter
	input        *mocks.MockLineReader
	display      *recordingDisplay
	session      *Session
}

func newSessionFixture(t *testing.T, window domain.Window) *sessionFixture {
	t.Helper()

	conversation, err := domain.NewConversation(testSystemPrompt, window)
	require.NoError(t, err)

	f := &sessionFixture{
		conversation: conversation,
		completer:    mocks.NewMockCompleter(t),
		input:        mocks.NewMockLineReader(t),
		display:      &recordingDisplay{},
	}
	f.session = NewSession(conversation, f.completer, f.input, f.display, testSettings, nil)
	return f
}

// scriptLines feeds lines to the session and reports io.EOF afterwards.
func (f *sessionFixture) scriptLines(lines ...string) {
	var mu sync.Mutex
	next := 0
	f.input.EXPECT().ReadLine(mock.Anything, "> ").RunAndReturn(func(context.Context, string) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if next >= len(lines) {
			return "", io.EOF
		}
		line := lines[next]
		next++
		return line, nil
	})
}

// scriptLinesThenBlock feeds lines and then blocks until ctx is done.
func (f *sessionFixture) scriptLinesThenBlock(lines ...string) {
	var mu sync.Mutex
	next := 0
	f.input.EXPECT().ReadLine(mock.Anything, "> ").RunAndReturn(func(ctx context.Context, _ string) (string, error) {
		mu.Lock()
		if next < len(lines) {
			line := lines[next]
			next++
			mu.Unlock()
			return line, nil
		}
		mu.Unlock()
		<-ctx.Done()
		return "", ctx.Err()
	})
}

func reply(content string) ports.Completion {
	return ports.Completion{Content: content, Model: "deepseek-chat", Usage: domain.Usage{InputTokens: 10, OutputTokens: 5}}
}

func TestSessionHelloExchange(t *testing.T) {
	f := newSessionFixture(t, domain.DefaultWindow())
	f.scriptLines("Hello")

	f.completer.EXPECT().Complete(mock.Anything, ports.CompletionRequest{
		Model:       "deepseek-chat",
		MaxTokens:   4096,
		Temperature: 0.7,
		Messages: []domain.Message{
			domain.SystemMessage(testSystemPrompt),
			domain.UserMessage("Hello"),
		},
	}).Return(reply("Hi there"), nil).Once()

	require.NoError(t, f.session.Run(context.Background()))

	assert.Equal(t, []domain.Message{
		domain.SystemMessage(testSystemPrompt),
		domain.UserMessage("Hello"),
		domain.AssistantMessage("Hi there"),
	}, f.conversation.Messages())
	assert.Equal(t, []string{
		"welcome",
		"user: Hello",
		"thinking",
		"clear-thinking",
		"assistant: Hi there",
		"goodbye",
	}, f.display.Events())
	assert.Equal(t, ports.Summary{Turns: 1, Usage: domain.Usage{InputTokens: 10, OutputTokens: 5}}, f.display.summary)
}

func TestSessionWhitespaceInputNeverReachesCompleter(t *testing.T) {
	f := newSessionFixture(t, domain.DefaultWindow())
	f.scriptLines("", "   ", "\t", " \r\n ")

	require.NoError(t, f.session.Run(context.Background()))

	assert.Equal(t, 1, f.conversation.Len())
	assert.Equal(t, []string{"welcome", "goodbye"}, f.display.Events())
	f.completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestSessionUnknownCommandLeavesBufferUntouched(t *testing.T) {
	f := newSessionFixture(t, domain.DefaultWindow())
	f.scriptLines("/model gpt-4", "/", "/HELPME")

	require.NoError(t, f.session.Run(context.Background()))

	assert.Equal(t, 1, f.conversation.Len())
	assert.Equal(t, []string{
		"welcome",
		"error: Unknown command: /model gpt-4",
		"info: Type /help to see available commands",
		"error: Unknown command: /",
		"info: Type /help to see available commands",
		"error: Unknown command: /HELPME",
		"info: Type /help to see available commands",
		"goodbye",
	}, f.display.Events())
}

func TestSessionExitCommandsStopTheLoop(t *testing.T) {
	for _, token := range []string{"/exit", "/quit", "  /EXIT ", "/Quit"} {
		t.Run(token, func(t *testing.T) {
			f := newSessionFixture(t, domain.DefaultWindow())
			f.scriptLines(token, "never read")

			require.NoError(t, f.session.Run(context.Background()))

			assert.Equal(t, []string{"welcome", "goodbye"}, f.display.Events())
			assert.Equal(t, 1, f.conversation.Len())
		})
	}
}

func TestSessionHelpHistoryAndClear(t *testing.T) {
	f := newSessionFixture(t, domain.DefaultWindow())
	f.scriptLines("/history", "/HELP", "Hello", "/history", "/clear", "/history")
	f.completer.EXPECT().Complete(mock.Anything, mock.Anything).Return(reply("Hi there"), nil).Once()

	require.NoError(t, f.session.Run(context.Background()))

	assert.Equal(t, []string{
		"welcome",
		"info: No conversation history yet.",
		"help",
		"user: Hello",
		"thinking",
		"clear-thinking",
		"assistant: Hi there",
		"history: 2",
		"info: Conversation history cleared!",
		"info: No conversation history yet.",
		"goodbye",
	}, f.display.Events())
	assert.Equal(t, []string{"You: Hello", "DeepSeek: Hi there"}, f.display.history)
	assert.Equal(t, []domain.Message{
		domain.SystemMessage(testSystemPrompt),
		domain.UserMessage("Hello"),
		domain.AssistantMessage("Hi there"),
	}, f.conversation.Messages())
}

func TestSessionClearKeepsContextForNextRequest(t *testing.T) {
	f := newSessionFixture(t, domain.DefaultWindow())
	f.scriptLines("Hello", "/clear", "Again")
	f.completer.EXPECT().Complete(mock.Anything, mock.Anything).Return(reply("Hi there"), nil).Once()

	var sent []domain.Message
	f.completer.EXPECT().Complete(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, req ports.CompletionRequest) (ports.Completion, error) {
		sent = req.Messages
		return reply("Hi again"), nil
	}).Once()

	require.NoError(t, f.session.Run(context.Background()))

	assert.Equal(t, []domain.Message{
		domain.SystemMessage(testSystemPrompt),
		domain.UserMessage("Hello"),
		domain.AssistantMessage("Hi there"),
		domain.UserMessage("Again"),
	}, sent)
	assert.Equal(t, 5, f.conversation.Len())
}

func TestSessionFailedCompletionKeepsUserMessageAndShowsHint(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHint string
	}{
		{
			name:     "auth",
			err:      errors.New("API request failed with status 401 Unauthorized: invalid key"),
			wantHint: "info: Please check your DEEPSEEK_API_KEY in the .env file",
		},
		{
			name:     "timeout",
			err:      errors.New("send request: request timeout"),
			wantHint: "info: Please check your internet connection and try again",
		},
		{
			name:     "rate limited",
			err:      errors.New("API request failed with status 429 Too Many Requests"),
			wantHint: "info: Rate limit exceeded. Please wait a moment before trying again",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newSessionFixture(t, domain.DefaultWindow())
			f.scriptLines("Hello")
			f.completer.EXPECT().Complete(mock.Anything, mock.Anything).Return(ports.Completion{}, tc.err).Once()

			require.NoError(t, f.session.Run(context.Background()))

			assert.Equal(t, []domain.Message{
				domain.SystemMessage(testSystemPrompt),
				domain.UserMessage("Hello"),
			}, f.conversation.Messages())
			assert.Equal(t, []string{
				"welcome",
				"user: Hello",
				"thinking",
				"clear-thinking",
				"error: Failed to get response: " + tc.err.Error(),
				tc.wantHint,
				"goodbye",
			}, f.display.Events())
		})
	}
}

func TestSessionUnclassifiedFailureHasNoHint(t *testing.T) {
	f := newSessionFixture(t, domain.DefaultWindow())
	f.scriptLines("Hello", "Again")
	f.completer.EXPECT().Complete(mock.Anything, mock.Anything).Return(ports.Completion{}, errors.New("server exploded")).Once()
	f.completer.EXPECT().Complete(mock.Anything, mock.Anything).Return(reply("Recovered"), nil).Once()

	require.NoError(t, f.session.Run(context.Background()))

	assert.Equal(t, 0, f.display.Count("info:"))
	assert.Equal(t, 1, f.display.Count("error: Failed to get response: server exploded"))
	assert.Equal(t, []domain.Message{
		domain.SystemMessage(testSystemPrompt),
		domain.UserMessage("Hello"),
		domain.UserMessage("Again"),
		domain.AssistantMessage("Recovered"),
	}, f.conversation.Messages())
}

func TestSessionEmptyReplyIsAWarning(t *testing.T) {
	f := newSessionFixture(t, domain.DefaultWindow())
	f.scriptLines("Hello", "/history")
	f.completer.EXPECT().Complete(mock.Anything, mock.Anything).Return(reply("  "), nil).Once()

	require.NoError(t, f.session.Run(context.Background()))

	assert.Equal(t, 1, f.display.Count("warning: DeepSeek returned an empty reply"))
	assert.Equal(t, []string{"You: Hello", "DeepSeek returned an empty reply"}, f.display.history)
	assert.Zero(t, f.display.Count("assistant:"))
	assert.Equal(t, 3, f.conversation.Len())
}

func TestSessionTwentyOneExchangesWithPairWindow(t *testing.T) {
	f := newSessionFixture(t, domain.Window{MaxMessages: 41, KeepMessages: 40})

	lines := make([]string, 0, 21)
	for i := 1; i <= 21; i++ {
		lines = append(lines, fmt.Sprintf("question %d", i))
	}
	f.scriptLines(lines...)
	f.completer.EXPECT().Complete(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, req ports.CompletionRequest) (ports.Completion, error) {
		last := req.Messages[len(req.Messages)-1]
		return reply("answer to " + last.Content), nil
	}).Times(21)

	require.NoError(t, f.session.Run(context.Background()))

	messages := f.conversation.Messages()
	require.Len(t, messages, 41)
	assert.Equal(t, domain.SystemMessage(testSystemPrompt), messages[0])
	assert.Equal(t, domain.UserMessage("question 2"), messages[1])
	assert.Equal(t, domain.AssistantMessage("answer to question 2"), messages[2])
	assert.Equal(t, domain.AssistantMessage("answer to question 21"), messages[40])
	assert.Equal(t, 21, f.display.summary.Turns)
}

func TestSessionDefaultWindowCapsRequestPayload(t *testing.T) {
	f := newSessionFixture(t, domain.DefaultWindow())

	lines := make([]string, 0, 30)
	for i := 1; i <= 30; i++ {
		lines = append(lines, fmt.Sprintf("question %d", i))
	}
	f.scriptLines(lines...)
	f.completer.EXPECT().Complete(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, req ports.CompletionRequest) (ports.Completion, error) {
		assert.LessOrEqual(t, len(req.Messages), 42)
		assert.Equal(t, domain.RoleSystem, req.Messages[0].Role)
		return reply("ok"), nil
	}).Times(30)

	require.NoError(t, f.session.Run(context.Background()))

	assert.LessOrEqual(t, f.conversation.Len(), 41)
	assert.Equal(t, domain.SystemMessage(testSystemPrompt), f.conversation.Messages()[0])
}

func TestSessionCancellationWhileCallOutstanding(t *testing.T) {
	f := newSessionFixture(t, domain.DefaultWindow())
	f.scriptLinesThenBlock("Hello")

	started := make(chan struct{})
	f.completer.EXPECT().Complete(mock.Anything, mock.Anything).RunAndReturn(func(ctx context.Context, _ ports.CompletionRequest) (ports.Completion, error) {
		close(started)
		<-ctx.Done()
		return ports.Completion{}, ctx.Err()
	}).Once()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- f.session.Run(ctx) }()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("completion was never requested")
	}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not stop after cancellation")
	}

	assert.Equal(t, []domain.Message{
		domain.SystemMessage(testSystemPrompt),
		domain.UserMessage("Hello"),
	}, f.conversation.Messages())
	assert.Zero(t, f.display.Count("assistant:"))
	assert.Zero(t, f.display.Count("error:"))
	assert.Equal(t, 1, f.display.Count("goodbye"))
	assert.Equal(t, 1, f.display.goodbyes)
	assert.Equal(t, 0, f.display.summary.Turns)
}

func TestSessionCancellationWhileAwaitingInput(t *testing.T) {
	f := newSessionFixture(t, domain.DefaultWindow())
	f.scriptLinesThenBlock()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.session.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not stop after cancellation")
	}

	assert.Equal(t, []string{"welcome", "info: Shutting down gracefully...", "goodbye"}, f.display.Events())
	assert.Equal(t, 1, f.conversation.Len())
}

func TestSessionInputErrorEndsSession(t *testing.T) {
	f := newSessionFixture(t, domain.DefaultWindow())
	readErr := errors.New("terminal gone")
	f.input.EXPECT().ReadLine(mock.Anything, "> ").Return("", readErr).Once()

	err := f.session.Run(context.Background())

	require.ErrorIs(t, err, ErrInput)
	require.ErrorIs(t, err, readErr)
	assert.Equal(t, []string{"welcome", "error: Conversation error: read input: terminal gone", "goodbye"}, f.display.Events())
}

func TestSessionEOFIsAGracefulExit(t *testing.T) {
	f := newSessionFixture(t, domain.DefaultWindow())
	f.scriptLines()

	require.NoError(t, f.session.Run(context.Background()))
	assert.Equal(t, []string{"welcome", "goodbye"}, f.display.Events())
	assert.NotEmpty(t, f.session.ID())
}

func TestAwaitFirstReturnsContextErrorWhenFnIgnoresCancellation(t *testing.T) {
	release := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := awaitFirst(ctx, func(context.Context) (string, error) {
		<-release
		return "late", nil
	})
	close(release)

	assert.ErrorIs(t, err, context.Canceled)
}
