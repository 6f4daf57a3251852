package openai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/deepseek-chat-cli/internal/domain"
	"github.com/bnema/deepseek-chat-cli/internal/ports"
	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
)

const (
	DefaultBaseURL = "https://api.deepseek.com"
	DefaultTimeout = 300 * time.Second
	apiVersionPath = "/v1/"
)

type Options struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client calls an OpenAI compatible chat completions endpoint. Every request
// is a single attempt bounded by Options.Timeout.
type Client struct {
	api     openai.Client
	timeout time.Duration
}

var _ ports.Completer = (*Client)(nil)

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("api key is empty")
	}

	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	requestOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithBaseURL(strings.TrimRight(base, "/") + apiVersionPath),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
	}
	if opts.HTTPClient != nil {
		requestOpts = append(requestOpts, option.WithHTTPClient(opts.HTTPClient))
	}

	return &Client{api: openai.NewClient(requestOpts...), timeout: timeout}, nil
}

func (c *Client) Complete(ctx context.Context, req ports.CompletionRequest) (ports.Completion, error) {
	messages, err := toParams(req.Messages)
	if err != nil {
		return ports.Completion{}, err
	}

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(req.Model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return ports.Completion{}, c.describe(ctx, err)
	}
	if len(resp.Choices) == 0 {
		return ports.Completion{}, domain.ErrNoChoices
	}

	return ports.Completion{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: domain.Usage{
			InputTokens:       resp.Usage.PromptTokens,
			OutputTokens:      resp.Usage.CompletionTokens,
			CachedInputTokens: resp.Usage.PromptTokensDetails.CachedTokens,
		},
	}, nil
}

func toParams(messages []domain.Message) ([]openai.ChatCompletionMessageParamUnion, error) {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, message := range messages {
		switch message.Role {
		case domain.RoleSystem:
			params = append(params, openai.SystemMessage(message.Content))
		case domain.RoleUser:
			params = append(params, openai.UserMessage(message.Content))
		case domain.RoleAssistant:
			params = append(params, openai.AssistantMessage(message.Content))
		default:
			return nil, fmt.Errorf("encode message: %w: %q", domain.ErrUnknownRole, message.Role)
		}
	}

	return params, nil
}

// describe rewrites transport failures so their text names the HTTP status,
// a timeout or a network problem.
func (c *Client) describe(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		status := fmt.Sprintf("%d %s", apiErr.StatusCode, http.StatusText(apiErr.StatusCode))
		body := strings.TrimSpace(apiErr.RawJSON())
		if body == "" {
			body = apiErr.Message
		}
		return fmt.Errorf("API request failed with status %s: %s", strings.TrimSpace(status), body)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timeout after %s: %w", c.timeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("request timeout after %s: %w", c.timeout, err)
		}
		return fmt.Errorf("network error: %w", err)
	}

	return fmt.Errorf("send request: %w", err)
}
