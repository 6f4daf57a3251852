package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/deepseek-chat-cli/internal/adapters/input"
	llm "github.com/bnema/deepseek-chat-cli/internal/adapters/llm/openai"
	"github.com/bnema/deepseek-chat-cli/internal/adapters/render/terminal"
	"github.com/bnema/deepseek-chat-cli/internal/application"
	"github.com/bnema/deepseek-chat-cli/internal/config"
	"github.com/bnema/deepseek-chat-cli/internal/domain"
	"github.com/bnema/deepseek-chat-cli/internal/logging"
	"github.com/bnema/deepseek-chat-cli/internal/ports"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const inputPrompt = "💬 Enter your message: "

func newChatCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd, app)
		},
	}

	addChatFlags(cmd)

	return cmd
}

func addChatFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("model", config.DefaultModel, "Model name")
	flags.Float64("temperature", config.DefaultTemperature, "Sampling temperature (0.0-2.0)")
	flags.Int64("max-tokens", config.DefaultMaxTokens, "Maximum tokens per reply")
	flags.Int64("timeout", config.DefaultTimeout, "Request timeout in seconds")
	flags.String("api-base", config.DefaultAPIBase, "API base URL")
	flags.String("system", config.DefaultSystemPrompt, "System prompt")
	flags.Bool("markdown", false, "Render replies as markdown")
	flags.String("log-file", "", "Write JSON logs to this file")
	flags.BoolP("verbose", "v", false, "Debug level logging (needs --log-file)")
}

func runChat(cmd *cobra.Command, app *app) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := app.loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.ResolveAPIKey(ctx, app.secretStore); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{File: cfg.Log.File, Level: cfg.Log.Level, Verbose: cfg.Log.Verbose})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	completer, err := llm.NewClient(llm.Options{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.APIBase,
		Timeout: cfg.RequestTimeout(),
	})
	if err != nil {
		return fmt.Errorf("create completion client: %w", err)
	}

	conversation, err := domain.NewConversation(cfg.SystemPrompt, cfg.Window())
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}

	out := cmd.OutOrStdout()
	display, err := terminal.NewDisplay(out, terminal.Options{
		AssistantName: cfg.AssistantName,
		Animate:       isTerminalWriter(out),
		Markdown:      cfg.Render.Markdown,
	})
	if err != nil {
		return err
	}

	reader, err := newLineReader(cmd.InOrStdin(), out, stop)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = reader.Close() }()

	logger.Debug("config loaded",
		zap.String("api_base", cfg.APIBase),
		zap.String("model", cfg.Model),
		zap.Int64("max_tokens", cfg.MaxTokens),
		zap.Float64("temperature", cfg.Temperature),
		zap.Duration("timeout", cfg.RequestTimeout()),
	)

	session := application.NewSession(conversation, completer, reader, display, application.Settings{
		Model:         cfg.Model,
		MaxTokens:     cfg.MaxTokens,
		Temperature:   cfg.Temperature,
		AssistantName: cfg.AssistantName,
		Prompt:        inputPrompt,
	}, logger)

	return session.Run(ctx)
}

func newLineReader(in io.Reader, out io.Writer, interrupt func()) (ports.LineReader, error) {
	if f, ok := in.(*os.File); ok {
		return input.New(f, out, interrupt)
	}
	return input.NewPlainReader(in, out), nil
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && input.IsTerminal(f)
}
