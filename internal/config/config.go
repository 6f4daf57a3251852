package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/deepseek-chat-cli/internal/domain"
	"github.com/bnema/deepseek-chat-cli/internal/ports"
)

const (
	DefaultAPIBase       = "https://api.deepseek.com"
	DefaultModel         = "deepseek-chat"
	DefaultMaxTokens     = 4096
	DefaultTemperature   = 0.7
	DefaultTimeout       = 300
	DefaultAssistantName = "DeepSeek"
	DefaultSecretKey     = "api-key"
	DefaultLogLevel      = "info"
	DefaultSystemPrompt  = "You are DeepSeek, a helpful AI assistant. Provide clear, informative, and engaging responses. Be concise but thorough in your explanations."
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	APIKey        string        `mapstructure:"api_key" toml:"api_key,omitempty" yaml:"api_key,omitempty" json:"api_key,omitempty"`
	APIKeyRef     string        `mapstructure:"api_key_ref" toml:"api_key_ref,omitempty" yaml:"api_key_ref,omitempty" json:"api_key_ref,omitempty"`
	APIBase       string        `mapstructure:"api_base" toml:"api_base" yaml:"api_base" json:"api_base"`
	Model         string        `mapstructure:"model" toml:"model" yaml:"model" json:"model"`
	MaxTokens     int64         `mapstructure:"max_tokens" toml:"max_tokens" yaml:"max_tokens" json:"max_tokens"`
	Temperature   float64       `mapstructure:"temperature" toml:"temperature" yaml:"temperature" json:"temperature"`
	Timeout       int64         `mapstructure:"timeout" toml:"timeout" yaml:"timeout" json:"timeout"`
	SystemPrompt  string        `mapstructure:"system_prompt" toml:"system_prompt" yaml:"system_prompt" json:"system_prompt"`
	AssistantName string        `mapstructure:"assistant_name" toml:"assistant_name" yaml:"assistant_name" json:"assistant_name"`
	History       HistoryConfig `mapstructure:"history" toml:"history" yaml:"history" json:"history"`
	Render        RenderConfig  `mapstructure:"render" toml:"render" yaml:"render" json:"render"`
	Log           LogConfig     `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
}

type HistoryConfig struct {
	MaxMessages  int `mapstructure:"max_messages" toml:"max_messages" yaml:"max_messages" json:"max_messages"`
	KeepMessages int `mapstructure:"keep_messages" toml:"keep_messages" yaml:"keep_messages" json:"keep_messages"`
}

type RenderConfig struct {
	Markdown bool `mapstructure:"markdown" toml:"markdown" yaml:"markdown" json:"markdown"`
}

type LogConfig struct {
	File    string `mapstructure:"file" toml:"file" yaml:"file" json:"file"`
	Level   string `mapstructure:"level" toml:"level" yaml:"level" json:"level"`
	Verbose bool   `mapstructure:"verbose" toml:"-" yaml:"-" json:"-"`
}

func Default() Config {
	return Config{
		APIBase:       DefaultAPIBase,
		Model:         DefaultModel,
		MaxTokens:     DefaultMaxTokens,
		Temperature:   DefaultTemperature,
		Timeout:       DefaultTimeout,
		SystemPrompt:  DefaultSystemPrompt,
		AssistantName: DefaultAssistantName,
		History: HistoryConfig{
			MaxMessages:  domain.DefaultMaxMessages,
			KeepMessages: domain.DefaultKeepMessages,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c Config) Window() domain.Window {
	return domain.Window{MaxMessages: c.History.MaxMessages, KeepMessages: c.History.KeepMessages}
}

// SecretKey is the secret store key holding the API key.
func (c Config) SecretKey() string {
	if ref := strings.TrimSpace(c.APIKeyRef); ref != "" {
		return ref
	}
	return DefaultSecretKey
}

// ResolveAPIKey fills APIKey from the secret store when no key was given
// directly. A missing secret is not an error here; Validate reports it.
func (c *Config) ResolveAPIKey(ctx context.Context, store ports.SecretStore) error {
	if strings.TrimSpace(c.APIKey) != "" || store == nil {
		return nil
	}

	value, err := store.Get(ctx, c.SecretKey())
	if err != nil {
		if errors.Is(err, ports.ErrSecretNotFound) {
			return nil
		}
		return fmt.Errorf("resolve api key %q: %w", c.SecretKey(), err)
	}

	c.APIKey = strings.TrimSpace(value)
	return nil
}

func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.APIKey) == "" {
		problems = append(problems, "DEEPSEEK_API_KEY is required (set it in the environment, a .env file, or with 'dschat auth set')")
	}
	if strings.TrimSpace(c.APIBase) == "" {
		problems = append(problems, "api base must not be empty")
	}
	if strings.TrimSpace(c.Model) == "" {
		problems = append(problems, "model must not be empty")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		problems = append(problems, "temperature must be between 0.0 and 2.0")
	}
	if c.MaxTokens <= 0 {
		problems = append(problems, "max tokens must be greater than 0")
	}
	if c.Timeout <= 0 {
		problems = append(problems, "timeout must be greater than 0")
	}
	if err := c.Window().Validate(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	c.APIKey = MaskSecret(c.APIKey)
	return c
}

// MaskSecret keeps the first three and last four characters of long secrets.
func MaskSecret(secret string) string {
	secret = strings.TrimSpace(secret)
	switch {
	case secret == "":
		return ""
	case len(secret) <= 8:
		return "****"
	default:
		return secret[:3] + "..." + secret[len(secret)-4:]
	}
}
