package cmd

import (
	"fmt"
	"os"

	"github.com/bnema/deepseek-chat-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/deepseek-chat-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/deepseek-chat-cli/internal/adapters/secrets/pass"
	"github.com/bnema/deepseek-chat-cli/internal/config"
	"github.com/bnema/deepseek-chat-cli/internal/ports"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	secretBackendEnv = "DSCHAT_SECRET_BACKEND"
	secretsPathEnv   = "DSCHAT_SECRETS_FILE"
)

type app struct {
	secretStore ports.SecretStore
	configFile  string
	envFile     string
}

func wireApp() (*app, error) {
	defaultSecrets, err := config.DefaultSecretsPath()
	if err != nil {
		return nil, err
	}

	store, err := newSecretStore(
		envOrDefault(secretBackendEnv, "auto"),
		envOrDefault(secretsPathEnv, defaultSecrets),
	)
	if err != nil {
		return nil, fmt.Errorf("wire secret store: %w", err)
	}

	return &app{secretStore: store}, nil
}

func newSecretStore(backend string, secretsPath string) (ports.SecretStore, error) {
	switch backend {
	case "auto":
		return chain.NewPassThenFile(secretsPath)
	case "pass":
		return passstore.NewStore(passstore.DefaultPrefix), nil
	case "file":
		return filestore.NewStore(secretsPath)
	default:
		return nil, fmt.Errorf("unsupported secret backend %q (want auto, pass or file)", backend)
	}
}

// flagKeys maps config keys to the chat flags that override them.
var flagKeys = map[string]string{
	"model":           "model",
	"temperature":     "temperature",
	"max_tokens":      "max-tokens",
	"timeout":         "timeout",
	"api_base":        "api-base",
	"system_prompt":   "system",
	"render.markdown": "markdown",
	"log.file":        "log-file",
	"log.verbose":     "verbose",
}

func (a *app) loadConfig(flags *pflag.FlagSet) (config.Config, error) {
	opts := config.LoadOptions{
		ConfigFile: a.configFile,
		EnvFile:    a.envFile,
		Flags:      map[string]*pflag.Flag{},
	}
	if flags != nil {
		for key, name := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				opts.Flags[key] = flag
			}
		}
	}

	return config.Load(viper.New(), opts)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
