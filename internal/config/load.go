package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	appDirName     = "dschat"
	configFileName = "config.toml"
	secretsFile    = "secrets.toml"
	DefaultEnvFile = ".env"
)

// envNames lists, per config key, the environment variables read for it in
// priority order.
var envNames = map[string][]string{
	"api_key":               {"DEEPSEEK_API_KEY"},
	"api_key_ref":           {"DEEPSEEK_API_KEY_REF"},
	"api_base":              {"DEEPSEEK_API_BASE"},
	"model":                 {"DEEPSEEK_MODEL"},
	"max_tokens":            {"MAX_TOKENS"},
	"temperature":           {"TEMPERATURE"},
	"timeout":               {"TIMEOUT"},
	"system_prompt":         {"DSCHAT_SYSTEM_PROMPT"},
	"assistant_name":        {"DSCHAT_ASSISTANT_NAME"},
	"history.max_messages":  {"DSCHAT_HISTORY_MAX_MESSAGES"},
	"history.keep_messages": {"DSCHAT_HISTORY_KEEP_MESSAGES"},
	"render.markdown":       {"DSCHAT_MARKDOWN"},
	"log.file":              {"DSCHAT_LOG_FILE"},
	"log.level":             {"DSCHAT_LOG_LEVEL"},
}

type LoadOptions struct {
	// ConfigFile overrides the default config path. A missing default file is
	// fine; a missing explicit file is an error.
	ConfigFile string
	// EnvFile is a dotenv file read when it exists. Empty means ".env".
	EnvFile string
	// Flags maps config keys to command-line flags. Only flags the user set
	// take effect.
	Flags map[string]*pflag.Flag
}

// Load resolves the configuration. Sources, lowest precedence first:
// defaults, config file, dotenv file, environment, flags.
func Load(v *viper.Viper, opts LoadOptions) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	setDefaults(v)

	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return Config{}, err
	}
	if err := mergeEnvFile(v, opts.EnvFile); err != nil {
		return Config{}, err
	}

	for key, names := range envNames {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return Config{}, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	for key, flag := range opts.Flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return Config{}, fmt.Errorf("bind flag for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: decode: %w", ErrInvalid, err)
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("api_key", "")
	v.SetDefault("api_key_ref", "")
	v.SetDefault("api_base", d.APIBase)
	v.SetDefault("model", d.Model)
	v.SetDefault("max_tokens", d.MaxTokens)
	v.SetDefault("temperature", d.Temperature)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("system_prompt", d.SystemPrompt)
	v.SetDefault("assistant_name", d.AssistantName)
	v.SetDefault("history.max_messages", d.History.MaxMessages)
	v.SetDefault("history.keep_messages", d.History.KeepMessages)
	v.SetDefault("render.markdown", d.Render.Markdown)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.verbose", false)
}

func readConfigFile(v *viper.Viper, explicit string) error {
	path := explicit
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil
		}
		if _, err := os.Stat(defaultPath); err != nil {
			return nil
		}
		path = defaultPath
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("%w: read config file %s: %w", ErrInvalid, path, err)
	}

	return nil
}

// mergeEnvFile layers a dotenv file over the config file. Its variables use
// the same names as the process environment.
func mergeEnvFile(v *viper.Viper, path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat env file %s: %w", path, err)
	}

	dotenv := viper.New()
	dotenv.SetConfigFile(path)
	dotenv.SetConfigType("env")
	if err := dotenv.ReadInConfig(); err != nil {
		return fmt.Errorf("%w: read env file %s: %w", ErrInvalid, path, err)
	}

	overrides := map[string]any{}
	for key, names := range envNames {
		for _, name := range names {
			if !dotenv.IsSet(name) {
				continue
			}
			setNested(overrides, key, dotenv.GetString(name))
			break
		}
	}
	if len(overrides) == 0 {
		return nil
	}

	if err := v.MergeConfigMap(overrides); err != nil {
		return fmt.Errorf("merge env file %s: %w", path, err)
	}
	return nil
}

func setNested(m map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		child, ok := m[part].(map[string]any)
		if !ok {
			child = map[string]any{}
			m[part] = child
		}
		m = child
	}
	m[parts[len(parts)-1]] = value
}

func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func DefaultSecretsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, secretsFile), nil
}
