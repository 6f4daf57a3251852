package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	tomldoc "github.com/bnema/deepseek-chat-cli/internal/adapters/repo/toml"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrExists        = errors.New("config file already exists")
	ErrUnknownFormat = errors.New("unknown output format")
)

const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// WriteTemplate writes the default configuration to path. An existing file
// is kept unless overwrite is set. The API key is never written.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat config file: %w", err)
		}
	}

	doc, err := tomldoc.Open[Config](path)
	if err != nil {
		return err
	}

	template := Default()
	template.APIKeyRef = DefaultSecretKey
	if err := doc.Save(template); err != nil {
		return fmt.Errorf("write config template: %w", err)
	}

	return nil
}

// Encode writes cfg in the given format.
func Encode(w io.Writer, cfg Config, format string) error {
	switch format {
	case "", FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return nil
}
