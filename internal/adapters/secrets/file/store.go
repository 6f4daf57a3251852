package file

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tomldoc "github.com/bnema/deepseek-chat-cli/internal/adapters/repo/toml"
	"github.com/bnema/deepseek-chat-cli/internal/ports"
)

const DefaultFileName = "secrets.toml"

var errEmptyKey = errors.New("secret key is empty")

type secretsFile struct {
	Secrets map[string]string `toml:"secrets"`
}

// Store keeps every secret in one private TOML file.
type Store struct {
	doc *tomldoc.Document[secretsFile]
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(path string) (*Store, error) {
	doc, err := tomldoc.Open[secretsFile](path)
	if err != nil {
		return nil, fmt.Errorf("open secrets file: %w", err)
	}

	return &Store{doc: doc}, nil
}

func (s *Store) Path() string {
	return s.doc.Path()
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key, err := normalizeKey(key)
	if err != nil {
		return err
	}

	return s.doc.Update(func(f *secretsFile) error {
		if f.Secrets == nil {
			f.Secrets = map[string]string{}
		}
		f.Secrets[key] = value
		return nil
	})
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key, err := normalizeKey(key)
	if err != nil {
		return "", err
	}

	f, err := s.doc.Load()
	if err != nil {
		return "", err
	}

	value, ok := f.Secrets[key]
	if !ok {
		return "", fmt.Errorf("file secret %q: %w", key, ports.ErrSecretNotFound)
	}

	return value, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key, err := normalizeKey(key)
	if err != nil {
		return err
	}

	return s.doc.Update(func(f *secretsFile) error {
		delete(f.Secrets, key)
		return nil
	})
}

func normalizeKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errEmptyKey
	}

	return trimmed, nil
}
