package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/deepseek-chat-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/deepseek-chat-cli/internal/adapters/secrets/pass"
	"github.com/bnema/deepseek-chat-cli/internal/ports"
)

var errNoStores = errors.New("secret chain has no stores")

// Store tries its backends in order. Reads fall through to the next backend
// on any failure except cancellation; writes land in the first backend that
// accepts them; deletes are applied to every backend.
type Store struct {
	stores []ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(stores ...ports.SecretStore) (*Store, error) {
	kept := make([]ports.SecretStore, 0, len(stores))
	for _, store := range stores {
		if store != nil {
			kept = append(kept, store)
		}
	}
	if len(kept) == 0 {
		return nil, errNoStores
	}

	return &Store{stores: kept}, nil
}

// NewPassThenFile prefers pass and falls back to a private TOML file.
func NewPassThenFile(secretsPath string) (*Store, error) {
	file, err := filestore.NewStore(secretsPath)
	if err != nil {
		return nil, err
	}

	return NewStore(passstore.NewStore(passstore.DefaultPrefix), file)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var errs []error
	for _, store := range s.stores {
		value, err := store.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if isCancellation(err) {
			return "", err
		}
		errs = append(errs, err)
	}

	if allNotFound(errs) {
		return "", fmt.Errorf("secret %q: %w", key, ports.ErrSecretNotFound)
	}
	return "", fmt.Errorf("get secret %q: %w", key, errors.Join(errs...))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	var errs []error
	for _, store := range s.stores {
		err := store.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if isCancellation(err) {
			return err
		}
		errs = append(errs, err)
	}

	return fmt.Errorf("put secret %q: %w", key, errors.Join(errs...))
}

func (s *Store) Delete(ctx context.Context, key string) error {
	var errs []error
	for _, store := range s.stores {
		err := store.Delete(ctx, key)
		if err == nil || errors.Is(err, passstore.ErrUnavailable) {
			continue
		}
		if isCancellation(err) {
			return err
		}
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("delete secret %q: %w", key, errors.Join(errs...))
	}
	return nil
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// allNotFound treats an unavailable backend as holding nothing.
func allNotFound(errs []error) bool {
	found := false
	for _, err := range errs {
		switch {
		case errors.Is(err, ports.ErrSecretNotFound):
			found = true
		case errors.Is(err, passstore.ErrUnavailable):
		default:
			return false
		}
	}
	return found
}
