// Package auth manages the TOP Internal API token. The token lives in a
// single file under the user config directory and gates all data fetching:
// without it the application renders its screens empty instead of issuing
// requests.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenFileName is the fixed key the token is stored under.
const TokenFileName = "token"

// EnvVar overrides the stored token when set.
const EnvVar = "TOP_TOKEN"

// TokenProvider defines the interface for obtaining an API token.
type TokenProvider interface {
	GetToken() (string, error)
}

// EnvProvider obtains the token from the TOP_TOKEN environment variable.
type EnvProvider struct{}

// GetToken reads the TOP_TOKEN environment variable.
func (e *EnvProvider) GetToken() (string, error) {
	token := os.Getenv(EnvVar)
	if token == "" {
		return "", errors.New(EnvVar + " environment variable not set or empty")
	}
	return token, nil
}

// FileStore persists the token in a file under the user config directory.
// It is the store `topctl login` writes and `topctl logout` clears.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir. An empty dir resolves to
// <user config dir>/topctl.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		dir = filepath.Join(base, "topctl")
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, TokenFileName)
}

// GetToken reads the stored token. Returns an error if no token is stored.
func (s *FileStore) GetToken() (string, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New("no stored token; run 'topctl login'")
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", errors.New("stored token is empty; run 'topctl login'")
	}
	return token, nil
}

// Save writes the token, creating the config directory if needed. The file
// is user-only: the token is a bearer credential.
func (s *FileStore) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token must not be empty")
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(s.path(), []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an absent token is not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// GetToken attempts to obtain an API token:
//  1. TOP_TOKEN environment variable
//  2. The stored token file
//
// Returns an actionable error when both fail. This is the main entry point
// for token retrieval in the application.
func GetToken(store *FileStore) (string, error) {
	env := &EnvProvider{}
	if token, err := env.GetToken(); err == nil {
		return token, nil
	}

	token, err := store.GetToken()
	if err != nil {
		return "", fmt.Errorf(
			"failed to obtain API token: %w.\n"+
				"Please either:\n"+
				"  1. Run 'topctl login --token <token>', or\n"+
				"  2. Set the %s environment variable",
			err, EnvVar,
		)
	}
	return token, nil
}
