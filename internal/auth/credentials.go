package auth

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-filecms/internal/logging"
	"github.com/goliatone/go-filecms/pkg/interfaces"
)

// Credentials maps usernames to bcrypt password hashes.
type Credentials map[string]string

// LoadCredentials reads a YAML mapping of username to bcrypt hash. A missing
// file, malformed YAML or an empty mapping is an error.
func LoadCredentials(path string) (Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCredentialsUnavailable, err)
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrCredentialsUnavailable, path, err)
	}
	if len(creds) == 0 {
		return nil, fmt.Errorf("%w: %s defines no users", ErrCredentialsUnavailable, path)
	}
	return creds, nil
}

// CredentialStore verifies sign-in attempts against a users file. The file
// is re-read on every verification; there is no lockout or rate limiting.
type CredentialStore struct {
	path   string
	logger interfaces.Logger
}

var _ interfaces.CredentialVerifier = (*CredentialStore)(nil)

// CredentialOption mutates credential store configuration.
type CredentialOption func(*CredentialStore)

// WithCredentialLogger overrides the credential store logger.
func WithCredentialLogger(logger interfaces.Logger) CredentialOption {
	return func(s *CredentialStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewCredentialStore loads path once so a missing or malformed file fails
// at startup instead of on the first sign-in.
func NewCredentialStore(path string, opts ...CredentialOption) (*CredentialStore, error) {
	if _, err := LoadCredentials(path); err != nil {
		return nil, err
	}
	store := &CredentialStore{path: path, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store, nil
}

// Verify returns username and true when the password matches the stored
// hash. Usernames match exactly, including case.
func (s *CredentialStore) Verify(ctx context.Context, username, password string) (string, bool) {
	logger := s.logger.WithContext(ctx)

	creds, err := LoadCredentials(s.path)
	if err != nil {
		logger.Error("auth.credentials_unavailable", "error", err)
		return "", false
	}

	hash, ok := creds[username]
	if !ok || !VerifyPassword(hash, password) {
		logger.Info("auth.signin_rejected", "username", username)
		return "", false
	}
	logger.Info("auth.signin_accepted", "username", username)
	return username, true
}

// VerifyPassword compares a bcrypt hash with a plaintext password.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(hash)), []byte(password)) == nil
}

// HashPassword returns a bcrypt hash suitable for the users file. A cost of
// zero or less selects bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
