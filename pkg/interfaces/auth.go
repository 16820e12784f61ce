package interfaces

import "context"

// CredentialVerifier checks a username/password pair and returns the
// signed-in username on success.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (string, bool)
}
