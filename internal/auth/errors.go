package auth

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Flash messages set by the guard and the sign-in flow.
const (
	MessageAuthRequired       = "You must be signed in to do that."
	MessageWelcome            = "Welcome!"
	MessageSignedOut          = "You have been signed out."
	MessageInvalidCredentials = "Invalid Credentials"
)

var (
	// ErrAuthRequired is returned by RequireSignedIn for anonymous sessions.
	ErrAuthRequired = errors.New("auth: sign in required")
	// ErrCredentialsUnavailable is returned when the users file cannot be loaded.
	ErrCredentialsUnavailable = errors.New("auth: credentials unavailable")
)

func authRequiredError() error {
	return goerrors.Wrap(ErrAuthRequired, goerrors.CategoryAuth, MessageAuthRequired).
		WithTextCode("AUTH_REQUIRED")
}

// IsAuthRequired reports whether err came from the sign-in guard.
func IsAuthRequired(err error) bool {
	return errors.Is(err, ErrAuthRequired)
}
