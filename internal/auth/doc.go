// Package auth verifies credentials from a static users file and tracks the
// signed-in user and one-shot flash message of each browser session.
package auth
