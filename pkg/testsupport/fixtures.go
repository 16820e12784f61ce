// Package testsupport holds fixtures shared by package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// WriteUsersFile writes a users file under dir mapping each username to a
// bcrypt hash of its password. MinCost keeps tests fast.
func WriteUsersFile(tb testing.TB, dir string, passwords map[string]string) string {
	tb.Helper()

	users := make(map[string]string, len(passwords))
	for username, password := range passwords {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			tb.Fatalf("hash password for %s: %v", username, err)
		}
		users[username] = string(hash)
	}

	data, err := yaml.Marshal(users)
	if err != nil {
		tb.Fatalf("marshal users: %v", err)
	}
	path := filepath.Join(dir, "users.yml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		tb.Fatalf("write users file: %v", err)
	}
	return path
}

// SeedDocuments writes each document into dir, creating it when missing.
func SeedDocuments(tb testing.TB, dir string, docs map[string]string) {
	tb.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		tb.Fatalf("create document dir: %v", err)
	}
	for name, content := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			tb.Fatalf("seed %s: %v", name, err)
		}
	}
}
