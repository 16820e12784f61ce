package cms_test

import (
	"errors"
	"testing"

	cms "github.com/goliatone/go-filecms"
)

func TestConfigValidateDefaults(t *testing.T) {
	if err := cms.DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestConfigValidateEnvironment(t *testing.T) {
	cfg := cms.DefaultConfig()
	cfg.Environment = "staging"

	if err := cfg.Validate(); !errors.Is(err, cms.ErrEnvironmentInvalid) {
		t.Fatalf("expected ErrEnvironmentInvalid, got %v", err)
	}
}

func TestConfigSelectsTestPair(t *testing.T) {
	cfg := cms.DefaultConfig()
	cfg.Documents.TestDir = "fixtures/data"
	cfg.Credentials.TestFile = "fixtures/users.yml"

	if cfg.DocumentDir() != "data" || cfg.CredentialsFile() != "users.yml" {
		t.Fatalf("expected production pair, got %q %q", cfg.DocumentDir(), cfg.CredentialsFile())
	}

	cfg.Environment = cms.EnvironmentTest
	if cfg.DocumentDir() != "fixtures/data" || cfg.CredentialsFile() != "fixtures/users.yml" {
		t.Fatalf("expected test pair, got %q %q", cfg.DocumentDir(), cfg.CredentialsFile())
	}
}

func TestConfigValidateTestPairRequired(t *testing.T) {
	cfg := cms.DefaultConfig()
	cfg.Environment = cms.EnvironmentTest
	cfg.Documents.TestDir = ""

	if err := cfg.Validate(); !errors.Is(err, cms.ErrDocumentDirRequired) {
		t.Fatalf("expected ErrDocumentDirRequired, got %v", err)
	}
}

func TestConfigValidateLoggingProviderUnknown(t *testing.T) {
	cfg := cms.DefaultConfig()
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); !errors.Is(err, cms.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}
