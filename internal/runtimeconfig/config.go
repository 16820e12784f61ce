package runtimeconfig

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	EnvironmentProduction = "production"
	EnvironmentTest       = "test"
)

var ErrEnvironmentInvalid = errors.New("cms config: environment must be production or test")
var ErrDocumentDirRequired = errors.New("cms config: document directory is required")
var ErrCredentialsFileRequired = errors.New("cms config: credentials file is required")
var ErrServerAddrRequired = errors.New("cms config: server address is required")
var ErrSessionCookieRequired = errors.New("cms config: session cookie name is required")
var ErrSessionTTLInvalid = errors.New("cms config: session ttl must be zero or positive")
var ErrLoggingProviderRequired = errors.New("cms config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("cms config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("cms config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("cms config: logging format is invalid")

// Config aggregates everything the document CMS needs at startup. Field tags
// follow mapstructure so viper can unmarshal YAML files and env overrides.
type Config struct {
	Environment string            `mapstructure:"environment"`
	Documents   DocumentsConfig   `mapstructure:"documents"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Server      ServerConfig      `mapstructure:"server"`
	Markdown    MarkdownConfig    `mapstructure:"markdown"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// DocumentsConfig holds the production and test document directories.
type DocumentsConfig struct {
	Dir     string `mapstructure:"dir"`
	TestDir string `mapstructure:"test_dir"`
}

// CredentialsConfig holds the production and test users files.
type CredentialsConfig struct {
	File     string `mapstructure:"file"`
	TestFile string `mapstructure:"test_file"`
}

// ServerConfig captures HTTP listener and session cookie settings.
type ServerConfig struct {
	Addr          string        `mapstructure:"addr"`
	SessionCookie string        `mapstructure:"session_cookie"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
}

// MarkdownConfig mirrors interfaces.ParseOptions.
type MarkdownConfig struct {
	Extensions []string `mapstructure:"extensions"`
	HardWraps  bool     `mapstructure:"hard_wraps"`
	SafeMode   bool     `mapstructure:"safe_mode"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string `mapstructure:"provider"`
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	AddSource bool   `mapstructure:"add_source"`
}

// DefaultConfig returns the production layout: ./data for documents and
// ./users.yml for credentials, with test/ siblings for the test pair.
func DefaultConfig() Config {
	return Config{
		Environment: EnvironmentProduction,
		Documents: DocumentsConfig{
			Dir:     "data",
			TestDir: filepath.Join("test", "data"),
		},
		Credentials: CredentialsConfig{
			File:     "users.yml",
			TestFile: filepath.Join("test", "users.yml"),
		},
		Server: ServerConfig{
			Addr:          ":4567",
			SessionCookie: "cms_session",
			SessionTTL:    24 * time.Hour,
		},
		Markdown: MarkdownConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// IsTest reports whether the test-isolated document/credential pair is active.
func (cfg Config) IsTest() bool {
	return normalize(cfg.Environment) == EnvironmentTest
}

// DocumentDir resolves the document directory for the active environment.
func (cfg Config) DocumentDir() string {
	if cfg.IsTest() {
		return strings.TrimSpace(cfg.Documents.TestDir)
	}
	return strings.TrimSpace(cfg.Documents.Dir)
}

// CredentialsFile resolves the users file for the active environment.
func (cfg Config) CredentialsFile() string {
	if cfg.IsTest() {
		return strings.TrimSpace(cfg.Credentials.TestFile)
	}
	return strings.TrimSpace(cfg.Credentials.File)
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	switch normalize(cfg.Environment) {
	case EnvironmentProduction, EnvironmentTest:
	default:
		return fmt.Errorf("%w: %q", ErrEnvironmentInvalid, cfg.Environment)
	}
	if cfg.DocumentDir() == "" {
		return ErrDocumentDirRequired
	}
	if cfg.CredentialsFile() == "" {
		return ErrCredentialsFileRequired
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return ErrServerAddrRequired
	}
	if strings.TrimSpace(cfg.Server.SessionCookie) == "" {
		return ErrSessionCookieRequired
	}
	if cfg.Server.SessionTTL < 0 {
		return ErrSessionTTLInvalid
	}

	provider := normalize(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if provider != "console" && provider != "gologger" {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
