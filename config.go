package cms

import (
	"strings"

	"github.com/goliatone/go-filecms/internal/runtimeconfig"
)

const (
	EnvironmentProduction = runtimeconfig.EnvironmentProduction
	EnvironmentTest       = runtimeconfig.EnvironmentTest
)

var (
	ErrEnvironmentInvalid      = runtimeconfig.ErrEnvironmentInvalid
	ErrDocumentDirRequired     = runtimeconfig.ErrDocumentDirRequired
	ErrCredentialsFileRequired = runtimeconfig.ErrCredentialsFileRequired
	ErrServerAddrRequired      = runtimeconfig.ErrServerAddrRequired
	ErrSessionCookieRequired   = runtimeconfig.ErrSessionCookieRequired
	ErrSessionTTLInvalid       = runtimeconfig.ErrSessionTTLInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config            = runtimeconfig.Config
	DocumentsConfig   = runtimeconfig.DocumentsConfig
	CredentialsConfig = runtimeconfig.CredentialsConfig
	ServerConfig      = runtimeconfig.ServerConfig
	MarkdownConfig    = runtimeconfig.MarkdownConfig
	LoggingConfig     = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

func normalizeProvider(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
