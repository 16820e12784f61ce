// Package commands implements the cms command line.
//
// Configuration is resolved with the following precedence (highest first):
//
//	1. Command-line flags (--addr, --env, --log-level, ...)
//	2. CMS_<SECTION>_<OPTION> environment variables (CMS_SERVER_ADDR, CMS_DOCUMENTS_DIR)
//	3. The YAML file given with --config or CMS_CONFIG_FILE
//	4. cms.DefaultConfig()
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	cms "github.com/goliatone/go-filecms"
)

const envPrefix = "CMS"

type rootOptions struct {
	configFile string
	v          *viper.Viper
}

// NewRootCommand builds the cms command tree with its own viper instance.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	root := &cobra.Command{
		Use:           "cms",
		Short:         "Serve and manage a directory of text and markdown documents",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.initConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (can also use CMS_CONFIG_FILE)")
	flags.String("env", "", "environment: production or test")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("log-provider", "", "logging provider (console, gologger)")
	bindFlags(opts.v, flags, map[string]string{
		"environment":      "env",
		"logging.level":    "log-level",
		"logging.provider": "log-provider",
	})

	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newHashPasswordCommand())
	return root
}

func (o *rootOptions) initConfig() error {
	setDefaults(o.v, cms.DefaultConfig())

	o.v.SetEnvPrefix(envPrefix)
	o.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	o.v.AutomaticEnv()

	path := o.configFile
	if path == "" {
		path = os.Getenv(envPrefix + "_CONFIG_FILE")
	}
	if path == "" {
		return nil
	}
	o.v.SetConfigFile(path)
	if err := o.v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// loadConfig decodes the merged viper state into a cms.Config.
func (o *rootOptions) loadConfig() (cms.Config, error) {
	var cfg cms.Config
	if err := o.v.Unmarshal(&cfg); err != nil {
		return cms.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cms.Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it during
// Unmarshal.
func setDefaults(v *viper.Viper, cfg cms.Config) {
	v.SetDefault("environment", cfg.Environment)
	v.SetDefault("documents.dir", cfg.Documents.Dir)
	v.SetDefault("documents.test_dir", cfg.Documents.TestDir)
	v.SetDefault("credentials.file", cfg.Credentials.File)
	v.SetDefault("credentials.test_file", cfg.Credentials.TestFile)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.session_cookie", cfg.Server.SessionCookie)
	v.SetDefault("server.session_ttl", cfg.Server.SessionTTL)
	v.SetDefault("markdown.extensions", cfg.Markdown.Extensions)
	v.SetDefault("markdown.hard_wraps", cfg.Markdown.HardWraps)
	v.SetDefault("markdown.safe_mode", cfg.Markdown.SafeMode)
	v.SetDefault("logging.provider", cfg.Logging.Provider)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.add_source", cfg.Logging.AddSource)
}

// bindFlags binds config keys to flag names. Unknown flags panic since they
// are programming errors.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		flag := flags.Lookup(name)
		if flag == nil {
			panic(fmt.Sprintf("commands: unknown flag %q", name))
		}
		if err := v.BindPFlag(key, flag); err != nil {
			panic(err)
		}
	}
}
