package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store the logger in command context.
type loggerKey struct{}

// envPrefix prefixes every configuration environment variable,
// e.g. SOUNDSTATS_DATABASE, SOUNDSTATS_REPORTS_DIR.
const envPrefix = "SOUNDSTATS_"

var configFileUsed string

// findConfigFile finds the config file to use.
// Priority: explicit path > soundstats.yaml > soundstats.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"soundstats.yaml", "soundstats.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	configFileUsed = ""

	// 1. Defaults
	defaults := Default()
	if err := k.Load(confmap.Provider(map[string]any{
		"database":      defaults.DatabasePath,
		"reports_dir":   defaults.ReportsDir,
		"top_customers": defaults.TopCustomers,
		"top_countries": defaults.TopCountries,
		"top_catalog":   defaults.TopCatalog,
		"output":        defaults.OutputFormat,
		"charts":        defaults.Charts,
		"verbose":       defaults.Verbose,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file (optional unless explicitly requested). Once a file is
	// selected, a parse failure is fatal; running on defaults while silently
	// ignoring a broken file would mask the mistake.
	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		configFileUsed = path
	} else if cfgFile != "" {
		return nil, fmt.Errorf("config file not found: %s", cfgFile)
	}

	// 3. Environment variables: SOUNDSTATS_REPORTS_DIR -> reports_dir
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// 4. Command-line flags (only those actually set)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			// Transform kebab-case flag names to snake_case config keys
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
