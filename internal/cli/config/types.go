// Package config provides configuration management for the soundstats CLI.
//
// Configuration is layered with koanf: built-in defaults, then an optional
// soundstats.yaml file, then SOUNDSTATS_* environment variables, then
// command-line flags, each layer overriding the previous one.
package config

import "github.com/soundstats-io/soundstats/internal/report"

// Config holds all CLI configuration options.
type Config struct {
	DatabasePath string `koanf:"database" yaml:"database"`
	ReportsDir   string `koanf:"reports_dir" yaml:"reports_dir"`
	TopCustomers int    `koanf:"top_customers" yaml:"top_customers"`
	TopCountries int    `koanf:"top_countries" yaml:"top_countries"`
	TopCatalog   int    `koanf:"top_catalog" yaml:"top_catalog"`
	OutputFormat string `koanf:"output" yaml:"output"`
	Charts       bool   `koanf:"charts" yaml:"charts"`
	Verbose      bool   `koanf:"verbose" yaml:"verbose"`
}

// Default configuration values. The database path matches where the
// original analysis keeps the Chinook file.
const (
	DefaultDatabasePath = "data/Chinook.sqlite"
	DefaultReportsDir   = "reports"
	DefaultOutput       = "table"
)

// Default returns a Config populated with the documented defaults.
func Default() *Config {
	return &Config{
		DatabasePath: DefaultDatabasePath,
		ReportsDir:   DefaultReportsDir,
		TopCustomers: report.DefaultTopCustomers,
		TopCountries: report.DefaultTopCountries,
		TopCatalog:   report.DefaultTopCatalog,
		OutputFormat: DefaultOutput,
		Charts:       true,
	}
}

// ReportOptions maps the configured ranking sizes onto report options.
func (c *Config) ReportOptions() report.Options {
	return report.Options{
		TopCustomers: c.TopCustomers,
		TopCountries: c.TopCountries,
		TopCatalog:   c.TopCatalog,
	}
}
