/*
Package config holds the server configuration.

COMMAND-LINE FLAGS:
  -addr              HTTP listen address (default: :8080)
  -db                SQLite database path (default: loans.db)
                     Use ":memory:" for an in-memory database
  -slot              Storage slot name (default: clientes)
  -tz                IANA time zone deciding what "today" is (default: Local)
  -monitor-interval  Overdue scan interval, 0 disables (default: 1h)
  -log-level         debug, info, warn, error (default: info)
  -log-json          JSON log output instead of console (default: false)

ENVIRONMENT:
  No environment variables. All config via flags.
*/
package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

type Config struct {
	Addr            string
	DBPath          string
	Slot            string
	Timezone        string
	MonitorInterval time.Duration
	LogLevel        string
	LogJSON         bool

	Location *time.Location
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		Addr:            ":8080",
		DBPath:          "loans.db",
		Slot:            "clientes",
		Timezone:        "Local",
		MonitorInterval: time.Hour,
		LogLevel:        "info",
		Location:        time.Local,
	}
}

// Load parses args (without the program name) on top of Default.
func Load(args []string, output io.Writer) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("loan-ledger", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.Slot, "slot", cfg.Slot, "storage slot name")
	fs.StringVar(&cfg.Timezone, "tz", cfg.Timezone, "time zone for calendar dates")
	fs.DurationVar(&cfg.MonitorInterval, "monitor-interval", cfg.MonitorInterval, "overdue scan interval (0 disables)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "JSON log output")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("-db is required")
	}
	if c.Slot == "" {
		return fmt.Errorf("-slot is required")
	}
	if c.MonitorInterval < 0 {
		return fmt.Errorf("-monitor-interval must not be negative")
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid -tz %q: %w", c.Timezone, err)
	}
	c.Location = loc
	return nil
}
