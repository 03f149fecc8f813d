// Package config resolves server settings from defaults, an optional .env
// file and ANALYSIS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/HendryAvila/analysis-support/internal/locale"
	"github.com/HendryAvila/analysis-support/internal/session"
)

// Transports.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Session stores.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config is the resolved server configuration.
type Config struct {
	Transport  string
	HTTPAddr   string
	Store      string
	SQLiteDSN  string
	Locale     locale.Locale
	LogLevel   string
	MECEPolicy string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Transport: TransportStdio,
		HTTPAddr:  "127.0.0.1:8765",
		Store:     StoreMemory,
		SQLiteDSN: session.DefaultSQLiteDSN,
		Locale:    locale.Default,
		LogLevel:  "info",
	}
}

type envSpec struct {
	env   string
	apply func(cfg *Config, raw string) error
}

var specs = []envSpec{
	{env: "ANALYSIS_TRANSPORT", apply: func(cfg *Config, raw string) error {
		cfg.Transport = strings.ToLower(raw)
		return nil
	}},
	{env: "ANALYSIS_HTTP_ADDR", apply: func(cfg *Config, raw string) error {
		cfg.HTTPAddr = raw
		return nil
	}},
	{env: "ANALYSIS_STORE", apply: func(cfg *Config, raw string) error {
		cfg.Store = strings.ToLower(raw)
		return nil
	}},
	{env: "ANALYSIS_SQLITE_DSN", apply: func(cfg *Config, raw string) error {
		cfg.SQLiteDSN = raw
		return nil
	}},
	{env: "ANALYSIS_LOCALE", apply: func(cfg *Config, raw string) error {
		l, err := locale.Parse(raw)
		if err != nil {
			return err
		}
		cfg.Locale = l
		return nil
	}},
	{env: "ANALYSIS_LOG_LEVEL", apply: func(cfg *Config, raw string) error {
		cfg.LogLevel = strings.ToLower(raw)
		return nil
	}},
	{env: "ANALYSIS_MECE_POLICY", apply: func(cfg *Config, raw string) error {
		cfg.MECEPolicy = raw
		return nil
	}},
}

// Load reads envFile (when it exists) into the process environment without
// overriding variables that are already set, then applies ANALYSIS_*
// variables over the defaults. An empty envFile means ".env".
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
	}

	cfg := Default()
	for _, s := range specs {
		raw := strings.TrimSpace(os.Getenv(s.env))
		if raw == "" {
			continue
		}
		if err := s.apply(&cfg, raw); err != nil {
			return Config{}, fmt.Errorf("%s: %w", s.env, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("unsupported transport %q: must be one of: %s, %s", c.Transport, TransportStdio, TransportHTTP)
	}
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("unsupported store %q: must be one of: %s, %s", c.Store, StoreMemory, StoreSQLite)
	}
	if c.Transport == TransportHTTP && c.HTTPAddr == "" {
		return errors.New("http transport requires an address")
	}
	if _, err := locale.Parse(string(c.Locale)); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("unsupported log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
