// Package config loads runtime settings for the catalog server and the
// apidir client from an optional config file, APIDIR_* environment
// variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"APIDirectory/internal/catalog"
)

const EnvPrefix = "APIDIR"

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
	SourceMemory   = "memory"
)

type SourceConfig struct {
	Kind  string `mapstructure:"kind"`
	Path  string `mapstructure:"path"`
	DSN   string `mapstructure:"dsn"`
	Table string `mapstructure:"table"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
}

type RateLimitConfig struct {
	PerMinute int `mapstructure:"per_minute"`
}

type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

// Config holds every setting; the server and the client each read the
// parts they need.
type Config struct {
	Addr          string          `mapstructure:"addr"`
	Source        SourceConfig    `mapstructure:"source"`
	LoadTimeout   time.Duration   `mapstructure:"load_timeout"`
	Watch         bool            `mapstructure:"watch"`
	Metrics       MetricsConfig   `mapstructure:"metrics"`
	RateLimit     RateLimitConfig `mapstructure:"ratelimit"`
	CORS          CORSConfig      `mapstructure:"cors"`
	ServerURL     string          `mapstructure:"server_url"`
	ClientTimeout time.Duration   `mapstructure:"client_timeout"`
	Debug         bool            `mapstructure:"debug"`
}

// Init points viper at the config file. With an explicit path the file must
// exist; otherwise .apidir.yaml is looked up in the working directory and
// the home directory, and its absence is not an error.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".apidir")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load applies defaults and unmarshals the merged settings.
func Load() (Config, error) {
	viper.SetDefault("addr", ":3001")
	viper.SetDefault("source.kind", SourceFile)
	viper.SetDefault("source.path", "data/freeAPIs.json")
	viper.SetDefault("source.dsn", "")
	viper.SetDefault("source.table", catalog.DefaultTable)
	viper.SetDefault("load_timeout", 5*time.Second)
	viper.SetDefault("watch", false)
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.token", "")
	viper.SetDefault("ratelimit.per_minute", 0)
	viper.SetDefault("cors.origins", []string{"*"})
	viper.SetDefault("server_url", "http://localhost:3001")
	viper.SetDefault("client_timeout", 5*time.Second)
	viper.SetDefault("debug", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Source.Kind {
	case SourceFile:
		if c.Source.Path == "" {
			return fmt.Errorf("source.path is required for source kind %q", c.Source.Kind)
		}
	case SourcePostgres, SourceSQLite:
		if c.Source.DSN == "" {
			return fmt.Errorf("source.dsn is required for source kind %q", c.Source.Kind)
		}
	case SourceMemory:
	default:
		return fmt.Errorf("unknown source kind %q (want file, postgres, sqlite or memory)", c.Source.Kind)
	}

	if c.LoadTimeout <= 0 {
		return fmt.Errorf("load_timeout must be positive")
	}
	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("ratelimit.per_minute must not be negative")
	}
	return nil
}

// OpenStore builds the catalog store the config describes. The returned
// close func is never nil.
func (c Config) OpenStore() (catalog.Store, func() error, error) {
	noop := func() error { return nil }

	switch c.Source.Kind {
	case SourceFile:
		return catalog.NewFileStore(c.Source.Path), noop, nil
	case SourceMemory:
		return catalog.NewMemStore(catalog.DemoEntries()...), noop, nil
	case SourcePostgres, SourceSQLite:
		driver := catalog.DriverPostgres
		if c.Source.Kind == SourceSQLite {
			driver = catalog.DriverSQLite
		}
		s, err := catalog.OpenSQLStore(driver, c.Source.DSN, c.Source.Table)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown source kind %q", c.Source.Kind)
	}
}
