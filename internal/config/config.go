package config

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "COACHTIP_"

// Defaults applied after the file and environment are read.
const (
	DefaultHost              = "0.0.0.0"
	DefaultLogLevel          = "info"
	DefaultMaxCues           = 2
	MaxMaxCues               = 5
	DefaultTailscaleHostname = "coachtip"
	DefaultTailscaleStateDir = "tsnet-state"
)

type Config struct {
	Server    ServerConfig    `yaml:"server" envPrefix:"SERVER_"`
	Database  DatabaseConfig  `yaml:"database" envPrefix:"DB_"`
	Auth      AuthConfig      `yaml:"auth" envPrefix:"AUTH_"`
	Tailscale TailscaleConfig `yaml:"tailscale" envPrefix:"TAILSCALE_"`
	Log       LogConfig       `yaml:"log" envPrefix:"LOG_"`
	Coaching  CoachingConfig  `yaml:"coaching" envPrefix:"COACHING_"`
}

type ServerConfig struct {
	Host           string   `yaml:"host" env:"HOST"`
	Port           int      `yaml:"port" env:"PORT"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	// MCP serves the MCP streamable HTTP endpoint at /mcp.
	MCP bool `yaml:"mcp" env:"MCP"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	Name     string `yaml:"name" env:"NAME"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`

	// SQLitePath selects the embedded store when no PostgreSQL host is set.
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key" env:"API_KEY"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
	Hostname string `yaml:"hostname" env:"HOSTNAME"`
	StateDir string `yaml:"state_dir" env:"STATE_DIR"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Pretty bool   `yaml:"pretty" env:"PRETTY"`
}

type CoachingConfig struct {
	// MaxCues bounds the form cues in the component breakdown of API
	// responses. The tip string itself always carries at most two.
	MaxCues int `yaml:"max_cues" env:"MAX_CUES"`
}

// UsePostgres reports whether a PostgreSQL host is configured.
func (d DatabaseConfig) UsePostgres() bool {
	return d.Host != ""
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(sslmode),
	}
	return u.String()
}

// Addr returns the host:port the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Logger builds the process logger: JSON lines by default, a console writer
// when Pretty is set.
func (l LogConfig) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil || l.Level == "" {
		level = zerolog.InfoLevel
	}
	if l.Pretty {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Load reads config from a YAML file, then applies environment variable
// overrides, then defaults and validation. An empty path skips the file.
// Env vars use the prefix COACHTIP_ and underscore-separated paths:
//
//	COACHTIP_SERVER_HOST, COACHTIP_SERVER_PORT, COACHTIP_SERVER_ALLOWED_ORIGINS,
//	COACHTIP_SERVER_MCP,
//	COACHTIP_DB_HOST, COACHTIP_DB_PORT, COACHTIP_DB_NAME, COACHTIP_DB_USER,
//	COACHTIP_DB_PASSWORD, COACHTIP_DB_SSLMODE, COACHTIP_DB_SQLITE_PATH,
//	COACHTIP_AUTH_API_KEY,
//	COACHTIP_TAILSCALE_ENABLED, COACHTIP_TAILSCALE_HOSTNAME, COACHTIP_TAILSCALE_STATE_DIR,
//	COACHTIP_LOG_LEVEL, COACHTIP_LOG_PRETTY, COACHTIP_COACHING_MAX_CUES
func Load(path string) (*Config, error) {
	return load(path, (*Config).validate)
}

// LoadCLI reads config the same way as Load but only validates the sections
// the command-line tool uses. A store is optional there.
func LoadCLI(path string) (*Config, error) {
	return load(path, (*Config).validateCommon)
}

func load(path string, validate func(*Config) error) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	cfg.applyDefaults()

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Coaching.MaxCues == 0 {
		c.Coaching.MaxCues = DefaultMaxCues
	}
	if c.Tailscale.Hostname == "" {
		c.Tailscale.Hostname = DefaultTailscaleHostname
	}
	if c.Tailscale.StateDir == "" {
		c.Tailscale.StateDir = DefaultTailscaleStateDir
	}
	if c.Database.UsePostgres() && c.Database.Port == 0 {
		c.Database.Port = 5432
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return errors.New("server.port is required")
	}
	if !c.Database.UsePostgres() && c.Database.SQLitePath == "" {
		return errors.New("database.host or database.sqlite_path is required")
	}
	if c.Auth.APIKey == "" {
		return errors.New("auth.api_key is required")
	}
	return c.validateCommon()
}

func (c *Config) validateCommon() error {
	if c.Database.UsePostgres() {
		if c.Database.Name == "" {
			return errors.New("database.name is required")
		}
		if c.Database.User == "" {
			return errors.New("database.user is required")
		}
	}
	if c.Coaching.MaxCues < 1 || c.Coaching.MaxCues > MaxMaxCues {
		return fmt.Errorf("coaching.max_cues must be between 1 and %d, got %d", MaxMaxCues, c.Coaching.MaxCues)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
