// Package config loads PeerFlow server configuration from a TOML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all PeerFlow server configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Auth    AuthConfig    `toml:"auth"`
	Groups  GroupsConfig  `toml:"groups"`
	Recur   RecurConfig   `toml:"recur"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// AuthConfig holds JWT settings.
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret,omitempty"`

	// TokenTTLHours is the signed token lifetime in hours.
	TokenTTLHours int `toml:"token_ttl_hours"`
}

// GroupsConfig holds group defaults.
type GroupsConfig struct {
	// DefaultThreshold is the settlement threshold, in minor units,
	// for groups created without one.
	DefaultThreshold int64 `toml:"default_threshold"`
}

// RecurConfig holds the recurring-expense scheduler settings.
type RecurConfig struct {
	// CronSpec is the cron expression for the posting sweep.
	CronSpec string `toml:"cron_spec"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server:  ServerConfig{Addr: ":8080"},
		Storage: StorageConfig{DBPath: "./data/peerflow.db"},
		Auth:    AuthConfig{TokenTTLHours: 72},
		Groups:  GroupsConfig{DefaultThreshold: 50000},
		Recur:   RecurConfig{CronSpec: "@hourly"},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads the config file at path, falling back to defaults if the
// path is empty or the file does not exist, then applies environment
// overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.Auth.JWTSecret == "" {
		return cfg, fmt.Errorf("jwt secret is required (auth.jwt_secret or PEERFLOW_JWT_SECRET)")
	}
	return cfg, nil
}

// TokenTTL returns the token lifetime as a duration.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

// applyEnv overlays PEERFLOW_* environment variables onto the config.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PEERFLOW_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("PEERFLOW_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("PEERFLOW_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("PEERFLOW_DEFAULT_THRESHOLD"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Groups.DefaultThreshold = n
		}
	}
	if v := os.Getenv("PEERFLOW_RECUR_CRON"); v != "" {
		cfg.Recur.CronSpec = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
