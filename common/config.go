// /home/krylon/go/src/github.com/blicero/sitfit/common/config.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 19:02:47 krylon>

package common

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/blicero/krylib"
	"github.com/gookit/validate"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Names of the storage backends.
const (
	BackendSqlite = "sqlite"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Names of the restore policies for timers that ran out while the
// application was not running.
const (
	PolicyDiscard = "discard"
	PolicyFire    = "fire"
)

// LogConfig controls the loggers.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required|in:TRACE,DEBUG,INFO,WARN,ERROR,CRITICAL,CANTHAPPEN,SILENT"`
}

// RedisConfig describes how to reach the redis server when it is used
// as the storage backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db" validate:"min:0"`
	Key      string `mapstructure:"key" yaml:"key"`
}

// StorageConfig selects the medium the timer state is persisted to.
type StorageConfig struct {
	Backend string      `mapstructure:"backend" yaml:"backend" validate:"required|in:sqlite,file,redis"`
	Path    string      `mapstructure:"path" yaml:"path"`
	Redis   RedisConfig `mapstructure:"redis" yaml:"redis"`
}

// AlarmConfig holds the timings of the alarm.
type AlarmConfig struct {
	AutoDismiss time.Duration `mapstructure:"autoDismiss" yaml:"autoDismiss"`
	Snooze      time.Duration `mapstructure:"snooze" yaml:"snooze"`
}

// RestoreConfig decides what happens to timers that ran out while the
// application was not running.
type RestoreConfig struct {
	Policy string `mapstructure:"policy" yaml:"policy" validate:"required|in:discard,fire"`
}

// SoundConfig configures the external player used to play alarm sounds.
type SoundConfig struct {
	Player string `mapstructure:"player" yaml:"player"`
	Dir    string `mapstructure:"dir" yaml:"dir"`
}

// MetricsConfig toggles the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Config is the complete runtime configuration of the daemon.
type Config struct {
	Listen  string        `mapstructure:"listen" yaml:"listen" validate:"required"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Alarm   AlarmConfig   `mapstructure:"alarm" yaml:"alarm"`
	Restore RestoreConfig `mapstructure:"restore" yaml:"restore"`
	Sound   SoundConfig   `mapstructure:"sound" yaml:"sound"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

var defaults = map[string]any{
	"listen":                 fmt.Sprintf("localhost:%d", DefaultPort),
	"log.level":              "DEBUG",
	"storage.backend":        BackendSqlite,
	"storage.path":           "",
	"storage.redis.addr":     "localhost:6379",
	"storage.redis.password": "",
	"storage.redis.db":       0,
	"storage.redis.key":      BlobKey,
	"alarm.autoDismiss":      "300s",
	"alarm.snooze":           "300s",
	"restore.policy":         PolicyDiscard,
	"sound.player":           "paplay",
	"sound.dir":              "/usr/share/sounds/freedesktop/stereo",
	"metrics.enabled":        true,
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Listen: fmt.Sprintf("localhost:%d", DefaultPort),
		Log:    LogConfig{Level: "DEBUG"},
		Storage: StorageConfig{
			Backend: BackendSqlite,
			Redis: RedisConfig{
				Addr: "localhost:6379",
				Key:  BlobKey,
			},
		},
		Alarm: AlarmConfig{
			AutoDismiss: time.Second * 300,
			Snooze:      time.Second * 300,
		},
		Restore: RestoreConfig{Policy: PolicyDiscard},
		Sound: SoundConfig{
			Player: "paplay",
			Dir:    "/usr/share/sounds/freedesktop/stereo",
		},
		Metrics: MetricsConfig{Enabled: true},
	}
} // func DefaultConfig() *Config

// LoadConfig reads the configuration from the YAML file at path. Values
// missing from the file are taken from the defaults, environment variables
// prefixed with SITFIT_ override both (e.g. SITFIT_STORAGE_BACKEND).
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	var (
		err    error
		exists bool
		cfg    Config
		v      = viper.New()
	)

	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.SetConfigType("yaml")
	v.SetEnvPrefix("SITFIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if exists, err = krylib.Fexists(path); err != nil {
			return nil, fmt.Errorf("Cannot check if %s exists: %w", path, err)
		} else if exists {
			v.SetConfigFile(path)
			if err = v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("Cannot read configuration file %s: %w",
					path,
					err)
			}
		}
	}

	if err = v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("Cannot decode configuration: %w", err)
	}

	cfg.Log.Level = strings.ToUpper(cfg.Log.Level)
	cfg.Storage.Backend = strings.ToLower(cfg.Storage.Backend)
	cfg.Restore.Policy = strings.ToLower(cfg.Restore.Policy)

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
} // func LoadConfig(path string) (*Config, error)

// Validate checks the configuration for values that make no sense.
func (c *Config) Validate() error {
	var parts = []any{
		c,
		&c.Log,
		&c.Storage,
		&c.Storage.Redis,
		&c.Restore,
	}

	for _, p := range parts {
		var v = validate.Struct(p)
		if !v.Validate() {
			return fmt.Errorf("Invalid configuration: %s", v.Errors.Error())
		}
	}

	if c.Alarm.AutoDismiss <= 0 {
		return errors.New("Invalid configuration: alarm.autoDismiss must be positive")
	} else if c.Alarm.Snooze <= 0 {
		return errors.New("Invalid configuration: alarm.snooze must be positive")
	} else if c.Alarm.Snooze%time.Second != 0 {
		return errors.New("Invalid configuration: alarm.snooze must be a whole number of seconds")
	} else if c.Storage.Backend == BackendRedis && c.Storage.Redis.Addr == "" {
		return errors.New("Invalid configuration: storage.redis.addr is required for the redis backend")
	}

	return nil
} // func (c *Config) Validate() error

// StoragePath returns the path of the storage file, falling back to the
// default location for the configured backend.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}

	switch c.Storage.Backend {
	case BackendFile:
		return BlobPath
	default:
		return DbPath
	}
} // func (c *Config) StoragePath() string

// WriteDefaultConfig writes the default configuration to path as YAML.
// An existing file is left alone.
func WriteDefaultConfig(path string) error {
	var (
		err    error
		exists bool
		buf    []byte
		cfg    = DefaultConfig()
		tree   = map[string]any{
			"listen": cfg.Listen,
			"log":    map[string]any{"level": cfg.Log.Level},
			"storage": map[string]any{
				"backend": cfg.Storage.Backend,
				"path":    cfg.Storage.Path,
				"redis": map[string]any{
					"addr":     cfg.Storage.Redis.Addr,
					"password": cfg.Storage.Redis.Password,
					"db":       cfg.Storage.Redis.DB,
					"key":      cfg.Storage.Redis.Key,
				},
			},
			"alarm": map[string]any{
				"autoDismiss": cfg.Alarm.AutoDismiss.String(),
				"snooze":      cfg.Alarm.Snooze.String(),
			},
			"restore": map[string]any{"policy": cfg.Restore.Policy},
			"sound": map[string]any{
				"player": cfg.Sound.Player,
				"dir":    cfg.Sound.Dir,
			},
			"metrics": map[string]any{"enabled": cfg.Metrics.Enabled},
		}
	)

	if exists, err = krylib.Fexists(path); err != nil {
		return err
	} else if exists {
		return fmt.Errorf("Configuration file %s already exists", path)
	} else if buf, err = yaml.Marshal(tree); err != nil {
		return fmt.Errorf("Cannot serialize default configuration: %w", err)
	} else if err = os.WriteFile(path, buf, 0600); err != nil {
		return fmt.Errorf("Cannot write configuration to %s: %w", path, err)
	}

	return nil
} // func WriteDefaultConfig(path string) error
