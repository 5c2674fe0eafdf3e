package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is read when C4_CONFIG is unset
const DefaultPath = "config.yml"

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds the server configuration
type Config struct {
	Host      string `yaml:"host" env:"C4_HOST" env-default:""`
	Port      int    `yaml:"port" env:"C4_PORT" env-default:"8080"`
	LogLevel  string `yaml:"log-level" env:"C4_LOG_LEVEL" env-default:"info"`
	Storage   string `yaml:"storage" env:"C4_STORAGE" env-default:"memory"`
	StaticDir string `yaml:"static-dir" env:"C4_STATIC_DIR" env-default:""`
	Redis     Redis  `yaml:"redis"`
}

// Redis configures the redis storage backend
type Redis struct {
	URL          string        `yaml:"url" env:"C4_REDIS_URL" env-default:"redis://localhost:6379/0"`
	PoolSize     int           `yaml:"pool-size" env:"C4_REDIS_POOL_SIZE" env-default:"10"`
	MinIdleConns int           `yaml:"min-idle-conns" env:"C4_REDIS_MIN_IDLE_CONNS" env-default:"2"`
	GameTTL      time.Duration `yaml:"game-ttl" env:"C4_GAME_TTL" env-default:"24h"`
}

// Load reads the YAML file named by C4_CONFIG (or DefaultPath) when it exists,
// then applies environment overrides
func Load() (*Config, error) {
	path := os.Getenv("C4_CONFIG")
	if path == "" {
		path = DefaultPath
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit file path. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if _, statErr := os.Stat(path); statErr == nil {
		err = cleanenv.ReadConfig(path, cfg)
	} else if errors.Is(statErr, os.ErrNotExist) {
		err = cleanenv.ReadEnv(cfg)
	} else {
		err = statErr
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values cleanenv cannot
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Addr returns the host:port the server listens on
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SlogLevel converts LogLevel to a slog.Level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}

// Usage describes the environment variables Config reads
func Usage() string {
	var b strings.Builder
	cleanenv.FUsage(&b, &Config{}, nil)()
	return b.String()
}
