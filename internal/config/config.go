package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Auth      AuthConfig      `yaml:"auth"`
	Contracts ContractsConfig `yaml:"contracts"`
	Events    EventsConfig    `yaml:"events"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DBConfig selects the store. Driver is "sqlite" or "pgx".
type DBConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// LogConfig controls log output. An empty Path logs to stdout.
type LogConfig struct {
	Level      string `yaml:"level"`
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type ContractsConfig struct {
	RequireFullPayment bool `yaml:"require_full_payment"`
}

// EventsConfig enables notification fan-out when AMQPURL is set.
type EventsConfig struct {
	AMQPURL  string `yaml:"amqp_url"`
	Exchange string `yaml:"exchange"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from defaults, an optional YAML file, an optional
// .env file, and environment variables, in increasing precedence.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Driver: "sqlite",
			DSN:    "gigboard.db",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Events: EventsConfig{
			Exchange: "gigboard.events",
		},
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if path := os.Getenv("GIGBOARD_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.Auth.JWTSecret == "" {
		return Config{}, errors.New("GIGBOARD_JWT_SECRET is required")
	}
	if cfg.Auth.TokenTTL <= 0 {
		return Config{}, errors.New("auth.token_ttl must be positive")
	}
	switch cfg.DB.Driver {
	case "sqlite", "pgx":
	default:
		return Config{}, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("GIGBOARD_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("GIGBOARD_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid GIGBOARD_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if driver := os.Getenv("GIGBOARD_DB_DRIVER"); driver != "" {
		cfg.DB.Driver = driver
	}
	if dsn := os.Getenv("GIGBOARD_DB_DSN"); dsn != "" {
		cfg.DB.DSN = dsn
	}
	if level := os.Getenv("GIGBOARD_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if path := os.Getenv("GIGBOARD_LOG_PATH"); path != "" {
		cfg.Log.Path = path
	}
	if secret := os.Getenv("GIGBOARD_JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if ttl := os.Getenv("GIGBOARD_TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("invalid GIGBOARD_TOKEN_TTL: %w", err)
		}
		cfg.Auth.TokenTTL = d
	}
	if full := os.Getenv("GIGBOARD_REQUIRE_FULL_PAYMENT"); full != "" {
		b, err := strconv.ParseBool(full)
		if err != nil {
			return fmt.Errorf("invalid GIGBOARD_REQUIRE_FULL_PAYMENT: %w", err)
		}
		cfg.Contracts.RequireFullPayment = b
	}
	if url := os.Getenv("GIGBOARD_AMQP_URL"); url != "" {
		cfg.Events.AMQPURL = url
	}
	if exchange := os.Getenv("GIGBOARD_AMQP_EXCHANGE"); exchange != "" {
		cfg.Events.Exchange = exchange
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
