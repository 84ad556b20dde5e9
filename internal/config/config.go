// Package config loads the application configuration.
//
// Values come from the environment, each with a hard-coded default, so the
// service starts with no configuration at all. Two optional layers sit on
// top:
//  1. a .env file in the working directory, loaded into the process
//     environment by godotenv before main runs;
//  2. a YAML (or .env) file named by CONFIG_PATH or --config, read by
//     cleanenv. Environment variables still win over the file.
package config

import (
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog/log"
)

// Config is the root configuration structure.
// Every field maps to a YAML key and to an environment variable.
type Config struct {
	// Env selects the log format: "dev" (console), "staging" or "prod" (JSON).
	Env string `yaml:"env" env:"ENV" env-default:"dev" validate:"required"`

	// LogLevel overrides the level implied by Env when set.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" validate:"omitempty,oneof=trace debug info warn error"`

	// StaticDir is served at the web root. Empty disables static files.
	StaticDir string `yaml:"static_dir" env:"STATIC_DIR" env-default:"public"`

	HTTPServer HTTPServer `yaml:"http_server"`
	Database   Database   `yaml:"database"`
	CORS       CORS       `yaml:"cors"`
}

// HTTPServer holds settings of the listening HTTP server.
type HTTPServer struct {
	Host            string        `yaml:"host" env:"HTTP_HOST"`
	Port            string        `yaml:"port" env:"PORT" env-default:"3000" validate:"required,numeric"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Addr is the host:port the server listens on.
func (h HTTPServer) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// Database selects the engine and how to reach it.
type Database struct {
	Driver   string `yaml:"driver" env:"DB_DRIVER" env-default:"mysql" validate:"oneof=mysql postgres sqlite3"`
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" validate:"gte=0,lte=65535"`
	User     string `yaml:"user" env:"DB_USER" env-default:"root"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env:"DB_NAME" env-default:"studentdb"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	// Path is the database file for the sqlite3 driver.
	Path string `yaml:"path" env:"DB_PATH" env-default:"students.db"`
}

// CORS lists the origins allowed to call the API from a browser.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*" env-separator:","`
}

// Load reads the configuration. path may be empty, in which case only the
// environment (and defaults) are used.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// MustLoad resolves the optional config file from CONFIG_PATH or the
// --config flag and exits the process if the configuration is invalid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to an optional configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("failed to load configuration")
	}

	return cfg
}
