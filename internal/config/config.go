package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variable names before they are
// mapped onto Config. PLANT_DATABASE_SSL_MODE becomes database.ssl_mode.
const EnvPrefix = "PLANT_"

type Config struct {
	App        AppConfig        `koanf:"app" validate:"required"`
	Database   DatabaseConfig   `koanf:"database" validate:"required"`
	JWT        JWTConfig        `koanf:"jwt" validate:"required"`
	Attendance AttendanceConfig `koanf:"attendance" validate:"required"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int      `koanf:"port" validate:"required,min=1,max=65535"`
	Env                string   `koanf:"env" validate:"required,oneof=development staging production test"`
	LogLevel           string   `koanf:"log_level" validate:"required,oneof=debug info warn error"`
	Timezone           string   `koanf:"timezone" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

type DatabaseConfig struct {
	Driver      string `koanf:"driver" validate:"required,oneof=postgres mysql"`
	Host        string `koanf:"host" validate:"required"`
	Port        int    `koanf:"port" validate:"required,min=1,max=65535"`
	User        string `koanf:"user" validate:"required"`
	Password    string `koanf:"password" validate:"required"`
	Name        string `koanf:"name" validate:"required"`
	SSLMode     string `koanf:"ssl_mode"`
	MaxConns    int    `koanf:"max_conns" validate:"min=1"`
	MinConns    int    `koanf:"min_conns" validate:"min=0,ltefield=MaxConns"`
	AutoMigrate bool   `koanf:"auto_migrate"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string        `koanf:"secret" validate:"required,min=16"`
	AccessExpiration time.Duration `koanf:"access_expiration" validate:"required"`
}

// AttendanceConfig controls leave defaults and the background jobs.
type AttendanceConfig struct {
	DefaultLeaves        int    `koanf:"default_leaves" validate:"min=0"`
	InitSchedule         string `koanf:"init_schedule"`
	AbsenceSweepSchedule string `koanf:"absence_sweep_schedule"`
}

// Default returns the configuration used when no environment overrides exist.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Port:               8080,
			Env:                "development",
			LogLevel:           "info",
			Timezone:           "UTC",
			CORSAllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Name:     "plant_management",
			SSLMode:  "disable",
			MaxConns: 25,
			MinConns: 5,
		},
		JWT: JWTConfig{
			AccessExpiration: 12 * time.Hour,
		},
		Attendance: AttendanceConfig{
			DefaultLeaves: 12,
			InitSchedule:  "5 0 * * *",
		},
	}
}

// Load reads .env (if present) and PLANT_* environment variables on top of
// Default, then validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded, using process environment", "error", err)
	}

	k := koanf.New(".")
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// envKey maps PLANT_APP_LOG_LEVEL to app.log_level: the first segment after
// the prefix names the section, the rest is the field.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// listKeys are split on commas.
var listKeys = map[string]bool{
	"app.cors_allowed_origins": true,
}

func envKeyValue(key, value string) (string, interface{}) {
	k := envKey(key)
	if !listKeys[k] {
		return k, value
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return k, out
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid PLANT_APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}
	return nil
}

// Location returns the plant's timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DatabaseURL returns the connection string for the configured driver.
func (c *Config) DatabaseURL() string {
	if c.Database.Driver == "mysql" {
		dsn := mysqldriver.NewConfig()
		dsn.User = c.Database.User
		dsn.Passwd = c.Database.Password
		dsn.Net = "tcp"
		dsn.Addr = net.JoinHostPort(c.Database.Host, strconv.Itoa(c.Database.Port))
		dsn.DBName = c.Database.Name
		dsn.ParseTime = true
		dsn.Loc = time.UTC
		// Charset never fails.
		_ = dsn.Apply(mysqldriver.Charset("utf8mb4", ""))
		return dsn.FormatDSN()
	}

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		c.Database.User,
		url.QueryEscape(c.Database.Password),
		net.JoinHostPort(c.Database.Host, strconv.Itoa(c.Database.Port)),
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel converts LogLevel to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.App.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
