// Package config loads runtime settings from the environment, an optional
// .env file and an optional vite.yaml.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/joestump/vite/internal/db"
	"github.com/joestump/vite/internal/shortid"
)

type Config struct {
	// Protocol and Host make up the public address of the service.
	Protocol string
	Host     string

	HTTP struct {
		Addr            string
		ShutdownTimeout time.Duration
	}
	DB struct {
		Driver string
		DSN    string
	}
	Store struct {
		Backend string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Charset    shortid.Flags
	Passphrase string
	Log        struct {
		Level       zapcore.Level
		Development bool
	}
}

// Domain is the prefix of every short link, e.g. "https://vite.lol/".
func (c *Config) Domain() string { return c.Protocol + "://" + c.Host + "/" }

// ShortHost is Domain without the scheme, e.g. "vite.lol/".
func (c *Config) ShortHost() string { return c.Host + "/" }

// Load reads config from environment (VITE_ prefix), an optional .env file
// and an optional vite.yaml. Environment variables win over both files.
func Load() (*Config, error) {
	_ = godotenv.Load(".env") // optional; never overrides the environment

	v := viper.New()
	v.SetEnvPrefix("VITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("vite")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "file:data/vite.db?_pragma=busy_timeout(5000)")
	v.SetDefault("store.backend", "sql")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("charset.numeric", true)
	v.SetDefault("charset.lowercase", true)
	v.SetDefault("charset.uppercase", true)
	v.SetDefault("charset.special", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	cfg := &Config{}
	cfg.Protocol = v.GetString("protocol")
	cfg.Host = v.GetString("host")
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Store.Backend = v.GetString("store.backend")
	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Passphrase = v.GetString("obfuscation.passphrase")

	timeout, err := time.ParseDuration(v.GetString("http.shutdown_timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid VITE_HTTP_SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.HTTP.ShutdownTimeout = timeout

	redisDB, err := cast.ToIntE(v.Get("redis.db"))
	if err != nil {
		return nil, fmt.Errorf("invalid VITE_REDIS_DB: %w", err)
	}
	cfg.Redis.DB = redisDB

	flags := map[string]*bool{
		"numeric":   &cfg.Charset.Numeric,
		"lowercase": &cfg.Charset.Lowercase,
		"uppercase": &cfg.Charset.Uppercase,
		"special":   &cfg.Charset.Special,
	}
	for name, dst := range flags {
		b, err := cast.ToBoolE(v.Get("charset." + name))
		if err != nil {
			return nil, fmt.Errorf("VITE_CHARSET_%s must be a boolean: %w", strings.ToUpper(name), err)
		}
		*dst = b
	}

	level, err := zapcore.ParseLevel(v.GetString("log.level"))
	if err != nil {
		return nil, fmt.Errorf("invalid VITE_LOG_LEVEL: %w", err)
	}
	cfg.Log.Level = level
	dev, err := cast.ToBoolE(v.Get("log.development"))
	if err != nil {
		return nil, fmt.Errorf("VITE_LOG_DEVELOPMENT must be a boolean: %w", err)
	}
	cfg.Log.Development = dev

	if cfg.Protocol == "" {
		return nil, fmt.Errorf("VITE_PROTOCOL is required (http, https)")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("VITE_HOST is required")
	}
	switch cfg.Store.Backend {
	case "sql":
		if !slices.Contains(db.Drivers, cfg.DB.Driver) {
			return nil, fmt.Errorf("unsupported VITE_DB_DRIVER %q (%s)", cfg.DB.Driver, strings.Join(db.Drivers, ", "))
		}
		if cfg.DB.DSN == "" {
			return nil, fmt.Errorf("VITE_DB_DSN is required")
		}
	case "redis":
		if cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("VITE_REDIS_ADDR is required")
		}
	default:
		return nil, fmt.Errorf("unsupported VITE_STORE_BACKEND %q (sql, redis)", cfg.Store.Backend)
	}

	return cfg, nil
}

// NewLogger builds a zap logger at the configured level.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(cfg.Log.Level)
	return zc.Build()
}
