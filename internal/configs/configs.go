package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type Config struct {
	AppURL                 string
	DatabaseDriver         string
	DatabaseDSN            string
	RateLimit              int
	RedisAddr              string
	RedisKeyPrefix         string
	ShutdownTimeoutSeconds int
	LogLevel               string
	LogFormat              string
	PageSize               int
	Timezone               string
}

// fileConfig mirrors Config for the optional TOML file. Zero values leave
// the default in place.
type fileConfig struct {
	App struct {
		Host     string `toml:"host"`
		Port     int    `toml:"port"`
		PageSize int    `toml:"page_size"`
		Timezone string `toml:"timezone"`
	} `toml:"app"`
	Database struct {
		Driver string `toml:"driver"`
		DSN    string `toml:"dsn"`
	} `toml:"database"`
	RateLimit struct {
		PerMinute int `toml:"per_minute"`
	} `toml:"rate_limit"`
	Redis struct {
		Host      string `toml:"host"`
		Port      int    `toml:"port"`
		KeyPrefix string `toml:"key_prefix"`
	} `toml:"redis"`
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`
	ShutdownTimeoutSeconds int `toml:"shutdown_timeout_seconds"`
}

// Load resolves configuration from defaults, then the TOML file at path (if
// any), then environment variables.
func Load(path string) (Config, error) {
	var file fileConfig
	if strings.TrimSpace(path) != "" {
		content, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if len(content) > 0 {
			if err := toml.Unmarshal(content, &file); err != nil {
				return Config{}, fmt.Errorf("decode toml: %w", err)
			}
		}
	}

	appHost := getEnv("APP_HOST", orDefault(file.App.Host, "127.0.0.1"))
	appPort := getEnv("APP_PORT", strconv.Itoa(orDefaultInt(file.App.Port, 8080)))
	redisHost := getEnv("REDIS_HOST", file.Redis.Host)
	redisPort := getEnv("REDIS_PORT", strconv.Itoa(orDefaultInt(file.Redis.Port, 6379)))

	cfg := Config{
		AppURL:         fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDriver: strings.ToLower(getEnv("DATABASE_DRIVER", orDefault(file.Database.Driver, DriverSQLite))),
		DatabaseDSN:    getEnv("DATABASE_DSN", orDefault(file.Database.DSN, "activities.db")),
		RedisKeyPrefix: getEnv("REDIS_KEY_PREFIX", orDefault(file.Redis.KeyPrefix, "activity_tracker:ratelimit")),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", orDefault(file.Log.Level, "info"))),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", orDefault(file.Log.Format, "text"))),
		Timezone:       getEnv("TIMEZONE", orDefault(file.App.Timezone, "Local")),
	}
	if redisHost != "" {
		cfg.RedisAddr = fmt.Sprintf("%s:%s", redisHost, redisPort)
	}

	var err error
	if cfg.RateLimit, err = getEnvAsInt("RATE_LIMIT_PER_MINUTE", orDefaultInt(file.RateLimit.PerMinute, 120)); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeoutSeconds, err = getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", orDefaultInt(file.ShutdownTimeoutSeconds, 20)); err != nil {
		return Config{}, err
	}
	if cfg.PageSize, err = getEnvAsInt("PAGE_SIZE", orDefaultInt(file.App.PageSize, 15)); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.AppURL == "" {
		return errors.New("APP_HOST/APP_PORT must not be empty (e.g. 127.0.0.1:8080)")
	}
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("invalid DATABASE_DRIVER: %q", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN must not be empty")
	}
	if c.RateLimit <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if c.ShutdownTimeoutSeconds <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	if c.PageSize <= 0 {
		return errors.New("PAGE_SIZE must be greater than 0")
	}
	switch c.LogFormat {
	case "text", "logfmt", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT: %q", c.LogFormat)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	return nil
}

// Location is the zone used to decide which calendar day "today" is.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s", key)
		}
		return i, nil
	}
	return defaultVal, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func orDefaultInt(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}
