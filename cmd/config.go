package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFiles are loaded, in order, when present. Variables already set
// in the process environment win.
var DefaultEnvFiles = []string{".env", ".env.local"}

type DatabaseOptions struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"amendments"`
	SslMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// DSN is the key=value connection string understood by both lib/pq and pgx.
func (d DatabaseOptions) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SslMode)
}

type RateLimitOptions struct {
	Enabled  bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	Rate     string `env:"RATE_LIMIT_RATE" envDefault:"300-M"`
	Storage  string `env:"RATE_LIMIT_STORAGE" envDefault:"memory"` // memory or redis
	RedisURL string `env:"RATE_LIMIT_REDIS_URL"`
}

func (r RateLimitOptions) Validate() error {
	if r.Storage != "memory" && r.Storage != "redis" {
		return fmt.Errorf("rate limit storage must be 'memory' or 'redis', got '%s'", r.Storage)
	}
	if r.Storage == "redis" && r.RedisURL == "" {
		return errors.New("rate limit redis URL is required when storage is 'redis'")
	}
	return nil
}

type Config struct {
	HTTPPort             string        `env:"HTTP_PORT" envDefault:"8080"`
	AppEnv               string        `env:"APP_ENV" envDefault:"development"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret            string        `env:"JWT_SECRET"`
	CapabilityPolicyPath string        `env:"CAPABILITY_POLICY_PATH"`
	BacklogJobSchedule   string        `env:"BACKLOG_JOB_SCHEDULE" envDefault:"0 * * * * *"`
	StaleAfter           time.Duration `env:"STALE_AFTER" envDefault:"72h"`
	MigrateOnStart       bool          `env:"MIGRATE_ON_START" envDefault:"false"`

	DB        DatabaseOptions
	RateLimit RateLimitOptions
}

// LoadConfig reads the env files that exist, then parses the environment.
func LoadConfig(envFiles ...string) (Config, error) {
	if _, err := LoadEnv(envFiles); err != nil {
		return Config{}, err
	}

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadEnv loads the files among envFiles that exist and returns how many
// were loaded. Missing files are not an error.
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

func (c Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.StaleAfter <= 0 {
		errs = append(errs, fmt.Errorf("STALE_AFTER must be positive, got %s", c.StaleAfter))
	}
	if err := c.RateLimit.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("rate limit configuration error: %w", err))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// RedisURL is the limiter store address, empty when counters stay in memory.
func (c Config) RedisURL() string {
	if c.RateLimit.Storage != "redis" {
		return ""
	}
	return c.RateLimit.RedisURL
}
