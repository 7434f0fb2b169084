package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// minProdSecretLen is the shortest JWT secret accepted when ENV=prod.
const minProdSecretLen = 16

// devSecret is only usable outside prod.
const devSecret = "dev-secret-change-me"

type Config struct {
	Port string `env:"PORT" envDefault:"8080" validate:"required,numeric"`

	DBHost    string `env:"DB_HOST" envDefault:"localhost" validate:"required"`
	DBPort    string `env:"DB_PORT" envDefault:"5432" validate:"required,numeric"`
	DBName    string `env:"DB_NAME" envDefault:"bookmarks" validate:"required"`
	DBUser    string `env:"DB_USER" envDefault:"bookmarks" validate:"required"`
	DBPass    string `env:"DB_PASS" envDefault:"bookmarks"`
	DBSSLMode string `env:"DB_SSLMODE" envDefault:"disable" validate:"oneof=disable require verify-ca verify-full"`

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int `env:"DB_MAX_OPEN_CONNS" envDefault:"25" validate:"gt=0"`
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int `env:"DB_MAX_IDLE_CONNS" envDefault:"5" validate:"gte=0"`

	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-change-me" validate:"required"`
	// JWTTTL is the access token lifetime, e.g. "15m".
	JWTTTL time.Duration `env:"JWT_TTL" envDefault:"15m" validate:"gt=0"`

	// Env is "dev" (default) or "prod". When "prod", JWT_SECRET must be set, not the
	// dev default, and at least 16 bytes long.
	Env string `env:"ENV" envDefault:"dev" validate:"oneof=dev prod"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	// LogFormat is "text" (default) or "json".
	LogFormat string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`

	// CORSAllowedOrigins is the comma-separated CORS_ALLOWED_ORIGINS. When empty, no CORS
	// headers are sent.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// MaxBodyBytes caps request bodies (default 1 MiB).
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576" validate:"gt=0"`

	MigrateOnStart bool `env:"MIGRATE_ON_START" envDefault:"true"`
}

// Load reads an optional .env file, then the environment, and validates the result.
func Load() (Config, error) {
	// .env is optional; a missing file is not an error
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.CORSAllowedOrigins = parseCORSOrigins(cfg.CORSAllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and the cross-field rules.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.IsProd() {
		if c.JWTSecret == devSecret {
			return errors.New("invalid config: JWT_SECRET must be set in prod")
		}
		if len(c.JWTSecret) < minProdSecretLen {
			return fmt.Errorf("invalid config: JWT_SECRET must be at least %d bytes in prod", minProdSecretLen)
		}
	}

	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return errors.New("invalid config: TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	return nil
}

func (c Config) IsProd() bool { return c.Env == "prod" }

// TLSEnabled reports whether the API should serve HTTPS.
func (c Config) TLSEnabled() bool { return c.TLSCertFile != "" && c.TLSKeyFile != "" }

// DSN is the key/value connection string for lib/pq.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName, c.DBSSLMode)
}

// DatabaseURL is the postgres URL form used by golang-migrate.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

// parseCORSOrigins trims spaces. Empty entries are omitted.
func parseCORSOrigins(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, p := range in {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
