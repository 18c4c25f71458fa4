package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT" env-default:"5000"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBHost      string `env:"DB_HOST" env-default:"localhost:5432"`
	DBName      string `env:"DB_NAME" env-default:"places"`
	DBSSLMode   string `env:"DB_SSLMODE" env-default:"disable"`

	DBMaxConns        int32         `env:"DB_MAX_CONNS" env-default:"10"`
	DBMinConns        int32         `env:"DB_MIN_CONNS" env-default:"0"`
	DBMaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" env-default:"1h"`

	JWTSecret string        `env:"JWT_KEY"`
	JWTIssuer string        `env:"JWT_ISSUER" env-default:"places-service"`
	JWTTTL    time.Duration `env:"JWT_TTL" env-default:"12h"`

	AMapAPIKey  string `env:"AMAP_API_KEY"`
	AMapBaseURL string `env:"AMAP_BASE_URL" env-default:"https://restapi.amap.com"`

	UploadDir      string `env:"UPLOAD_DIR" env-default:"uploads/images"`
	UploadMaxBytes int64  `env:"UPLOAD_MAX_BYTES" env-default:"500000"`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"json"`
}

var ErrJWTSecretRequired = errors.New("JWT_KEY is required")

// Load reads environment variables, optionally from a .env file if present.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if cfg.JWTSecret == "" {
		return Config{}, ErrJWTSecretRequired
	}
	if cfg.JWTTTL <= 0 {
		cfg.JWTTTL = 12 * time.Hour
	}
	return cfg, nil
}

// DSN returns DATABASE_URL when set, otherwise a postgres URL assembled from
// the DB_* parts.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   c.DBHost,
		Path:   "/" + c.DBName,
	}
	if c.DBUser != "" {
		if c.DBPassword != "" {
			u.User = url.UserPassword(c.DBUser, c.DBPassword)
		} else {
			u.User = url.User(c.DBUser)
		}
	}
	if c.DBSSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.DBSSLMode}}.Encode()
	}
	return u.String()
}
