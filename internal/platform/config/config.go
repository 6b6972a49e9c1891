// Package config carga la configuración del servicio:
// defaults -> archivo YAML opcional (CONFIG_FILE) -> variables de entorno.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App  string     `yaml:"app"`
	HTTP HTTPConfig `yaml:"http"`
	Log  LogConfig  `yaml:"log"`
	DB   DBConfig   `yaml:"db"`
	IAM  IAMConfig  `yaml:"iam"`
	Blob BlobConfig `yaml:"blob"`
	Auth AuthConfig `yaml:"auth"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// TrustProxy: confiar en X-Forwarded-For (solo detrás de un proxy propio).
	TrustProxy bool `yaml:"trust_proxy"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type DBConfig struct {
	// Driver: postgres | sqlite | "" (sin DB => repos in-memory)
	Driver      string `yaml:"driver"`
	DSN         string `yaml:"dsn"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

type IAMConfig struct {
	BaseURL      string        `yaml:"base_url"`
	APIKey       string        `yaml:"api_key"`
	APIKeyHeader string        `yaml:"api_key_header"`
	Timeout      time.Duration `yaml:"timeout"`
}

type BlobConfig struct {
	// Driver: memory | s3
	Driver string   `yaml:"driver"`
	S3     S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
}

type AuthConfig struct {
	// RefreshPerMinute limita POST /auth/refresh (0 = sin límite).
	RefreshPerMinute int `yaml:"refresh_per_minute"`
}

func Default() Config {
	return Config{
		App: "ternakku",
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log:  LogConfig{Level: "info", Format: "text"},
		IAM:  IAMConfig{Timeout: 5 * time.Second},
		Blob: BlobConfig{Driver: "memory", S3: S3Config{Region: "us-east-1"}},
		Auth: AuthConfig{RefreshPerMinute: 30},
	}
}

// Load aplica defaults, luego CONFIG_FILE (si existe) y por último env.
func Load() (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	str("APP_NAME", &cfg.App)
	// PORT se mantiene por compatibilidad con el despliegue actual.
	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		cfg.HTTP.Addr = ":" + v
	}
	str("HTTP_ADDR", &cfg.HTTP.Addr)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	str("DB_DRIVER", &cfg.DB.Driver)
	str("DB_DSN", &cfg.DB.DSN)
	str("IAM_BASE_URL", &cfg.IAM.BaseURL)
	str("IAM_API_KEY", &cfg.IAM.APIKey)
	str("IAM_API_KEY_HEADER", &cfg.IAM.APIKeyHeader)
	str("BLOB_DRIVER", &cfg.Blob.Driver)
	str("BLOB_S3_BUCKET", &cfg.Blob.S3.Bucket)
	str("BLOB_S3_REGION", &cfg.Blob.S3.Region)
	str("BLOB_S3_ENDPOINT", &cfg.Blob.S3.Endpoint)

	if v := strings.TrimSpace(getenv("DB_AUTO_MIGRATE")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: DB_AUTO_MIGRATE: %w", err)
		}
		cfg.DB.AutoMigrate = b
	}
	if v := strings.TrimSpace(getenv("TRUST_PROXY")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: TRUST_PROXY: %w", err)
		}
		cfg.HTTP.TrustProxy = b
	}
	if v := strings.TrimSpace(getenv("BLOB_S3_PATH_STYLE")); v != "" {
		cfg.Blob.S3.PathStyle = strings.EqualFold(v, "true")
	}
	if v := strings.TrimSpace(getenv("REFRESH_RATE_PER_MIN")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("config: REFRESH_RATE_PER_MIN must be a non-negative integer")
		}
		cfg.Auth.RefreshPerMinute = n
	}

	// Compat: si solo hay DSN, asumimos Postgres como antes.
	if cfg.DB.Driver == "" && cfg.DB.DSN != "" {
		cfg.DB.Driver = "postgres"
	}
	return nil
}
