// AngelaMos | 2026
// config.go

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	CoverPolicyURL    = "url"
	CoverPolicyUpload = "upload"

	StorageProviderMinio = "minio"
	StorageProviderS3    = "s3"

	minSecretLength = 32
)

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	JWT       JWTConfig       `koanf:"jwt"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
	Storage   StorageConfig   `koanf:"storage"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
}

// RedisConfig is optional. With an empty URL the rate limiter runs on its
// in-process fallback only.
type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

type JWTConfig struct {
	Secret string        `koanf:"secret"`
	Expire time.Duration `koanf:"expire"`
	Issuer string        `koanf:"issuer"`
}

type RateLimitConfig struct {
	Requests     int  `koanf:"requests"`
	Burst        int  `koanf:"burst"`
	AuthRequests int  `koanf:"auth_requests"`
	AuthBurst    int  `koanf:"auth_burst"`
	FailOpen     bool `koanf:"fail_open"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level       string `koanf:"level"`
	Format      string `koanf:"format"`
	RequestFile string `koanf:"request_file"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

// StorageConfig selects how book covers are supplied. CoverPolicy "url"
// accepts a URL string in JSON; "upload" requires a multipart image that is
// pushed to the configured object store.
type StorageConfig struct {
	CoverPolicy    string `koanf:"cover_policy"`
	Provider       string `koanf:"provider"`
	Endpoint       string `koanf:"endpoint"`
	Region         string `koanf:"region"`
	AccessKey      string `koanf:"access_key"`
	SecretKey      string `koanf:"secret_key"`
	Bucket         string `koanf:"bucket"`
	Folder         string `koanf:"folder"`
	UseSSL         bool   `koanf:"use_ssl"`
	PublicBaseURL  string `koanf:"public_base_url"`
	MaxUploadBytes int64  `koanf:"max_upload_bytes"`
}

var (
	cfg  *Config
	once sync.Once
)

func Load(configPath string) (*Config, error) {
	var loadErr error

	once.Do(func() {
		cfg, loadErr = load(configPath, ".env")
	})

	if loadErr != nil {
		return nil, loadErr
	}

	return cfg, nil
}

func Get() *Config {
	if cfg == nil {
		panic("config not loaded: call Load() first")
	}
	return cfg
}

func load(configPath, dotenvPath string) (*Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load dotenv: %w", err)
		}
	}

	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKeyReplacer), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	c := &Config{}
	if err := k.Unmarshal("", c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":        "Bookshelf API",
		"app.version":     "1.0.0",
		"app.environment": "development",

		"server.host":             "0.0.0.0",
		"server.port":             3000,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",

		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",
		"database.auto_migrate":       true,

		"redis.pool_size":      10,
		"redis.min_idle_conns": 2,

		"jwt.expire": "168h",
		"jwt.issuer": "bookshelf-api",

		"rate_limit.requests":      100,
		"rate_limit.burst":         20,
		"rate_limit.auth_requests": 10,
		"rate_limit.auth_burst":    5,
		"rate_limit.fail_open":     true,

		"cors.allowed_origins": []string{"*"},
		"cors.allowed_methods": []string{
			"GET",
			"POST",
			"PATCH",
			"DELETE",
			"OPTIONS",
		},
		"cors.allowed_headers": []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		"cors.allow_credentials": false,
		"cors.max_age":           300,

		"log.level":        "info",
		"log.format":       "json",
		"log.request_file": "logs/requestLogs.txt",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "bookshelf-api",

		"storage.cover_policy":     CoverPolicyURL,
		"storage.provider":         StorageProviderMinio,
		"storage.region":           "us-east-1",
		"storage.bucket":           "book-covers",
		"storage.folder":           "book_covers",
		"storage.use_ssl":          false,
		"storage.max_upload_bytes": 5 << 20,
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"DATABASE_URL":                "database.url",
	"DATABASE_AUTO_MIGRATE":       "database.auto_migrate",
	"REDIS_URL":                   "redis.url",
	"ENVIRONMENT":                 "app.environment",
	"HOST":                        "server.host",
	"PORT":                        "server.port",
	"LOG_LEVEL":                   "log.level",
	"LOG_FORMAT":                  "log.format",
	"REQUEST_LOG_FILE":            "log.request_file",
	"JWT_SECRET":                  "jwt.secret",
	"JWT_EXPIRE":                  "jwt.expire",
	"JWT_ISSUER":                  "jwt.issuer",
	"RATE_LIMIT_REQUESTS":         "rate_limit.requests",
	"RATE_LIMIT_BURST":            "rate_limit.burst",
	"RATE_LIMIT_AUTH_REQUESTS":    "rate_limit.auth_requests",
	"RATE_LIMIT_AUTH_BURST":       "rate_limit.auth_burst",
	"OTEL_ENDPOINT":               "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel.endpoint",
	"OTEL_SERVICE_NAME":           "otel.service_name",
	"OTEL_ENABLED":                "otel.enabled",
	"OTEL_INSECURE":               "otel.insecure",
	"OTEL_SAMPLE_RATE":            "otel.sample_rate",
	"COVER_POLICY":                "storage.cover_policy",
	"STORAGE_PROVIDER":            "storage.provider",
	"STORAGE_ENDPOINT":            "storage.endpoint",
	"STORAGE_REGION":              "storage.region",
	"STORAGE_ACCESS_KEY":          "storage.access_key",
	"STORAGE_SECRET_KEY":          "storage.secret_key",
	"STORAGE_BUCKET":              "storage.bucket",
	"STORAGE_USE_SSL":             "storage.use_ssl",
	"STORAGE_PUBLIC_BASE_URL":     "storage.public_base_url",
}

func envKeyReplacer(s string) string {
	if mapped, ok := envKeyMap[s]; ok {
		return mapped
	}
	return ""
}

func validate(c *Config) error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if len(c.JWT.Secret) < minSecretLength {
		return fmt.Errorf(
			"JWT_SECRET must be at least %d bytes",
			minSecretLength,
		)
	}

	if c.JWT.Expire <= 0 {
		return fmt.Errorf("jwt.expire must be positive")
	}

	if c.CORS.AllowCredentials {
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf(
					"CORS wildcard '*' cannot be used with AllowCredentials",
				)
			}
		}
	}

	if c.App.Environment == "production" {
		if c.Otel.Enabled && c.Otel.Insecure {
			return fmt.Errorf("OTEL_INSECURE must be false in production")
		}
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	switch c.Storage.CoverPolicy {
	case CoverPolicyURL:
	case CoverPolicyUpload:
		if err := validateStorage(c.Storage); err != nil {
			return err
		}
	default:
		return fmt.Errorf(
			"storage.cover_policy must be %q or %q, got %q",
			CoverPolicyURL,
			CoverPolicyUpload,
			c.Storage.CoverPolicy,
		)
	}

	return nil
}

func validateStorage(s StorageConfig) error {
	if s.Provider != StorageProviderMinio && s.Provider != StorageProviderS3 {
		return fmt.Errorf(
			"storage.provider must be %q or %q, got %q",
			StorageProviderMinio,
			StorageProviderS3,
			s.Provider,
		)
	}

	if s.Provider == StorageProviderMinio && s.Endpoint == "" {
		return fmt.Errorf("STORAGE_ENDPOINT is required for minio")
	}

	if s.Bucket == "" {
		return fmt.Errorf("STORAGE_BUCKET is required for cover uploads")
	}

	if s.MaxUploadBytes <= 0 {
		return fmt.Errorf("storage.max_upload_bytes must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) UploadsCovers() bool {
	return c.Storage.CoverPolicy == CoverPolicyUpload
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
