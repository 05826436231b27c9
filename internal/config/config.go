package config

import (
	"strings"
	"time"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

// Storage drivers.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	SQLite    SQLiteConfig    `yaml:"sqlite"`
	Providers ProvidersConfig `yaml:"providers"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Time      TimeConfig      `yaml:"time"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"X-API-Key,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// StorageConfig selects where log entries and goals are persisted.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// SQLiteConfig holds settings for the single-file store.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"nutrition.db"`
}

// ProvidersConfig holds external source settings.
type ProvidersConfig struct {
	LookupOrder   string        `yaml:"lookup_order"   env:"LOOKUP_ORDER"             env-default:"open_food_facts,usda_fooddata,manual"`
	CacheTTL      time.Duration `yaml:"cache_ttl"      env:"PRODUCT_CACHE_TTL"        env-default:"1h"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout"  env:"PROVIDER_FETCH_TIMEOUT"   env-default:"10s"`
	SearchTimeout time.Duration `yaml:"search_timeout" env:"PROVIDER_SEARCH_TIMEOUT"  env-default:"15s"`

	OpenFoodFacts OpenFoodFactsConfig `yaml:"open_food_facts"`
	USDA          USDAConfig          `yaml:"usda"`

	// Order is parsed from LookupOrder during validation. Unknown tags are kept
	// so the resolver can log and skip them.
	Order []string `yaml:"-" env:"-"`
}

// OpenFoodFactsConfig holds Open Food Facts client settings.
type OpenFoodFactsConfig struct {
	BaseURL string  `yaml:"base_url" env:"OFF_BASE_URL" env-default:"https://world.openfoodfacts.org"`
	RPS     float64 `yaml:"rps"      env:"OFF_RPS"      env-default:"10"`
	Burst   int     `yaml:"burst"    env:"OFF_BURST"    env-default:"5"`
}

// USDAConfig holds FoodData Central client settings.
type USDAConfig struct {
	BaseURL string  `yaml:"base_url" env:"USDA_BASE_URL" env-default:"https://api.nal.usda.gov/fdc/v1"`
	APIKey  string  `yaml:"api_key"  env:"USDA_API_KEY"  env-default:"DEMO_KEY"`
	RPS     float64 `yaml:"rps"      env:"USDA_RPS"      env-default:"5"`
	Burst   int     `yaml:"burst"    env:"USDA_BURST"    env-default:"5"`
}

// AuthConfig maps API keys to tenant IDs ("key:tenant,key:tenant" in env).
type AuthConfig struct {
	APIKeys map[string]string `yaml:"api_keys" env:"AUTH_API_KEYS"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig limits requests per API key.
type RateLimitConfig struct {
	Enabled  bool          `yaml:"enabled"  env:"RATE_LIMIT_ENABLED"  env-default:"true"`
	Requests int           `yaml:"requests" env:"RATE_LIMIT_REQUESTS" env-default:"100"`
	Window   time.Duration `yaml:"window"   env:"RATE_LIMIT_WINDOW"   env-default:"60s"`
}

// WebhookConfig enables notifications after an entry is logged.
type WebhookConfig struct {
	Enabled bool   `yaml:"enabled" env:"WEBHOOK_ENABLED" env-default:"false"`
	URL     string `yaml:"url"     env:"WEBHOOK_URL"`
	Style   string `yaml:"style"   env:"WEBHOOK_STYLE"`
}

// TimeConfig holds the reference time zone used to decide "today".
type TimeConfig struct {
	Timezone string `yaml:"timezone" env:"TIMEZONE" env-default:"UTC"`

	// Location is loaded from Timezone during validation.
	Location *time.Location `yaml:"-" env:"-"`
}

// ParseLookupOrder splits a comma-separated list of source tags, dropping
// blanks. An empty string returns a nil slice.
func ParseLookupOrder(raw string) []string {
	var order []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			order = append(order, p)
		}
	}
	return order
}

// UnknownSources returns the tags in order that do not name a known source.
func UnknownSources(order []string) []string {
	var unknown []string
	for _, tag := range order {
		if _, ok := domain.ParseSource(tag); !ok {
			unknown = append(unknown, tag)
		}
	}
	return unknown
}
