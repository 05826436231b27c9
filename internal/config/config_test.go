package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH_API_KEYS", "key_abc123:tenant_alice,key_xyz789:tenant_bob")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// isolate runs the test in an empty working directory without CONFIG_PATH.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DOTENV_PATH", "")
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"

storage:
  driver: "postgres"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10

providers:
  lookup_order: "usda_fooddata, open_food_facts"
  cache_ttl: "30m"
  usda:
    api_key: "secret"

auth:
  api_keys:
    key_abc123: tenant_alice

log:
  level: "debug"
  format: "text"

webhook:
  enabled: true
  url: "https://ntfy.sh/meals"

time:
  timezone: "Europe/Berlin"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := isolate(t)
	t.Setenv("CONFIG_PATH", writeFile(t, dir, "config.yaml", validYAML))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	if cfg.Storage.Driver != StoragePostgres {
		t.Errorf("storage.driver = %q, want postgres", cfg.Storage.Driver)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}

	if cfg.Providers.CacheTTL != 30*time.Minute {
		t.Errorf("providers.cache_ttl = %v, want 30m", cfg.Providers.CacheTTL)
	}
	if got := cfg.Providers.Order; len(got) != 2 || got[0] != "usda_fooddata" || got[1] != "open_food_facts" {
		t.Errorf("providers.order = %v", got)
	}
	if cfg.Providers.USDA.APIKey != "secret" {
		t.Errorf("providers.usda.api_key = %q", cfg.Providers.USDA.APIKey)
	}
	if cfg.Providers.OpenFoodFacts.BaseURL != "https://world.openfoodfacts.org" {
		t.Errorf("providers.open_food_facts.base_url = %q (default)", cfg.Providers.OpenFoodFacts.BaseURL)
	}

	if cfg.Auth.APIKeys["key_abc123"] != "tenant_alice" {
		t.Errorf("auth.api_keys = %v", cfg.Auth.APIKeys)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if !cfg.Webhook.Enabled {
		t.Error("webhook.enabled should be true")
	}
	if cfg.Time.Location == nil || cfg.Time.Location.String() != "Europe/Berlin" {
		t.Errorf("time.location = %v", cfg.Time.Location)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := isolate(t)
	t.Setenv("CONFIG_PATH", writeFile(t, dir, "config.yaml", validYAML))
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	isolate(t)
	validEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Storage.Driver != StorageMemory {
		t.Errorf("storage.driver = %q, want memory (default)", cfg.Storage.Driver)
	}
	if len(cfg.Auth.APIKeys) != 2 || cfg.Auth.APIKeys["key_xyz789"] != "tenant_bob" {
		t.Errorf("auth.api_keys = %v", cfg.Auth.APIKeys)
	}
	if len(cfg.Providers.Order) != 3 {
		t.Errorf("providers.order = %v, want default of 3 sources", cfg.Providers.Order)
	}
	if cfg.Time.Location != time.UTC {
		t.Errorf("time.location = %v, want UTC", cfg.Time.Location)
	}
}

func TestLoad_Dotenv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, ".env", "AUTH_API_KEYS=dotenv_key:tenant_dotenv\nSERVER_PORT=7070\n")
	t.Setenv("AUTH_API_KEYS", "")
	os.Unsetenv("AUTH_API_KEYS")
	t.Setenv("SERVER_PORT", "6060")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Auth.APIKeys["dotenv_key"] != "tenant_dotenv" {
		t.Errorf("auth.api_keys = %v, want value from .env", cfg.Auth.APIKeys)
	}
	if cfg.Server.Port != 6060 {
		t.Errorf("server.port = %d, want 6060 (process env wins over .env)", cfg.Server.Port)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	isolate(t)
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_ExplicitDotenvNotFound(t *testing.T) {
	isolate(t)
	t.Setenv("DOTENV_PATH", "/nonexistent/.env")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit dotenv path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := isolate(t)
	t.Setenv("CONFIG_PATH", writeFile(t, dir, "config.yaml", `{{{invalid yaml`))

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Providers.Order) != 3 {
		t.Errorf("order = %v", cfg.Providers.Order)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown storage driver", func(c *Config) { c.Storage.Driver = "redis" }},
		{"postgres without dsn", func(c *Config) { c.Storage.Driver = StoragePostgres }},
		{"sqlite without path", func(c *Config) { c.Storage.Driver = StorageSQLite; c.SQLite.Path = " " }},
		{"no api keys", func(c *Config) { c.Auth.APIKeys = nil }},
		{"empty tenant", func(c *Config) { c.Auth.APIKeys = map[string]string{"k": ""} }},
		{"empty lookup order", func(c *Config) { c.Providers.LookupOrder = " , " }},
		{"only unknown sources", func(c *Config) { c.Providers.LookupOrder = "edamam,nutritionix" }},
		{"zero cache ttl", func(c *Config) { c.Providers.CacheTTL = 0 }},
		{"zero fetch timeout", func(c *Config) { c.Providers.FetchTimeout = 0 }},
		{"rate limit without requests", func(c *Config) { c.RateLimit.Requests = 0 }},
		{"webhook without url", func(c *Config) { c.Webhook.Enabled = true }},
		{"unknown webhook style", func(c *Config) { c.Webhook.Style = "slack" }},
		{"unknown timezone", func(c *Config) { c.Time.Timezone = "Mars/Olympus" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidate_RateLimitDisabledIgnoresValues(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit = RateLimitConfig{Enabled: false}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseLookupOrder(t *testing.T) {
	got := ParseLookupOrder(" open_food_facts ,, usda_fooddata,")
	if len(got) != 2 || got[0] != "open_food_facts" || got[1] != "usda_fooddata" {
		t.Errorf("ParseLookupOrder = %v", got)
	}
	if got := ParseLookupOrder(""); got != nil {
		t.Errorf("ParseLookupOrder(\"\") = %v, want nil", got)
	}
}

func TestUnknownSources(t *testing.T) {
	got := UnknownSources([]string{"manual", "edamam", "usda_fooddata"})
	if len(got) != 1 || got[0] != "edamam" {
		t.Errorf("UnknownSources = %v, want [edamam]", got)
	}
}

func validConfig() Config {
	return Config{
		Storage: StorageConfig{Driver: StorageMemory},
		SQLite:  SQLiteConfig{Path: "nutrition.db"},
		Providers: ProvidersConfig{
			LookupOrder:   "open_food_facts,usda_fooddata,manual",
			CacheTTL:      time.Hour,
			FetchTimeout:  10 * time.Second,
			SearchTimeout: 15 * time.Second,
		},
		Auth:      AuthConfig{APIKeys: map[string]string{"key": "tenant"}},
		RateLimit: RateLimitConfig{Enabled: true, Requests: 100, Window: time.Minute},
		Time:      TimeConfig{Timezone: "UTC"},
	}
}
