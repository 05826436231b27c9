package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zone database for minimal images
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres storage driver")
		}
	case StorageSQLite:
		if strings.TrimSpace(c.SQLite.Path) == "" {
			return fmt.Errorf("sqlite.path is required for the sqlite storage driver")
		}
	default:
		return fmt.Errorf("storage.driver must be one of memory, postgres, sqlite (got %q)", c.Storage.Driver)
	}

	if len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("auth.api_keys must contain at least one key")
	}
	for key, tenant := range c.Auth.APIKeys {
		if strings.TrimSpace(key) == "" || strings.TrimSpace(tenant) == "" {
			return fmt.Errorf("auth.api_keys: keys and tenant IDs must not be empty")
		}
	}

	if err := c.Providers.validate(); err != nil {
		return fmt.Errorf("providers: %w", err)
	}

	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("rate_limit: requests and window must be > 0")
	}

	if c.Webhook.Enabled && c.Webhook.URL == "" {
		return fmt.Errorf("webhook.url is required when webhooks are enabled")
	}
	switch c.Webhook.Style {
	case "", "ntfy", "gotify":
	default:
		return fmt.Errorf("webhook.style must be ntfy or gotify (got %q)", c.Webhook.Style)
	}

	loc, err := time.LoadLocation(c.Time.Timezone)
	if err != nil {
		return fmt.Errorf("time.timezone: %w", err)
	}
	c.Time.Location = loc

	return nil
}

func (p *ProvidersConfig) validate() error {
	if p.FetchTimeout <= 0 || p.SearchTimeout <= 0 {
		return fmt.Errorf("timeouts must be > 0")
	}
	if p.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be > 0 (got %s)", p.CacheTTL)
	}

	p.Order = ParseLookupOrder(p.LookupOrder)
	if len(p.Order) == 0 {
		return fmt.Errorf("lookup_order must name at least one source")
	}
	if len(UnknownSources(p.Order)) == len(p.Order) {
		return fmt.Errorf("lookup_order %q contains no known source", p.LookupOrder)
	}
	return nil
}
