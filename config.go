package folio

import (
	"strings"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/imamrpratama/folio/content"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string // Site name (defaults to the profile name)
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Meta description (defaults to the profile tagline)

	Addr         string // Listen address (default ":3000")
	ContentPath  string // YAML catalog; empty uses the embedded catalog
	DatabasePath string // SQLite catalog store (default "data/folio.db")
	AssetsDir    string // Served under /public (default "public")

	SessionSecret string        // Required: session cookie secret
	CookieSecure  bool          // Set true for HTTPS
	SessionIdle   time.Duration // Idle page state is dropped after this (default 30min)

	CatalogCacheTTL time.Duration // Catalog cache TTL (default 5min)
	EventRateLimit  int           // Click events per IP per minute (default 240)
	TickRateLimit   int           // Scroll and observer events per IP per minute (default 1200)
	LogLevel        string        // debug, info, warn, error (default "info")
}

func (c *SiteConfig) setDefaults() {
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/folio.db"
	}
	if c.AssetsDir == "" {
		c.AssetsDir = "public"
	}
	if c.SessionIdle == 0 {
		c.SessionIdle = 30 * time.Minute
	}
	if c.CatalogCacheTTL == 0 {
		c.CatalogCacheTTL = 5 * time.Minute
	}
	if c.EventRateLimit == 0 {
		c.EventRateLimit = 240
	}
	if c.TickRateLimit == 0 {
		c.TickRateLimit = 1200
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// ConfigFromEnv reads FOLIO_* environment variables.
func ConfigFromEnv() SiteConfig {
	return SiteConfig{
		Name:            EnvOr("FOLIO_SITE_NAME", ""),
		URL:             EnvOr("FOLIO_SITE_URL", ""),
		Description:     EnvOr("FOLIO_SITE_DESCRIPTION", ""),
		Addr:            EnvOr("FOLIO_ADDR", ""),
		ContentPath:     EnvOr("FOLIO_CONTENT", ""),
		DatabasePath:    EnvOr("FOLIO_DB", ""),
		AssetsDir:       EnvOr("FOLIO_ASSETS", ""),
		SessionSecret:   EnvOr("FOLIO_SESSION_SECRET", ""),
		CookieSecure:    strings.EqualFold(EnvOr("FOLIO_COOKIE_SECURE", ""), "true"),
		SessionIdle:     envDuration("FOLIO_SESSION_IDLE"),
		CatalogCacheTTL: envDuration("FOLIO_CACHE_TTL"),
		EventRateLimit:  envInt("FOLIO_EVENT_RATE"),
		TickRateLimit:   envInt("FOLIO_TICK_RATE"),
		LogLevel:        EnvOr("FOLIO_LOG_LEVEL", ""),
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCatalog seeds the store from c instead of reading ContentPath.
func WithCatalog(c *content.Catalog) Option {
	return func(a *App) {
		a.seed = c
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

func logLevel(s string) log.Lvl {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
