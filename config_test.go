package folio

import (
	"testing"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
)

func TestSetDefaults(t *testing.T) {
	var cfg SiteConfig
	cfg.URL = "https://folio.example/"
	cfg.setDefaults()

	assert.Equal(t, "https://folio.example", cfg.URL)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "data/folio.db", cfg.DatabasePath)
	assert.Equal(t, "public", cfg.AssetsDir)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdle)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, 240, cfg.EventRateLimit)
	assert.Equal(t, 1200, cfg.TickRateLimit)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("FOLIO_ADDR", ":8080")
	t.Setenv("FOLIO_SITE_URL", "https://me.example")
	t.Setenv("FOLIO_SESSION_SECRET", "s3cret")
	t.Setenv("FOLIO_COOKIE_SECURE", "TRUE")
	t.Setenv("FOLIO_SESSION_IDLE", "45m")
	t.Setenv("FOLIO_EVENT_RATE", "60")
	t.Setenv("FOLIO_TICK_RATE", "600")
	t.Setenv("FOLIO_CACHE_TTL", "not-a-duration")

	cfg := ConfigFromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "https://me.example", cfg.URL)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 45*time.Minute, cfg.SessionIdle)
	assert.Equal(t, 60, cfg.EventRateLimit)
	assert.Equal(t, 600, cfg.TickRateLimit)
	assert.Zero(t, cfg.CatalogCacheTTL, "unparsable durations fall back to the default")
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, log.DEBUG, logLevel("debug"))
	assert.Equal(t, log.WARN, logLevel("WARN"))
	assert.Equal(t, log.ERROR, logLevel("error"))
	assert.Equal(t, log.OFF, logLevel("off"))
	assert.Equal(t, log.INFO, logLevel(""))
}

func TestFeedAndSitemapBuilders(t *testing.T) {
	cat := testCatalog()

	feed := buildFeed("Test", "https://folio.example", "desc", cat.Projects)
	if assert.Len(t, feed.Channel.Items, 2) {
		assert.Equal(t, "https://example.com/gallery", feed.Channel.Items[0].Link)
		assert.Equal(t, []string{"Go", "templ"}, feed.Channel.Items[0].Categories)
		assert.Contains(t, feed.Channel.Items[0].Description, "<strong>three</strong>")
		assert.Equal(t, "https://folio.example/api/projects/2", feed.Channel.Items[1].GUID)
	}

	sm := buildSitemap("https://folio.example", cat)
	// page, four sections below the hero, two projects
	assert.Len(t, sm.URLs, 7)
	assert.Equal(t, "https://folio.example/", sm.URLs[0].Loc)
}
