// Package folio is a single-page portfolio site built with Go, Echo, and templ.
// It serves a profile, skill list, and project gallery, and keeps the page
// behavior (scroll tracking, reveal flags, carousels, navigation) in a
// per-visitor page-state actor driven by small event requests.
package folio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/imamrpratama/folio/content"
	"github.com/imamrpratama/folio/page"
	"github.com/imamrpratama/folio/views"
)

// App is the central folio application. It wires together the store,
// cache, page-state registry, handlers, and middleware.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Cache    *CatalogCache
	Sessions *page.Registry
	Thumbs   *ThumbCache

	clicks       *EventLimiter
	ticks        *EventLimiter
	seed         *content.Catalog
	customRoutes []func(*App)
	stopJanitor  func()
	initialized  bool
}

// New creates a new folio App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens and seeds the store, starts the page-state registry, and
// registers middleware and routes. Start calls it; tests call it directly
// and drive a.Echo with httptest.
func (a *App) Init() error {
	if a.initialized {
		return nil
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("folio: SessionSecret is required")
	}

	a.Echo.Logger.SetLevel(logLevel(a.Config.LogLevel))
	a.Echo.Validator = &requestValidator{v: validator.New()}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.Store = store

	if err := a.seedStore(); err != nil {
		return fmt.Errorf("folio: seed store: %w", err)
	}

	a.Cache = NewCatalogCache(a.Store, a.Config.CatalogCacheTTL)
	cat, err := a.Cache.Catalog()
	if err != nil {
		return fmt.Errorf("folio: %w", err)
	}
	if a.Config.Name == "" {
		a.Config.Name = cat.Profile.Name
	}
	if a.Config.Description == "" {
		a.Config.Description = cat.Profile.Tagline
	}

	a.Sessions = page.NewRegistry(cat.ImageCounts())
	a.stopJanitor = a.Sessions.StartJanitor(a.Config.SessionIdle, time.Minute)
	a.clicks = NewEventLimiter(a.Config.EventRateLimit, time.Minute)
	a.ticks = NewEventLimiter(a.Config.TickRateLimit, time.Minute)
	a.Thumbs = NewThumbCache(a.Config.AssetsDir)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.initialized = true
	return nil
}

// seedStore writes the catalog into the store. An explicit catalog or content
// file always replaces the stored one; otherwise the embedded default is
// written only into an empty store.
func (a *App) seedStore() error {
	cat := a.seed
	if cat == nil && a.Config.ContentPath != "" {
		loaded, err := content.Load(a.Config.ContentPath)
		if err != nil {
			return err
		}
		cat = loaded
	}
	if cat == nil {
		empty, err := a.Store.Empty()
		if err != nil {
			return err
		}
		if !empty {
			return nil
		}
		if cat, err = content.Default(); err != nil {
			return err
		}
	}
	return a.Store.Seed(cat)
}

// Start initializes the app and serves until SIGINT or SIGTERM, then shuts
// the server down gracefully.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	defer a.Close()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errc := make(chan error, 1)
	go func() {
		log.Printf("folio: listening on %s", a.Config.Addr)
		errc <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-stop:
	}

	log.Println("folio: shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := a.Echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("folio: shutdown: %w", err)
	}
	return nil
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.stopJanitor != nil {
		a.stopJanitor()
	}
	for _, l := range []*EventLimiter{a.clicks, a.ticks} {
		if l != nil {
			l.Stop()
		}
	}
	if a.Sessions != nil {
		a.Sessions.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

func (a *App) siteConfig() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	assets := embeddedHandler()
	e.GET("/public/folio.js", assets)
	e.GET("/public/folio.css", assets)
	e.Static("/public", a.Config.AssetsDir)
	e.GET("/thumbs/*", a.handleThumb)

	e.GET("/", a.handleHome)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/healthz", a.handleHealth)

	e.GET("/api/projects", a.handleProjects)
	e.GET("/api/projects/:id", a.handleProject)
	e.GET("/api/skills", a.handleSkills)
	e.GET("/api/profile", a.handleProfile)
	e.GET("/api/state", a.handleState)

	// scroll and observer ticks get their own bucket so they never starve clicks
	ticks := rateLimit(a.ticks)
	e.POST("/api/events/scroll", a.handleScroll, ticks)
	e.POST("/api/events/sections", a.handleSections, ticks)
	e.POST("/api/events/intersect", a.handleIntersect, ticks)

	clicks := rateLimit(a.clicks)
	e.POST("/api/navigate/:section", a.handleNavigate, clicks)
	e.POST("/menu/toggle/", a.handleMenuToggle, clicks)
	e.POST("/projects/:id/carousel/next/", a.handleCarouselStep(page.Forward), clicks)
	e.POST("/projects/:id/carousel/prev/", a.handleCarouselStep(page.Backward), clicks)
	e.POST("/projects/:id/carousel/jump/:index/", a.handleCarouselJump, clicks)
}
