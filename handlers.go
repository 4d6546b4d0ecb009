package folio

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/imamrpratama/folio/content"
	"github.com/imamrpratama/folio/page"
	"github.com/imamrpratama/folio/views"
)

// handleHome renders the full page. A full load starts a fresh page state
// for the session. Crawlers get a fully revealed page and no session.
func (a *App) handleHome(c echo.Context) error {
	cat, err := a.Cache.Catalog()
	if err != nil {
		return err
	}

	var snap page.Snapshot
	if name := crawlerName(c.Request().UserAgent()); name != "" {
		c.Logger().Debugf("crawler %s fetched the page", name)
		snap = crawlerSnapshot(cat.ImageCounts())
	} else {
		sid, err := SessionID(c)
		if err != nil {
			return err
		}
		snap, err = a.Sessions.Reset(sid).Snapshot(c.Request().Context())
		if err != nil {
			return err
		}
	}
	return Render(c, views.Page(views.PageData{
		Site:    a.siteConfig(),
		Catalog: cat,
		State:   snap,
		CSRF:    CsrfToken(c),
		Year:    time.Now().Year(),
	}))
}

func (a *App) handleProjects(c echo.Context) error {
	cat, err := a.Cache.Catalog()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat.Projects)
}

func (a *App) handleProject(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project id")
	}
	p, err := a.Cache.Project(id)
	if errors.Is(err, content.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "project not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (a *App) handleSkills(c echo.Context) error {
	cat, err := a.Cache.Catalog()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat.Skills)
}

func (a *App) handleProfile(c echo.Context) error {
	cat, err := a.Cache.Catalog()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat.Profile)
}

func (a *App) handleState(c echo.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return err
	}
	snap, err := actor.Snapshot(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

// actor returns the page actor of the requesting session.
func (a *App) actor(c echo.Context) (*page.Actor, error) {
	sid, err := SessionID(c)
	if err != nil {
		return nil, err
	}
	return a.Sessions.Get(sid)
}

func (a *App) handleHealth(c echo.Context) error {
	if err := a.Store.Ping(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "store unavailable")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": a.Sessions.Len(),
	})
}

// handleRobots serves robots.txt from the assets dir, or a default that
// points at the sitemap.
func (a *App) handleRobots(c echo.Context) error {
	path := filepath.Join(a.Config.AssetsDir, "robots.txt")
	if _, err := os.Stat(path); err == nil {
		return c.File(path)
	}
	return c.String(http.StatusOK, "User-agent: *\nAllow: /\n\nSitemap: "+a.Config.URL+"/sitemap.xml\n")
}

func (a *App) handleSitemap(c echo.Context) error {
	cat, err := a.Cache.Catalog()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, cat)
}

func (a *App) handleFeed(c echo.Context) error {
	cat, err := a.Cache.Catalog()
	if err != nil {
		return err
	}
	return a.renderRSS(c, cat.Projects)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if !ok && (errors.Is(err, page.ErrClosed) || errors.Is(err, page.ErrExpired)) {
		he, ok = echo.NewHTTPError(http.StatusConflict, "page state expired, reload"), true
	}
	if ok && he.Code == http.StatusNotFound && !wantsJSON(c) {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.siteConfig()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		if !wantsJSON(c) {
			_ = RenderStatus(c, code, views.ServerError(a.siteConfig()))
			return
		}
	}
	if ok {
		err = he
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func wantsJSON(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}
