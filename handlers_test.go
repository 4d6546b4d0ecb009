package folio

import (
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamrpratama/folio/content"
	"github.com/imamrpratama/folio/page"
)

func newTestApp(t *testing.T, opts ...func(*SiteConfig)) *App {
	t.Helper()
	dir := t.TempDir()
	cfg := SiteConfig{
		URL:           "https://folio.example",
		DatabasePath:  filepath.Join(dir, "folio.db"),
		AssetsDir:     dir,
		SessionSecret: "test-secret-0123456789abcdef0123",
		LogLevel:      "off",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	a := New(cfg, WithCatalog(testCatalog()))
	require.NoError(t, a.Init())
	t.Cleanup(func() { a.Close() })
	return a
}

// visitor is a browser stand-in that keeps cookies and the CSRF token
// between requests.
type visitor struct {
	t       *testing.T
	app     *App
	ip      string
	cookies map[string]*http.Cookie
}

func newVisitor(t *testing.T, a *App) *visitor {
	return &visitor{t: t, app: a, ip: "192.0.2.10", cookies: make(map[string]*http.Cookie)}
}

func (v *visitor) do(method, target, body string) *httptest.ResponseRecorder {
	v.t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.RemoteAddr = v.ip + ":40000"
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range v.cookies {
		req.AddCookie(c)
		if c.Name == "_csrf" {
			req.Header.Set("X-CSRF-Token", c.Value)
		}
	}
	rec := httptest.NewRecorder()
	v.app.Echo.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		v.cookies[c.Name] = c
	}
	return rec
}

func (v *visitor) load() {
	v.t.Helper()
	rec := v.do(http.MethodGet, "/", "")
	require.Equal(v.t, http.StatusOK, rec.Code)
}

func (v *visitor) state() page.Snapshot {
	v.t.Helper()
	rec := v.do(http.MethodGet, "/api/state", "")
	require.Equal(v.t, http.StatusOK, rec.Code)
	return decodeSnapshot(v.t, rec)
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) page.Snapshot {
	t.Helper()
	var snap page.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	return snap
}

func TestHomeRendersPageAndIssuesCookies(t *testing.T) {
	a := newTestApp(t)
	v := newVisitor(t, a)

	rec := v.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Test Person")
	assert.Contains(t, body, `id="carousel-1"`)
	assert.Contains(t, body, `data-observe-threshold="0.15"`)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Contains(t, v.cookies, "_csrf")
	assert.Contains(t, v.cookies, sessionName)
	assert.Equal(t, "Test Person", a.Config.Name, "site name defaults to the profile name")
}

func TestInitRequiresSessionSecret(t *testing.T) {
	a := New(SiteConfig{DatabasePath: filepath.Join(t.TempDir(), "folio.db")})
	assert.Error(t, a.Init())
}

func TestEventsRequireCSRFToken(t *testing.T) {
	a := newTestApp(t)
	v := newVisitor(t, a)
	v.load()
	delete(v.cookies, "_csrf")

	rec := v.do(http.MethodPost, "/api/events/scroll", `{"offset":10}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestScrollTracksThresholdAndActiveSection(t *testing.T) {
	a := newTestApp(t)
	v := newVisitor(t, a)
	v.load()

	rec := v.do(http.MethodPost, "/api/events/sections", `{"tops":{"home":0,"about":800,"skills":1600}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = v.do(http.MethodPost, "/api/events/scroll", `{"offset":750}`)
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeSnapshot(t, rec)
	assert.Equal(t, page.About, snap.Active)
	assert.True(t, snap.PastThreshold)
	assert.Equal(t, 750.0, snap.Offset)

	rec = v.do(http.MethodPost, "/api/events/scroll", `{"offset":0,"tops":{"projects":2400}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	snap = decodeSnapshot(t, rec)
	assert.Equal(t, page.Home, snap.Active)
	assert.False(t, snap.PastThreshold)
}

func TestScrollRejectsInvalidBodies(t *testing.T) {
	a := newTestApp(t)
	v := newVisitor(t, a)
	v.load()

	for _, body := range []string{
		`{"offset":"far"}`,
		`{"offset":10,"tops":{"footer":5}}`,
		`{"offset":10,"tops":{"about":-5}}`,
		`{"offset":1e12}`,
	} {
		rec := v.do(http.MethodPost, "/api/events/scroll", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	rec := v.do(http.MethodPost, "/api/events/sections", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIntersectRevealsSectionsOnce(t *testing.T) {
	a := newTestApp(t)
	v := newVisitor(t, a)
	v.load()

	rec := v.do(http.MethodPost, "/api/events/intersect",
		`{"entries":[{"id":"about","intersecting":true},{"id":"footer","intersecting":true},{"id":"skills","intersecting":false}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []page.Section{page.About}, decodeSnapshot(t, rec).Visible)

	rec = v.do(http.MethodPost, "/api/events/intersect", `{"entries":[{"id":"about","intersecting":false}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []page.Section{page.About}, decodeSnapshot(t, rec).Visible)

	rec = v.do(http.MethodPost, "/api/events/intersect", `{"entries":[{"id":"nowhere","intersecting":true}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []page.Section{page.About}, decodeSnapshot(t, rec).Visible)
}

func TestNavigateComputesHeaderOffsetTarget(t *testing.T) {
	a := newTestApp(t)
	v := newVisitor(t, a)
	v.load()

	rec := v.do(http.MethodPost, "/menu/toggle/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mobile-menu")
	assert.True(t, v.state().MenuOpen)

	rec = v.do(http.MethodPost, "/api/navigate/about", `{"elementTop":500,"pageOffset":100}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var target page.ScrollRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &target))
	assert.Equal(t, page.ScrollRequest{Section: page.About, Top: 520, Behavior: "smooth"}, target)

	snap := v.state()
	assert.False(t, snap.MenuOpen)
	require.NotNil(t, snap.LastScroll)
	assert.Equal(t, 520.0, snap.LastScroll.Top)

	// same inputs, same destination
	rec = v.do(http.MethodPost, "/api/navigate/about", `{"elementTop":500,"pageOffset":100}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var again page.ScrollRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &again))
	assert.Equal(t, target, again)
}

func TestNavigateSkipsUnknownAndUnmountedSections(t *testing.T) {
	a := newTestApp(t)
	v := newVisitor(t, a)
	v.load()
	v.do(http.MethodPost, "/menu/toggle/", "")

	rec := v.do(http.MethodPost, "/api/navigate/footer", `{"elementTop":10,"pageOffset":0}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = v.do(http.MethodPost, "/api/navigate/skills", `{"pageOffset":0}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	assert.True(t, v.state().MenuOpen, "a skipped navigation leaves the menu alone")
}

func TestCarouselFragments(t *testing.T) {
	a := newTestApp(t)
	v := newVisitor(t, a)
	v.load()

	rec := v.do(http.MethodPost, "/projects/1/carousel/next/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-index="1"`)
	assert.True(t, strings.HasPrefix(rec.Body.String(), `<div class="carousel`))

	v.do(http.MethodPost, "/projects/1/carousel/prev/", "")
	rec = v.do(http.MethodPost, "/projects/1/carousel/prev/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-index="2"`)

	rec = v.do(http.MethodPost, "/projects/1/carousel/jump/0/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-index="0"`)

	rec = v.do(http.MethodPost, "/projects/2/carousel/next/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No preview")
	assert.Equal(t, 0, v.state().Slide(2))

	rec = v.do(http.MethodPost, "/projects/99/carousel/next/", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = v.do(http.MethodPost, "/projects/1/carousel/jump/x/", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, target := range []string{
		"/projects/1/carousel/jump/-1/",
		"/projects/1/carousel/jump/3/",
		"/projects/2/carousel/jump/0/",
	} {
		rec = v.do(http.MethodPost, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}

	// a rejected jump leaves the index where it was, and prev still wraps
	v.do(http.MethodPost, "/projects/1/carousel/prev/", "")
	rec = v.do(http.MethodPost, "/projects/1/carousel/prev/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-index="1"`)
	assert.Equal(t, 1, v.state().Slide(1))
}

func TestFullReloadResetsPageState(t *testing.T) {
	a := newTestApp(t)
	v := newVisitor(t, a)
	v.load()

	v.do(http.MethodPost, "/projects/1/carousel/next/", "")
	v.do(http.MethodPost, "/api/events/intersect", `{"entries":[{"id":"projects","intersecting":true}]}`)
	snap := v.state()
	require.Equal(t, 1, snap.Slide(1))
	require.True(t, snap.IsVisible(page.Projects))

	v.load()
	snap = v.state()
	assert.Equal(t, 0, snap.Slide(1))
	assert.Empty(t, snap.Visible)
	assert.Equal(t, page.Home, snap.Active)
}

func TestExpiredSessionAsksForReload(t *testing.T) {
	a := newTestApp(t)
	v := newVisitor(t, a)
	v.load()
	v.do(http.MethodPost, "/api/events/intersect", `{"entries":[{"id":"about","intersecting":true}]}`)

	time.Sleep(5 * time.Millisecond)
	require.Equal(t, 1, a.Sessions.Sweep(time.Millisecond))

	for _, target := range []string{"/api/events/scroll", "/projects/1/carousel/next/", "/menu/toggle/"} {
		body := ""
		if target == "/api/events/scroll" {
			body = `{"offset":900}`
		}
		rec := v.do(http.MethodPost, target, body)
		assert.Equal(t, http.StatusConflict, rec.Code, target)
	}
	assert.Equal(t, http.StatusConflict, v.do(http.MethodGet, "/api/state", "").Code)
	assert.Zero(t, a.Sessions.Len(), "no fresh state without a reload")

	v.load()
	snap := v.state()
	assert.Empty(t, snap.Visible)
	assert.Equal(t, 1, a.Sessions.Len())
}

func TestEventsBeforeFirstLoadAskForReload(t *testing.T) {
	a := newTestApp(t)
	v := newVisitor(t, a)
	v.do(http.MethodGet, "/api/profile", "")

	rec := v.do(http.MethodPost, "/api/events/scroll", `{"offset":10}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMountTickRestoresHeaderState(t *testing.T) {
	a := newTestApp(t)
	v := newVisitor(t, a)
	v.load()

	// restored scroll position: offset and measured tops arrive together
	rec := v.do(http.MethodPost, "/api/events/scroll", `{"offset":1700,"tops":{"home":0,"about":800,"skills":1600}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeSnapshot(t, rec)
	assert.True(t, snap.PastThreshold)
	assert.Equal(t, page.Skills, snap.Active)
}

func TestSessionsAreIsolated(t *testing.T) {
	a := newTestApp(t)
	alice := newVisitor(t, a)
	bob := newVisitor(t, a)
	alice.load()
	bob.load()

	alice.do(http.MethodPost, "/projects/1/carousel/next/", "")

	assert.Equal(t, 1, alice.state().Slide(1))
	assert.Equal(t, 0, bob.state().Slide(1))
	assert.Equal(t, 2, a.Sessions.Len())
}

func TestEventRateLimit(t *testing.T) {
	a := newTestApp(t, func(c *SiteConfig) { c.EventRateLimit = 2 })
	v := newVisitor(t, a)
	v.load()

	assert.Equal(t, http.StatusOK, v.do(http.MethodPost, "/menu/toggle/", "").Code)
	assert.Equal(t, http.StatusOK, v.do(http.MethodPost, "/menu/toggle/", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, v.do(http.MethodPost, "/menu/toggle/", "").Code)

	other := newVisitor(t, a)
	other.ip = "192.0.2.99"
	other.load()
	assert.Equal(t, http.StatusOK, other.do(http.MethodPost, "/menu/toggle/", "").Code)
}

func TestScrollBurstLeavesClicksAvailable(t *testing.T) {
	a := newTestApp(t)
	v := newVisitor(t, a)
	v.load()

	// five seconds of per-frame ticks, past the click budget
	for i := 0; i < 300; i++ {
		rec := v.do(http.MethodPost, "/api/events/scroll", `{"offset":`+strconv.Itoa(i*4)+`}`)
		require.Equal(t, http.StatusOK, rec.Code, "tick %d", i)
	}

	rec := v.do(http.MethodPost, "/projects/1/carousel/next/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-index="1"`)
	assert.Equal(t, http.StatusOK, v.do(http.MethodPost, "/menu/toggle/", "").Code)
	rec = v.do(http.MethodPost, "/api/navigate/about", `{"elementTop":500,"pageOffset":0}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTickRateLimit(t *testing.T) {
	a := newTestApp(t, func(c *SiteConfig) { c.TickRateLimit = 2 })
	v := newVisitor(t, a)
	v.load()

	assert.Equal(t, http.StatusOK, v.do(http.MethodPost, "/api/events/scroll", `{"offset":1}`).Code)
	assert.Equal(t, http.StatusOK, v.do(http.MethodPost, "/api/events/scroll", `{"offset":2}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, v.do(http.MethodPost, "/api/events/scroll", `{"offset":3}`).Code)
	assert.Equal(t, http.StatusOK, v.do(http.MethodPost, "/menu/toggle/", "").Code)
}

func TestContentAPI(t *testing.T) {
	a := newTestApp(t)
	v := newVisitor(t, a)

	rec := v.do(http.MethodGet, "/api/projects", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var projects []content.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &projects))
	assert.Len(t, projects, 2)

	rec = v.do(http.MethodGet, "/api/projects/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p content.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Gallery", p.Title)

	assert.Equal(t, http.StatusNotFound, v.do(http.MethodGet, "/api/projects/99", "").Code)
	assert.Equal(t, http.StatusBadRequest, v.do(http.MethodGet, "/api/projects/abc", "").Code)

	rec = v.do(http.MethodGet, "/api/skills", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Backend"`)

	rec = v.do(http.MethodGet, "/api/profile", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Test Person"`)
}

func TestAncillaryRoutes(t *testing.T) {
	a := newTestApp(t)
	v := newVisitor(t, a)

	rec := v.do(http.MethodGet, "/sitemap.xml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<loc>https://folio.example/</loc>")
	assert.Contains(t, rec.Body.String(), "<loc>https://folio.example/#projects</loc>")

	rec = v.do(http.MethodGet, "/feed.xml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Gallery</title>")
	assert.Contains(t, rec.Body.String(), "<link>https://example.com/gallery</link>")
	assert.Contains(t, rec.Body.String(), "<link>https://folio.example/api/projects/2</link>")

	rec = v.do(http.MethodGet, "/robots.txt", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sitemap: https://folio.example/sitemap.xml")

	rec = v.do(http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = v.do(http.MethodGet, "/public/folio.js", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/events/scroll")
	assert.Contains(t, rec.Body.String(), "SCROLL_INTERVAL = 100")
	assert.Contains(t, rec.Body.String(), "scrollTick(true)")
	assert.Contains(t, rec.Body.String(), "n < applied")

	rec = v.do(http.MethodGet, "/no/such/page/", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestThumbnails(t *testing.T) {
	a := newTestApp(t)
	v := newVisitor(t, a)

	dir := filepath.Join(a.Config.AssetsDir, "images")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	src := image.NewRGBA(image.Rect(0, 0, 1200, 600))
	for x := 0; x < 1200; x++ {
		src.Set(x, x%600, color.RGBA{R: 200, A: 255})
	}
	f, err := os.Create(filepath.Join(dir, "a.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	rec := v.do(http.MethodGet, "/thumbs/images/a.png", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get(echo.HeaderContentType))
	img, err := jpeg.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 480, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())

	assert.Equal(t, http.StatusNotFound, v.do(http.MethodGet, "/thumbs/images/missing.png", "").Code)

	_, err = a.Thumbs.Get("../../etc/passwd")
	assert.Error(t, err)
}

func TestCrawlersGetRevealedPageWithoutSession(t *testing.T) {
	a := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "is-visible")
	assert.Contains(t, rec.Body.String(), "width: 90%")
	assert.Zero(t, a.Sessions.Len())
}

func TestCrawlerName(t *testing.T) {
	assert.Equal(t, "Googlebot", crawlerName("Mozilla/5.0 (compatible; Googlebot/2.1)"))
	assert.Equal(t, "Other Bot", crawlerName("SomethingBot/1.0"))
	assert.Equal(t, "", crawlerName("Mozilla/5.0 (X11; Linux x86_64) Firefox/130.0"))
}
