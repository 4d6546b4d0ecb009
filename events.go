package folio

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/imamrpratama/folio/content"
	"github.com/imamrpratama/folio/page"
	"github.com/imamrpratama/folio/views"
)

type scrollRequest struct {
	Offset float64            `json:"offset" validate:"gte=-100000,lte=100000000"`
	Tops   map[string]float64 `json:"tops" validate:"omitempty,max=5,dive,keys,oneof=home about skills projects contact,endkeys,gte=0"`
}

type sectionsRequest struct {
	Tops map[string]float64 `json:"tops" validate:"required,max=5,dive,keys,oneof=home about skills projects contact,endkeys,gte=0"`
}

type intersectEntry struct {
	ID           string `json:"id" validate:"required,max=32"`
	Intersecting bool   `json:"intersecting"`
}

type intersectRequest struct {
	Entries []intersectEntry `json:"entries" validate:"required,max=16,dive"`
}

type navigateRequest struct {
	ElementTop *float64 `json:"elementTop"`
	PageOffset float64  `json:"pageOffset" validate:"gte=-100000,lte=100000000"`
}

// bindValid binds the request body into req and validates it.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.Validate(req)
}

func sectionTops(raw map[string]float64) map[page.Section]float64 {
	if len(raw) == 0 {
		return nil
	}
	tops := make(map[page.Section]float64, len(raw))
	for k, v := range raw {
		if sec, ok := page.ParseSection(k); ok {
			tops[sec] = v
		}
	}
	return tops
}

// send applies ev to the session's page actor. When a reload in another tab
// replaces the actor between lookup and send, the event goes to the new one.
// A session without a live actor gets ErrExpired.
func (a *App) send(c echo.Context, ev page.Event) (page.Result, error) {
	actor, err := a.actor(c)
	if err != nil {
		return page.Result{}, err
	}
	ctx := c.Request().Context()
	res, err := actor.Send(ctx, ev)
	if errors.Is(err, page.ErrClosed) {
		if actor, err = a.actor(c); err != nil {
			return page.Result{}, err
		}
		res, err = actor.Send(ctx, ev)
	}
	return res, err
}

func (a *App) handleScroll(c echo.Context) error {
	var req scrollRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	res, err := a.send(c, page.ScrollTick{Offset: req.Offset, Tops: sectionTops(req.Tops)})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res.Snapshot)
}

func (a *App) handleSections(c echo.Context) error {
	var req sectionsRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	res, err := a.send(c, page.SectionsMeasured{Tops: sectionTops(req.Tops)})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res.Snapshot)
}

// handleIntersect applies a batch of observer entries in order. Entries for
// unknown sections are dropped.
func (a *App) handleIntersect(c echo.Context) error {
	var req intersectRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	var res page.Result
	applied := false
	for _, e := range req.Entries {
		sec, ok := page.ParseSection(e.ID)
		if !ok {
			continue
		}
		r, err := a.send(c, page.SectionIntersected{Section: sec, Intersecting: e.Intersecting})
		if err != nil {
			return err
		}
		res, applied = r, true
	}
	if !applied {
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
	return c.JSON(http.StatusOK, res.Snapshot)
}

// handleNavigate resolves a header link click to a scroll destination.
// Unknown or unmounted sections produce 204 and the client does nothing.
func (a *App) handleNavigate(c echo.Context) error {
	var req navigateRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	sec, ok := page.ParseSection(c.Param("section"))
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	res, err := a.send(c, page.NavigateTo{Section: sec, ElementTop: req.ElementTop, PageOffset: req.PageOffset})
	if err != nil {
		return err
	}
	if res.Scroll == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, res.Scroll)
}

func (a *App) handleMenuToggle(c echo.Context) error {
	res, err := a.send(c, page.MenuToggled{})
	if err != nil {
		return err
	}
	return Render(c, views.Header(views.HeaderData{Name: a.Config.Name, State: res.Snapshot}))
}

func (a *App) handleCarouselStep(dir page.Direction) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := a.carouselProject(c)
		if err != nil {
			return err
		}
		res, err := a.send(c, page.CarouselAdvance{Project: p.ID, Direction: dir})
		if err != nil {
			return err
		}
		return Render(c, views.Carousel(views.CarouselData{Project: p, Index: res.Snapshot.Slide(p.ID)}))
	}
}

func (a *App) handleCarouselJump(c echo.Context) error {
	p, err := a.carouselProject(c)
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 || index >= p.ImageCount() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid image index")
	}
	res, err := a.send(c, page.CarouselJump{Project: p.ID, Index: index})
	if err != nil {
		return err
	}
	return Render(c, views.Carousel(views.CarouselData{Project: p, Index: res.Snapshot.Slide(p.ID)}))
}

func (a *App) carouselProject(c echo.Context) (content.Project, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return content.Project{}, echo.NewHTTPError(http.StatusBadRequest, "invalid project id")
	}
	p, err := a.Cache.Project(id)
	if errors.Is(err, content.ErrNotFound) {
		return content.Project{}, echo.NewHTTPError(http.StatusNotFound, "project not found")
	}
	return p, err
}
