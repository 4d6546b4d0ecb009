package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamrpratama/folio/content"
	"github.com/imamrpratama/folio/page"
)

func TestCarouselMarksCurrentSlide(t *testing.T) {
	var buf bytes.Buffer
	p := content.Project{ID: 4, Title: "Villa", Images: []string{"images/a.png", "images/b.png"}}
	require.NoError(t, Carousel(CarouselData{Project: p, Index: 1}).Render(context.Background(), &buf))

	html := buf.String()
	assert.Contains(t, html, `id="carousel-4"`)
	assert.Contains(t, html, `data-index="1"`)
	assert.Contains(t, html, `data-carousel="/projects/4/carousel/next/"`)
	assert.Contains(t, html, `data-carousel="/projects/4/carousel/jump/1/"`)
	assert.Equal(t, 1, strings.Count(html, "is-current opacity-100"))
	assert.Contains(t, html, `src="/public/images/b.png"`)
	assert.NotContains(t, html, " disabled")
}

func TestCarouselDisablesControlsForSingleImage(t *testing.T) {
	var buf bytes.Buffer
	p := content.Project{ID: 5, Title: "FAMA", Images: []string{"images/fama.png"}}
	require.NoError(t, Carousel(CarouselData{Project: p}).Render(context.Background(), &buf))
	assert.Equal(t, 2, strings.Count(buf.String(), " disabled"))
}

func TestCarouselWithoutImages(t *testing.T) {
	var buf bytes.Buffer
	p := content.Project{ID: 6, Title: "Empty"}
	require.NoError(t, Carousel(CarouselData{Project: p}).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "No preview")
	assert.NotContains(t, buf.String(), "data-carousel")
}

func TestHeaderReflectsState(t *testing.T) {
	var buf bytes.Buffer
	st := page.Snapshot{Active: page.Skills, PastThreshold: true, MenuOpen: true}
	require.NoError(t, Header(HeaderData{Name: "Someone", State: st}).Render(context.Background(), &buf))

	html := buf.String()
	assert.Contains(t, html, "is-scrolled")
	assert.Contains(t, html, "mobile-menu")
	assert.Contains(t, html, `aria-expanded="true"`)
	assert.Equal(t, 2, strings.Count(html, "is-active"), "desktop and mobile link")
}

func TestPageRendersAllSections(t *testing.T) {
	cat, err := content.Default()
	require.NoError(t, err)

	var buf bytes.Buffer
	d := PageData{
		Site:    SiteConfig{Name: "Folio", URL: "https://example.com", Description: "desc"},
		Catalog: cat,
		State:   page.Snapshot{Active: page.Home, Visible: []page.Section{page.About}},
		CSRF:    "tok<en>",
		Year:    2026,
	}
	require.NoError(t, Page(d).Render(context.Background(), &buf))

	html := buf.String()
	for _, s := range page.Sections {
		assert.Contains(t, html, `<section id="`+string(s)+`"`)
	}
	assert.Contains(t, html, `data-observe-threshold="0.15"`)
	assert.Contains(t, html, `data-observe-margin="0px 0px -100px 0px"`)
	assert.Contains(t, html, `data-observe-delay="100"`)
	assert.Contains(t, html, `content="tok&lt;en&gt;"`)
	assert.Contains(t, html, "<strong>Laravel</strong>")
	assert.Contains(t, html, "is-visible")
	assert.Contains(t, html, `"@type":"Person"`)
}

func TestRevealClass(t *testing.T) {
	st := page.Snapshot{Visible: []page.Section{page.Contact}}
	assert.Contains(t, RevealClass(st, page.Contact), "is-visible")
	assert.NotContains(t, RevealClass(st, page.About), "is-visible")
}

func TestLevelStyleClamps(t *testing.T) {
	assert.Equal(t, "width: 0%", LevelStyle(-5))
	assert.Equal(t, "width: 88%", LevelStyle(88))
	assert.Equal(t, "width: 100%", LevelStyle(140))
}

func TestAssetURL(t *testing.T) {
	assert.Equal(t, "/public/images/a.png", AssetURL("images/a.png"))
	assert.Equal(t, "/static/a.png", AssetURL("/static/a.png"))
	assert.Equal(t, "https://cdn.example.com/a.png", AssetURL("https://cdn.example.com/a.png"))
	assert.Equal(t, "/thumbs/images/a.png", ThumbURL("images/a.png"))
}

func TestPageSanitizesUnsafeLinks(t *testing.T) {
	cat, err := content.Default()
	require.NoError(t, err)
	cat.Profile.Links = []content.ContactLink{
		{Label: "Evil", URL: "javascript:alert(1)", Icon: "mail"},
		{Label: "Mail", URL: "mailto:someone@example.com", Icon: "mail"},
	}
	require.NotEmpty(t, cat.Projects)
	cat.Projects[0].Demo = "JavaScript:alert(document.cookie)"

	var buf bytes.Buffer
	d := PageData{Site: SiteConfig{Name: "Folio", URL: "https://example.com"}, Catalog: cat, Year: 2026}
	require.NoError(t, Page(d).Render(context.Background(), &buf))

	html := buf.String()
	assert.NotContains(t, strings.ToLower(html), "javascript:")
	assert.Contains(t, html, `href="about:invalid#TemplFailedSanitizationURL"`)
	assert.Contains(t, html, `href="mailto:someone@example.com"`)
}

func TestHeaderLinksStayInPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Header(HeaderData{Name: "Someone"}).Render(context.Background(), &buf))
	for _, s := range page.Sections {
		assert.Contains(t, buf.String(), `href="#`+string(s)+`"`)
	}
	assert.NotContains(t, buf.String(), "mobile-menu")
	assert.Contains(t, buf.String(), `aria-expanded="false"`)
}
