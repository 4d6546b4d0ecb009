package folio

import (
	"encoding/xml"

	"github.com/labstack/echo/v4"

	"github.com/imamrpratama/folio/content"
	"github.com/imamrpratama/folio/page"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// buildSitemap lists the page, each of its sections as a fragment, and the
// JSON document of every project.
func buildSitemap(base string, cat *content.Catalog) sitemapURLSet {
	urls := []sitemapURL{
		{Loc: base + "/", ChangeFreq: "monthly", Priority: "1.0"},
	}
	for _, s := range page.Sections[1:] {
		urls = append(urls, sitemapURL{Loc: base + "/#" + string(s), Priority: "0.8"})
	}
	for _, p := range cat.Projects {
		urls = append(urls, sitemapURL{Loc: projectURL(base, p), Priority: "0.5"})
	}
	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}

func (a *App) renderSitemap(c echo.Context, cat *content.Catalog) error {
	return renderXML(c, "application/xml; charset=utf-8", buildSitemap(a.Config.URL, cat))
}
