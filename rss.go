package folio

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/imamrpratama/folio/content"
	"github.com/imamrpratama/folio/markdown"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Categories  []string `xml:"category"`
	GUID        string   `xml:"guid"`
}

func projectURL(base string, p content.Project) string {
	return base + "/api/projects/" + strconv.Itoa(p.ID)
}

// buildFeed turns the project list into an RSS channel. Items link to the
// demo when there is one and to the project document otherwise.
func buildFeed(name, base, description string, projects []content.Project) rssXML {
	items := make([]rssItem, 0, len(projects))
	for _, p := range projects {
		link := projectURL(base, p)
		if safe := markdown.SafeURL(p.Demo); safe != "" && strings.HasPrefix(safe, "http") {
			link = safe
		}
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        link,
			Description: markdown.FormatInline(p.Description),
			Categories:  p.Tech,
			GUID:        projectURL(base, p),
		})
	}
	return rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       name,
			Link:        base + "/",
			Description: description,
			Items:       items,
		},
	}
}

func (a *App) renderRSS(c echo.Context, projects []content.Project) error {
	feed := buildFeed(a.Config.Name, a.Config.URL, a.Config.Description, projects)
	return renderXML(c, "application/rss+xml; charset=utf-8", feed)
}
