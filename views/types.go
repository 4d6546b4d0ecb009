package views

import (
	"github.com/imamrpratama/folio/content"
	"github.com/imamrpratama/folio/page"
)

// SiteConfig holds site-wide settings populated from environment variables.
// Every handler passes this to templates so nothing is hardcoded.
type SiteConfig struct {
	Name        string // FOLIO_SITE_NAME (defaults to the profile name)
	URL         string // FOLIO_SITE_URL  (default "http://localhost:3000")
	Description string // FOLIO_SITE_DESCRIPTION (defaults to the profile tagline)
}

// PageMeta carries OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
}

// PageData is everything the full page needs.
type PageData struct {
	Site    SiteConfig
	Catalog *content.Catalog
	State   page.Snapshot
	CSRF    string
	Year    int
}

// CarouselData renders one project's image carousel.
type CarouselData struct {
	Project content.Project
	Index   int
}

// HeaderData renders the fixed navigation header.
type HeaderData struct {
	Name  string
	State page.Snapshot
}
