package folio

import (
	"strings"

	"github.com/imamrpratama/folio/page"
)

var crawlerTokens = []struct {
	pattern, name string
}{
	{"googlebot", "Googlebot"},
	{"bingbot", "Bingbot"},
	{"yandex", "Yandex"},
	{"baidu", "Baidu"},
	{"duckduckbot", "DuckDuckBot"},
	{"facebookexternalhit", "Facebook"},
	{"twitterbot", "Twitterbot"},
	{"linkedinbot", "LinkedIn"},
	{"ahrefsbot", "Ahrefs"},
	{"semrushbot", "SEMrush"},
	{"slurp", "Yahoo Slurp"},
	{"crawler", "Generic Crawler"},
	{"spider", "Generic Spider"},
	{"scrape", "Scraper"},
	{"bot", "Other Bot"},
}

// crawlerName returns a display name for a crawler User-Agent, or "" for
// anything that looks like a browser.
func crawlerName(ua string) string {
	ua = strings.ToLower(ua)
	for _, t := range crawlerTokens {
		if strings.Contains(ua, t.pattern) {
			return t.name
		}
	}
	return ""
}

// crawlerSnapshot is the page state served to crawlers: a fresh page with
// every section already revealed. It never enters the session registry.
func crawlerSnapshot(imageCounts map[int]int) page.Snapshot {
	s := page.NewState(imageCounts)
	var res page.Result
	for _, sec := range page.Sections {
		res = s.Apply(page.SectionIntersected{Section: sec, Intersecting: true})
	}
	return res.Snapshot
}
