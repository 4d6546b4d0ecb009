package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/imamrpratama/folio/content"
	"github.com/imamrpratama/folio/page"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// AssetURL maps a catalog image path to the URL it is served from.
func AssetURL(p string) string {
	if strings.HasPrefix(p, "/") || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return "/public/" + p
}

// ThumbURL returns the downscaled rendition of a catalog image.
func ThumbURL(p string) string {
	return "/thumbs/" + strings.TrimPrefix(p, "/")
}

// SectionTitle is the navigation label of a section.
func SectionTitle(s page.Section) string {
	str := string(s)
	if str == "" {
		return ""
	}
	return strings.ToUpper(str[:1]) + str[1:]
}

// RevealClass returns the transition classes of a section block.
func RevealClass(st page.Snapshot, s page.Section) string {
	base := "reveal transition-all duration-1000"
	if st.IsVisible(s) {
		return base + " is-visible opacity-100 translate-y-0"
	}
	return base + " opacity-0 translate-y-10"
}

// HeaderClass switches the header to its compact style past the scroll threshold.
func HeaderClass(st page.Snapshot) string {
	base := "site-header fixed top-0 w-full z-50 transition-all duration-300"
	if st.PastThreshold {
		return base + " is-scrolled bg-slate-950/80 backdrop-blur-lg shadow-lg"
	}
	return base + " bg-transparent"
}

// NavClass highlights the active section link.
func NavClass(st page.Snapshot, s page.Section) string {
	base := "nav-link capitalize transition-colors"
	if st.Active == s {
		return base + " is-active text-purple-400"
	}
	return base + " text-gray-300 hover:text-white"
}

// DotClass highlights the current dot indicator of a carousel.
func DotClass(active bool) string {
	if active {
		return "carousel-dot is-current w-8 h-2 rounded-full bg-white"
	}
	return "carousel-dot w-2 h-2 rounded-full bg-white/50"
}

// SlideClass shows the current carousel slide and fades the rest.
func SlideClass(current bool) string {
	base := "carousel-slide absolute inset-0 transition-opacity duration-500"
	if current {
		return base + " is-current opacity-100"
	}
	return base + " opacity-0"
}

// carouselAction is the endpoint a carousel control posts to.
func carouselAction(projectID int, action string) string {
	return "/projects/" + strconv.Itoa(projectID) + "/carousel/" + action + "/"
}

var iconGlyphs = map[string]string{
	"server":     "🖥",
	"code":       "⌨",
	"database":   "🗄",
	"smartphone": "📱",
	"figma":      "✎",
	"github":     "⎇",
	"linkedin":   "in",
	"mail":       "✉",
	"bolt":       "⚡",
}

// Icon resolves a symbolic icon reference to a glyph. Unknown refs render as "•".
func Icon(ref string) string {
	if g, ok := iconGlyphs[ref]; ok {
		return g
	}
	return "•"
}

// LevelStyle is the inline width of a skill bar.
func LevelStyle(level int) string {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	return "width: " + strconv.Itoa(level) + "%"
}

func barStyle(st page.Snapshot, level int) string {
	if !st.IsVisible(page.Skills) {
		return LevelStyle(0)
	}
	return LevelStyle(level)
}

// PersonJsonLD produces a Schema.org Person JSON-LD block for the profile.
func PersonJsonLD(cfg SiteConfig, p content.Profile) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     p.Name,
		"url":      buildURL(cfg.URL),
	}
	if p.Role != "" {
		data["jobTitle"] = p.Role
	}
	var sameAs []string
	for _, l := range p.Links {
		if strings.HasPrefix(l.URL, "http") {
			sameAs = append(sameAs, l.URL)
		}
	}
	if len(sameAs) > 0 {
		data["sameAs"] = sameAs
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
