// Package markdown renders the inline Markdown subset used in portfolio
// copy (bio paragraphs, project descriptions) as a templ component.
package markdown

import (
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*`)
	reInlineCode = regexp.MustCompile("`([^`]+)`")
	reLink       = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
)

// Inline returns a component that writes s as inline HTML.
func Inline(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, FormatInline(s))
		return err
	})
}

// FormatInline escapes s and converts **bold**, *italic*, `code` and
// [text](url) links. Links always open in a new tab.
func FormatInline(s string) string {
	out := html.EscapeString(s)

	// Code spans are swapped for placeholders so emphasis does not reach into them.
	var codes []string
	out = reInlineCode.ReplaceAllStringFunc(out, func(m string) string {
		codes = append(codes, "<code>"+reInlineCode.FindStringSubmatch(m)[1]+"</code>")
		return "\x00" + strconv.Itoa(len(codes)-1) + "\x00"
	})

	out = reLink.ReplaceAllStringFunc(out, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := SafeURL(html.UnescapeString(match[2]))
		if href == "" {
			return match[1]
		}
		return `<a href="` + html.EscapeString(href) + `" target="_blank" rel="noopener noreferrer">` + match[1] + `</a>`
	})

	out = outsideTags(out, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		return reItalic.ReplaceAllString(seg, "<em>$1</em>")
	})

	for i, code := range codes {
		out = strings.Replace(out, "\x00"+strconv.Itoa(i)+"\x00", code, 1)
	}
	return out
}

// outsideTags applies fn to the text between HTML tags.
func outsideTags(s string, fn func(string) string) string {
	var b strings.Builder
	for len(s) > 0 {
		start := strings.IndexByte(s, '<')
		if start < 0 {
			b.WriteString(fn(s))
			break
		}
		b.WriteString(fn(s[:start]))
		end := strings.IndexByte(s[start:], '>')
		if end < 0 {
			b.WriteString(s[start:])
			break
		}
		b.WriteString(s[start : start+end+1])
		s = s[start+end+1:]
	}
	return b.String()
}

// SafeURL returns raw if it is a relative, http(s) or mailto URL, and "" otherwise.
func SafeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto":
		return raw
	}
	return ""
}
