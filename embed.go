package folio

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
)

// EmbeddedAssets contains the client script and stylesheet shipped with the
// site: folio.js reports scroll, intersection and click events; folio.css
// holds the reveal and carousel styles.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

// embeddedHandler serves EmbeddedAssets under /public/.
func embeddedHandler() echo.HandlerFunc {
	sub, _ := fs.Sub(EmbeddedAssets, "embedded")
	h := http.StripPrefix("/public/", http.FileServer(http.FS(sub)))
	return echo.WrapHandler(h)
}
