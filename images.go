package folio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	thumbWidth   = 480
	jpegQuality  = 80
	maxThumbSize = 20 << 20 // 20MB source files
)

// ThumbCache renders downscaled JPEG copies of carousel images under the
// assets dir and keeps them in memory.
type ThumbCache struct {
	root string

	mu     sync.RWMutex
	thumbs map[string][]byte
}

// NewThumbCache creates a ThumbCache serving images below root.
func NewThumbCache(root string) *ThumbCache {
	return &ThumbCache{root: root, thumbs: make(map[string][]byte)}
}

// Get returns the thumbnail of the image at rel, a slash-separated path
// relative to the assets dir. It returns fs.ErrNotExist for missing files and
// paths that escape the root.
func (t *ThumbCache) Get(rel string) ([]byte, error) {
	clean := path.Clean("/" + rel)[1:]
	if clean == "" || strings.HasPrefix(clean, "..") {
		return nil, fs.ErrNotExist
	}

	t.mu.RLock()
	data, ok := t.thumbs[clean]
	t.mu.RUnlock()
	if ok {
		return data, nil
	}

	f, err := os.Open(filepath.Join(t.root, filepath.FromSlash(clean)))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err = makeThumb(io.LimitReader(f, maxThumbSize))
	if err != nil {
		return nil, fmt.Errorf("thumbnail %s: %w", clean, err)
	}

	t.mu.Lock()
	t.thumbs[clean] = data
	t.mu.Unlock()
	return data, nil
}

// makeThumb decodes an image from src, shrinks it to thumbWidth when wider,
// and encodes it as JPEG.
func makeThumb(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > thumbWidth {
		newH := h * thumbWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, thumbWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func (a *App) handleThumb(c echo.Context) error {
	data, err := a.Thumbs.Get(c.Param("*"))
	if errors.Is(err, fs.ErrNotExist) {
		return echo.NewHTTPError(http.StatusNotFound, "image not found")
	}
	if err != nil {
		c.Logger().Warnf("thumb: %v", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "not an image")
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}
