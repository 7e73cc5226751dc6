package http

import (
	"io"
	"net/http"
	"os"
	"path"

	"github.com/m-mizutani/goerr/v2"
)

// StaticHandler serves the web map viewer from a directory. Paths that are
// not files fall back to index.html so that viewer routes such as
// /report/123 load the application.
type StaticHandler struct {
	fileSystem http.FileSystem
	index      []byte
}

// NewStaticHandler creates a handler over fileSystem, which must contain
// index.html
func NewStaticHandler(fileSystem http.FileSystem) (*StaticHandler, error) {
	f, err := fileSystem.Open("/index.html")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open index.html of web viewer")
	}
	defer f.Close()

	index, err := io.ReadAll(f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read index.html of web viewer")
	}

	return &StaticHandler{
		fileSystem: fileSystem,
		index:      index,
	}, nil
}

// ServeHTTP implements http.Handler
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cleanPath := path.Clean("/" + r.URL.Path)

	file, err := h.fileSystem.Open(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			h.serveIndex(w, r)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if stat.IsDir() {
		h.serveIndex(w, r)
		return
	}

	if contentType := contentTypeOf(cleanPath); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeContent(w, r, stat.Name(), stat.ModTime(), file)
}

// serveIndex is never cached; it references the current asset names
func (h *StaticHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(h.index)
}

var mimeTypes = map[string]string{
	".html":    "text/html; charset=utf-8",
	".css":     "text/css; charset=utf-8",
	".js":      "application/javascript; charset=utf-8",
	".json":    "application/json; charset=utf-8",
	".geojson": "application/geo+json",
	".png":     "image/png",
	".jpg":     "image/jpeg",
	".jpeg":    "image/jpeg",
	".svg":     "image/svg+xml",
	".ico":     "image/x-icon",
	".woff2":   "font/woff2",
}

func contentTypeOf(filePath string) string {
	return mimeTypes[path.Ext(filePath)]
}
