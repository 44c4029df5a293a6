package httpx

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"

	"pk3-httpd/utils"
	"pk3-httpd/vfs"
)

// Opener is the part of the virtual filesystem the handler needs.
type Opener interface {
	OpenReadOnly(name string) (*vfs.File, error)
}

// Handler serves GET /<name>.pk3 from the virtual filesystem, falling back
// to the download cache. Anything else is answered with 404.
type Handler struct {
	fs     Opener
	logger *log.Logger
	debug  *log.Logger
}

// NewHandler returns a handler reading from fs. logger receives failures,
// debug receives one trace per request and response; either may be nil.
func NewHandler(fs Opener, logger, debug *log.Logger) *Handler {
	return &Handler{fs: fs, logger: logger, debug: debug}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.debugf("http request: %s %s", r.Method, r.URL.Path)
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	name, ok := utils.ArchiveName(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	f := h.open(name)
	if f == nil {
		http.NotFound(w, r)
		return
	}

	resp := newResponse(f, h.debug)
	defer resp.Close()
	size := resp.Size()

	buf := make([]byte, chunkSize)
	var n int
	if size > 0 {
		var err error
		n, err = resp.ReadChunk(0, buf)
		if n == 0 {
			if h.logger != nil {
				h.logger.Printf("http response for %s failed: %v", f.Name(), err)
			}
			resp.Close()
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}
	h.debugf("http response %s for %s started (%s)", f.Name(), r.URL.Path, humanize.Bytes(uint64(size)))

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()
	for n > 0 {
		if _, err := w.Write(buf[:n]); err != nil {
			return
		}
		resp.sent += int64(n)
		if resp.sent >= size || ctx.Err() != nil {
			return
		}
		var err error
		n, err = resp.ReadChunk(resp.sent, buf)
		if n == 0 && err != nil && !errors.Is(err, io.EOF) && h.logger != nil {
			h.logger.Printf("http response %s read at %d: %v", f.Name(), resp.sent, err)
		}
	}
}

// open tries each candidate location and returns the first hit.
func (h *Handler) open(name string) *vfs.File {
	for _, p := range utils.CandidatePaths(name) {
		f, err := h.fs.OpenReadOnly(p)
		if err == nil {
			return f
		}
	}
	return nil
}

func (h *Handler) debugf(format string, args ...any) {
	if h.debug != nil {
		h.debug.Printf(format, args...)
	}
}
