package httpx

import (
	"log"
	"sync"

	"pk3-httpd/vfs"
)

// chunkSize is the most a single pull reads from the archive.
const chunkSize = 32 * 1024

// response feeds an open archive to the client one chunk at a time. It
// owns the file handle until Close.
type response struct {
	file  *vfs.File
	debug *log.Logger

	sent int64
	once sync.Once
}

func newResponse(f *vfs.File, debug *log.Logger) *response {
	return &response{file: f, debug: debug}
}

func (r *response) Size() int64 { return r.file.Size() }

// ReadChunk reads up to len(p) bytes starting at offset, never past the
// size reported when the response was created.
func (r *response) ReadChunk(offset int64, p []byte) (int, error) {
	if left := r.Size() - offset; int64(len(p)) > left {
		p = p[:left]
	}
	if err := r.file.SeekTo(offset); err != nil {
		return 0, err
	}
	return r.file.Read(p)
}

// Close releases the archive. Safe to call more than once.
func (r *response) Close() {
	r.once.Do(func() {
		if err := r.file.Close(); err != nil && r.debug != nil {
			r.debug.Printf("http response %s close: %v", r.file.Name(), err)
		}
		if r.debug == nil {
			return
		}
		if r.sent < r.Size() {
			r.debug.Printf("http response %s aborted after %d/%d bytes", r.file.Name(), r.sent, r.Size())
		} else {
			r.debug.Printf("http response %s finished", r.file.Name())
		}
	})
}
