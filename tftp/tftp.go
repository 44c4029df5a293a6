package tftp

import (
	"fmt"
	"io"
	"log"
	"net"
	"strings"
	"time"

	tftp "github.com/pin/tftp/v3"

	"pk3-httpd/utils"
	"pk3-httpd/vfs"
)

func serveFile(f *vfs.File, rf io.ReaderFrom) error {
	defer f.Close()
	if t, ok := rf.(tftp.OutgoingTransfer); ok {
		t.SetSize(f.Size())
	}
	_, err := rf.ReadFrom(f)
	return err
}

// StartTFTPServer serves the same archives as the HTTP handler, under the
// same naming rules, to clients that only speak TFTP. Writes are refused.
func StartTFTPServer(addr string, fs *vfs.FS, logger *log.Logger) (*tftp.Server, net.Addr, error) {
	if addr == "" {
		addr = ":69"
	}
	readHandler := func(filename string, rf io.ReaderFrom) error {
		name, ok := utils.ArchiveName(strings.TrimSpace(filename))
		if !ok {
			if logger != nil {
				logger.Printf("refused %q", filename)
			}
			return fmt.Errorf("%q is not a downloadable archive", filename)
		}
		for _, p := range utils.CandidatePaths(name) {
			f, err := fs.OpenReadOnly(p)
			if err != nil {
				continue
			}
			if logger != nil {
				logger.Printf("sending %s (%d bytes)", p, f.Size())
			}
			return serveFile(f, rf)
		}
		return fmt.Errorf("%s: %w", name, vfs.ErrNotFound)
	}

	srv := tftp.NewServer(readHandler, nil)
	srv.SetTimeout(5 * time.Second)

	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, nil, err
	}
	go func() {
		if logger != nil {
			logger.Printf("TFTP server listening on %s", conn.LocalAddr())
		}
		if err := srv.Serve(conn); err != nil {
			if logger != nil {
				logger.Printf("TFTP server error: %v", err)
			}
		}
	}()
	return srv, conn.LocalAddr(), nil
}
