package nfs

import (
	"errors"
	"log"
	"net"

	"github.com/go-git/go-billy/v5"
	nfs "github.com/willscott/go-nfs"
	nfshelper "github.com/willscott/go-nfs/helpers"
)

// handleCacheSize bounds the number of file handles the export remembers.
const handleCacheSize = 1024

// StartNFSServer exports fs read-only over NFSv3 (MOUNT and NFS share the
// one TCP port) so LAN clients can mount the content tree directly.
func StartNFSServer(addr string, fs billy.Filesystem, logger *log.Logger) (net.Listener, error) {
	if fs == nil {
		return nil, errors.New("nfs: no filesystem to export")
	}
	if addr == "" {
		addr = ":2049"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	handler := nfshelper.NewCachingHandler(nfshelper.NewNullAuthHandler(newReadOnly(fs)), handleCacheSize)
	go func() {
		if logger != nil {
			logger.Printf("nfs export listening on %s root=%q", ln.Addr(), fs.Root())
		}
		if err := nfs.Serve(ln, handler); err != nil && !errors.Is(err, net.ErrClosed) {
			if logger != nil {
				logger.Printf("nfs serve error: %v", err)
			}
		}
	}()
	return ln, nil
}
