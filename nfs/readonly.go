package nfs

import (
	"os"

	"github.com/go-git/go-billy/v5"
)

// readOnly hides every mutating operation of the wrapped filesystem.
type readOnly struct {
	billy.Filesystem
}

func newReadOnly(fs billy.Filesystem) billy.Filesystem {
	return readOnly{fs}
}

const writeFlags = os.O_WRONLY | os.O_RDWR | os.O_APPEND | os.O_CREATE | os.O_TRUNC

func (readOnly) Create(string) (billy.File, error) { return nil, billy.ErrReadOnly }

func (r readOnly) OpenFile(name string, flag int, perm os.FileMode) (billy.File, error) {
	if flag&writeFlags != 0 {
		return nil, billy.ErrReadOnly
	}
	return r.Filesystem.OpenFile(name, flag, perm)
}

func (readOnly) Rename(string, string) error                 { return billy.ErrReadOnly }
func (readOnly) Remove(string) error                         { return billy.ErrReadOnly }
func (readOnly) TempFile(string, string) (billy.File, error) { return nil, billy.ErrReadOnly }
func (readOnly) MkdirAll(string, os.FileMode) error          { return billy.ErrReadOnly }
func (readOnly) Symlink(string, string) error                { return billy.ErrReadOnly }

func (r readOnly) Chroot(path string) (billy.Filesystem, error) {
	fs, err := r.Filesystem.Chroot(path)
	if err != nil {
		return nil, err
	}
	return readOnly{fs}, nil
}

// Capabilities lets the NFS layer answer writes with NFS3ERR_ROFS.
func (readOnly) Capabilities() billy.Capability {
	return billy.ReadCapability | billy.SeekCapability
}
