package tftp

import (
	"bytes"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	tftp "github.com/pin/tftp/v3"

	"pk3-httpd/vfs"
)

func startTestServer(t *testing.T) (*tftp.Client, *vfs.FS) {
	t.Helper()
	root := memfs.New()
	if err := util.WriteFile(root, "dlcache/extra.pk3", bytes.Repeat([]byte("x"), 5000), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := util.WriteFile(root, "notes.txt", []byte("n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := vfs.New(root)
	srv, addr, err := StartTFTPServer("127.0.0.1:0", fs, nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(srv.Shutdown)

	c, err := tftp.NewClient(addr.String())
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	c.SetTimeout(time.Second)
	c.SetRetries(2)
	return c, fs
}

func TestTFTPServesDownloadCache(t *testing.T) {
	c, fs := startTestServer(t)
	wt, err := c.Receive("extra.pk3", "octet")
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if buf.Len() != 5000 {
		t.Fatalf("size got=%d want=5000", buf.Len())
	}
	deadline := time.Now().Add(2 * time.Second)
	for fs.OpenFiles() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if fs.OpenFiles() != 0 {
		t.Fatalf("open files got=%d want=0", fs.OpenFiles())
	}
}

func TestTFTPRefusesOtherNames(t *testing.T) {
	c, _ := startTestServer(t)
	for _, name := range []string{"notes.txt", "dlcache/extra.pk3", "missing.pk3"} {
		if _, err := c.Receive(name, "octet"); err == nil {
			t.Fatalf("receive %q: expected error", name)
		}
	}
}
