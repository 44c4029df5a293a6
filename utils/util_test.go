package utils

import (
	"net"
	"testing"
)

func TestArchiveName(t *testing.T) {
	accept := map[string]string{
		"/maps.pk3":   "maps.pk3",
		"/MAPS.PK3":   "MAPS.PK3",
		"/x.Pk3":      "x.Pk3",
		"/.pk3":       ".pk3",
		"noslash.pk3": "noslash.pk3",
	}
	for in, want := range accept {
		got, ok := ArchiveName(in)
		if !ok || got != want {
			t.Fatalf("ArchiveName(%q) got=%q,%v want=%q,true", in, got, ok, want)
		}
	}
	reject := []string{
		"",
		"/",
		"/pk3",
		"/a.pk",
		"/maps.zip",
		"/maps.pk3.txt",
		"/dlcache/maps.pk3",
		"/../maps.pk3",
		`/..\maps.pk3`,
		`/dir\maps.pk3`,
		"//maps.pk3",
	}
	for _, in := range reject {
		if got, ok := ArchiveName(in); ok {
			t.Fatalf("ArchiveName(%q) got=%q want rejection", in, got)
		}
	}
}

func TestCandidatePaths(t *testing.T) {
	got := CandidatePaths("a.pk3")
	if len(got) != 2 || got[0] != "a.pk3" || got[1] != "dlcache/a.pk3" {
		t.Fatalf("CandidatePaths got=%v", got)
	}
}

func TestMustPort(t *testing.T) {
	if got := MustPort(":26000"); got != 26000 {
		t.Fatalf("MustPort got=%d want=26000", got)
	}
	if got := MustPort("0.0.0.0:27960"); got != 27960 {
		t.Fatalf("MustPort got=%d want=27960", got)
	}
}

func TestFirstIPv4AddrUnknownInterface(t *testing.T) {
	if _, err := FirstIPv4Addr("no-such-iface0"); err == nil {
		t.Fatalf("expected error for unknown interface")
	}
	ifaces, err := net.Interfaces()
	if err != nil {
		t.Skipf("interfaces: %v", err)
	}
	for _, ifc := range ifaces {
		if ifc.Flags&net.FlagLoopback == 0 || ifc.Flags&net.FlagUp == 0 {
			continue
		}
		ip, err := FirstIPv4Addr(ifc.Name)
		if err != nil {
			t.Skipf("loopback %s has no IPv4: %v", ifc.Name, err)
		}
		if !ip.IsLoopback() {
			t.Fatalf("loopback ip got=%s", ip)
		}
		return
	}
}
