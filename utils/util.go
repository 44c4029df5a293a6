package utils

import (
	"log"
	"net"
	"strconv"
	"strings"
)

const (
	archiveExt = ".pk3"
	// DownloadCacheDir is the fallback directory for archives fetched by
	// clients and re-served from the server.
	DownloadCacheDir = "dlcache/"
)

// ArchiveName maps a request path such as "/maps.pk3" to a bare archive
// name. Paths with any separator after the leading one are refused, so a
// name can never leave the flat content directory.
func ArchiveName(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	name := strings.TrimPrefix(p, "/")
	if strings.ContainsAny(name, `/\`) {
		return "", false
	}
	if len(name) < len(archiveExt) {
		return "", false
	}
	if !strings.EqualFold(name[len(name)-len(archiveExt):], archiveExt) {
		return "", false
	}
	return name, true
}

// CandidatePaths lists the virtual paths tried for an archive, in order.
func CandidatePaths(name string) []string {
	return []string{name, DownloadCacheDir + name}
}

func MustPort(addr string) int {
	// addr can be ":26000" or "0.0.0.0:26000"
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		if strings.HasPrefix(addr, ":") {
			v, _ := strconv.Atoi(addr[1:])
			return v
		}
		log.Fatalf("invalid addr %q: %v", addr, err)
	}
	v, err := strconv.Atoi(p)
	if err != nil {
		log.Fatalf("invalid port in %q: %v", addr, err)
	}
	return v
}
