//go:build unix

package main

import (
	"log"

	"golang.org/x/sys/unix"
)

// reportFileLimit logs the descriptor limit, which caps concurrent
// downloads since each one holds an open archive.
func reportFileLimit(logger *log.Logger) {
	var rl unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		logger.Printf("getrlimit: %v", err)
		return
	}
	logger.Printf("open file limit %d", rl.Cur)
}
