//go:build !nohttpd

package httpx

import "log"

// Service is the download server as seen by the rest of the process.
type Service interface {
	Start()
	Stop()
	AdvertisedURL() string
}

// NewService returns the HTTP download server. Builds tagged nohttpd get
// a stub that never listens.
func NewService(cfg *Config, fs Opener, logger, debug *log.Logger) Service {
	return NewServer(cfg, NewHandler(fs, logger, debug), logger)
}
