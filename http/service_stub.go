//go:build nohttpd

package httpx

import "log"

type Service interface {
	Start()
	Stop()
	AdvertisedURL() string
}

type disabled struct{}

func (disabled) Start()                {}
func (disabled) Stop()                 {}
func (disabled) AdvertisedURL() string { return "" }

func NewService(cfg *Config, fs Opener, logger, debug *log.Logger) Service {
	return disabled{}
}
