package httpx

import (
	"context"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// portAttempts is how many consecutive ports Start probes.
const portAttempts = 3

// Server owns the download listener. At most one listener runs per Server;
// the zero state (not started, or stopped) is valid.
type Server struct {
	cfg     *Config
	handler http.Handler
	logger  *log.Logger

	mu   sync.Mutex
	srv  *http.Server
	port int
}

// NewServer returns a stopped server that will serve handler.
func NewServer(cfg *Config, handler http.Handler, logger *log.Logger) *Server {
	return &Server{cfg: cfg, handler: handler, logger: logger}
}

// Start binds the first free port among cfg.Port() and the next two and
// serves in the background. It does nothing if already running or if the
// server is disabled. Bind failures are only logged.
func (s *Server) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv != nil {
		return
	}
	if !s.cfg.Enabled() {
		return
	}
	base := s.cfg.Port()
	lc := listenConfig()
	for i := 0; i < portAttempts; i++ {
		port := base + i
		ln, err := lc.Listen(context.Background(), "tcp", net.JoinHostPort("", strconv.Itoa(port)))
		if err != nil {
			if addrInUse(err) {
				s.logf("http listen failed on port %d: address already in use", port)
			} else {
				s.logf("http listen failed on port %d: %v", port, err)
			}
			continue
		}
		srv := &http.Server{
			Handler:           s.handler,
			ErrorLog:          s.logger,
			ReadHeaderTimeout: 10 * time.Second,
		}
		s.srv = srv
		s.port = ln.Addr().(*net.TCPAddr).Port
		go func() {
			if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
				s.logf("http serve error: %v", err)
			}
		}()
		s.logf("http server started on port %d", s.port)
		return
	}
}

// Stop closes the listener and any open connections. In-flight downloads
// see a write error and release their files.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv == nil {
		return
	}
	if err := s.srv.Close(); err != nil {
		s.logf("http close: %v", err)
	}
	s.srv = nil
	s.port = 0
	s.logf("http server stopped")
}

func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.srv != nil
}

// Port returns the bound port, or 0 when not running.
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// AdvertisedURL returns http://host:port/ for the running listener, or ""
// when nothing is listening.
func (s *Server) AdvertisedURL() string {
	port := s.Port()
	if port == 0 {
		return ""
	}
	return "http://" + net.JoinHostPort(s.cfg.Host(), strconv.Itoa(port)) + "/"
}

func (s *Server) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
