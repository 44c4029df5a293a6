package httpx

import (
	"flag"
	"strconv"
	"sync"
)

// DefaultPort is the game's default network port, used as the first
// candidate for the download listener.
const DefaultPort = 26000

// Config holds the settings the listener goroutines read while the main
// goroutine may change them. All access goes through the mutex.
type Config struct {
	mu      sync.Mutex
	enabled bool
	host    string
	port    int
}

// NewConfig returns the defaults: enabled, no host, DefaultPort.
func NewConfig() *Config {
	return &Config{enabled: true, port: DefaultPort}
}

func (c *Config) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

func (c *Config) SetEnabled(v bool) {
	c.mu.Lock()
	c.enabled = v
	c.mu.Unlock()
}

// Host is the externally reachable address advertised to clients.
func (c *Config) Host() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.host
}

func (c *Config) SetHost(h string) {
	c.mu.Lock()
	c.host = h
	c.mu.Unlock()
}

// Port is the game server's network port; the listener probes from here.
func (c *Config) Port() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.port
}

func (c *Config) SetPort(p int) {
	c.mu.Lock()
	c.port = p
	c.mu.Unlock()
}

// RegisterFlags binds -http-server and -http-server-host on fs.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolFunc("http-server", "serve pk3 downloads over http (default true)", func(s string) error {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		c.SetEnabled(v)
		return nil
	})
	fs.Func("http-server-host", "external address advertised in the download url", func(s string) error {
		c.SetHost(s)
		return nil
	})
}
