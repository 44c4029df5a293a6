//go:build !unix

package httpx

import "net"

func listenConfig() net.ListenConfig {
	return net.ListenConfig{}
}

func addrInUse(err error) bool {
	return false
}
