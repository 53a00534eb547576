//go:build unix

package server

import (
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// Control applies IPV6_V6ONLY to IPv6 sockets before bind. The Go runtime
// sets it for "tcp6" and "udp6" networks, it is cleared here unless V6Only
// was asked for, so IPv4-mapped peers are accepted like on a plain socket.
func (c *Config) Control(network, address string, rc syscall.RawConn) error {
	if !strings.HasSuffix(network, "6") {
		return nil
	}
	v6only := 0
	if c.V6Only {
		v6only = 1
	}
	var serr error
	err := rc.Control(func(fd uintptr) {
		serr = unix.SetsockoptInt(int(fd), unix.IPPROTO_IPV6, unix.IPV6_V6ONLY, v6only)
	})
	if err != nil {
		return err
	}
	return serr
}
