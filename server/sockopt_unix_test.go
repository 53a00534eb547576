//go:build unix

package server

import (
	"context"
	"net"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func v6only(t *testing.T, v6 bool) int {
	cfg := &Config{V6Only: v6}
	lc := net.ListenConfig{Control: cfg.Control}
	l, err := lc.Listen(context.Background(), "tcp6", "[::1]:0")
	if err != nil {
		t.Skipf("no IPv6 loopback: %v", err)
	}
	defer l.Close()

	raw, err := l.(*net.TCPListener).SyscallConn()
	require.NoError(t, err)
	var val int
	var serr error
	require.NoError(t, raw.Control(func(fd uintptr) {
		val, serr = unix.GetsockoptInt(int(fd), unix.IPPROTO_IPV6, unix.IPV6_V6ONLY)
	}))
	require.NoError(t, serr)
	return val
}

func TestControlV6Only(t *testing.T) {
	assert.Equal(t, 1, v6only(t, true))
	assert.Equal(t, 0, v6only(t, false))
}

func TestControlIgnoresIPv4(t *testing.T) {
	cfg := &Config{V6Only: true}
	var rc syscall.RawConn
	assert.NoError(t, cfg.Control("tcp4", "127.0.0.1:0", rc))
}
