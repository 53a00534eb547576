//go:build unix

package tools

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/scanimetrics/wsnperf/wsnperf"
)

func (t Tools) setSockOptInt(fd uintptr, level, opt, val int) error {
	err := unix.SetsockoptInt(int(fd), level, opt, val)
	if err != nil {
		return fmt.Errorf("failed to set socket option (%v) to value (%v): %w", opt, val, err)
	}
	return nil
}

func (t Tools) setTrafficClass(fd uintptr, tclass int, ipVersion wsnperf.IPVersion) error {
	if tclass == 0 {
		return nil
	}
	if ipVersion == wsnperf.IPv4 {
		return t.setSockOptInt(fd, unix.IPPROTO_IP, unix.IP_TOS, tclass)
	}
	return t.setSockOptInt(fd, unix.IPPROTO_IPV6, unix.IPV6_TCLASS, tclass)
}
