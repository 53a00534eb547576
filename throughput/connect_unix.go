//go:build unix

package throughput

import (
	"fmt"
	"net"
	"strconv"
	"syscall"

	"golang.org/x/sys/unix"
)

// connectPeer sets peer as the default destination of the socket behind
// conn. It reports false when conn has no socket to connect.
func connectPeer(conn net.PacketConn, peer net.Addr) (bool, error) {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		return false, nil
	}
	ua, ok := peer.(*net.UDPAddr)
	if !ok {
		return false, nil
	}
	rc, err := sc.SyscallConn()
	if err != nil {
		return false, err
	}

	var cerr error
	err = rc.Control(func(fd uintptr) {
		local, err := unix.Getsockname(int(fd))
		if err != nil {
			cerr = err
			return
		}
		var sa unix.Sockaddr
		if _, v4 := local.(*unix.SockaddrInet4); v4 {
			ip4 := ua.IP.To4()
			if ip4 == nil {
				cerr = fmt.Errorf("peer %s is not reachable from an IPv4 socket", ua)
				return
			}
			sa4 := &unix.SockaddrInet4{Port: ua.Port}
			copy(sa4.Addr[:], ip4)
			sa = sa4
		} else {
			// IPv4 peers of a dual-stack socket arrive as IPv4-mapped addresses.
			sa6 := &unix.SockaddrInet6{Port: ua.Port, ZoneId: zoneIndex(ua.Zone)}
			copy(sa6.Addr[:], ua.IP.To16())
			sa = sa6
		}
		cerr = unix.Connect(int(fd), sa)
	})
	if err != nil {
		return false, err
	}
	if cerr != nil {
		return false, cerr
	}
	return true, nil
}

func zoneIndex(zone string) uint32 {
	if zone == "" {
		return 0
	}
	if ifi, err := net.InterfaceByName(zone); err == nil {
		return uint32(ifi.Index)
	}
	if n, err := strconv.ParseUint(zone, 10, 32); err == nil {
		return uint32(n)
	}
	return 0
}
