package tools

import (
	"fmt"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/scanimetrics/wsnperf/wsnperf"
)

func (t Tools) Dial(p wsnperf.Protocol) (net.Conn, error) {
	var network string
	if p == wsnperf.TCP {
		network = wsnperf.TCPVersion(t.IPVersion)
	} else if p == wsnperf.UDP {
		network = wsnperf.UDPVersion(t.IPVersion)
	} else {
		return nil, fmt.Errorf("only TCP or UDP are allowed in dial: %w", os.ErrInvalid)
	}

	dialer := &net.Dialer{
		Control: func(network, address string, rc syscall.RawConn) error {
			var serr error
			if err := rc.Control(func(fd uintptr) {
				serr = t.setTrafficClass(fd, t.TrafficClass, t.IPVersion)
			}); err != nil {
				return err
			}
			return serr
		},
		Timeout: time.Second,
	}
	conn, err := dialer.Dial(network, t.DialAddr())
	if err != nil {
		return nil, fmt.Errorf("error dialing remote: %w", err)
	}
	if udpConn, ok := conn.(*net.UDPConn); ok {
		if err := udpConn.SetWriteBuffer(4 * 1024 * 1024); err != nil {
			_ = udpConn.Close()
			return nil, fmt.Errorf("failed to set WriteBuffer on UDP socket: %w", err)
		}
	}
	return conn, nil
}
