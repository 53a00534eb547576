package server

import (
	"fmt"
	"net"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"

	"github.com/scanimetrics/wsnperf/wsnperf"
)

// SetTrafficClass marks outgoing packets of a stream connection. IPv4
// sockets get the value as TOS.
func (c *Config) SetTrafficClass(conn net.Conn) error {
	if c.TrafficClass == 0 {
		return nil
	}
	var err error
	if c.IPVersion == wsnperf.IPv4 {
		err = ipv4.NewConn(conn).SetTOS(c.TrafficClass)
	} else {
		err = ipv6.NewConn(conn).SetTrafficClass(c.TrafficClass)
	}
	if err != nil {
		return fmt.Errorf("unable to set traffic class %d: %w", c.TrafficClass, err)
	}
	return nil
}

func (c *Config) SetPacketTrafficClass(conn net.PacketConn) error {
	if c.TrafficClass == 0 {
		return nil
	}
	var err error
	if c.IPVersion == wsnperf.IPv4 {
		err = ipv4.NewPacketConn(conn).SetTOS(c.TrafficClass)
	} else {
		err = ipv6.NewPacketConn(conn).SetTrafficClass(c.TrafficClass)
	}
	if err != nil {
		return fmt.Errorf("unable to set traffic class %d: %w", c.TrafficClass, err)
	}
	return nil
}
