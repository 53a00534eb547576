package server

import (
	"net"
	"strconv"

	"github.com/scanimetrics/wsnperf/config"
	"github.com/scanimetrics/wsnperf/wsnperf"
)

type Config struct {
	IPVersion    wsnperf.IPVersion
	LocalIP      net.IP
	Port         uint16
	V6Only       bool
	TrafficClass int
	// ReadBuffer is the socket receive buffer in bytes, zero keeps the OS default.
	ReadBuffer int
}

func NewConfig(cfg *config.Config) *Config {
	return &Config{
		IPVersion:    cfg.IPVersion,
		LocalIP:      cfg.LocalIP,
		Port:         cfg.Port,
		V6Only:       cfg.V6Only,
		TrafficClass: cfg.TrafficClass,
	}
}

// Address is the host:port to bind. An unset LocalIP binds every address.
func (c *Config) Address() string {
	return GetAddrString(c.LocalIP, c.Port)
}

func GetAddrString(ip net.IP, port uint16) string {
	host := ""
	if ip != nil {
		host = ip.String()
	}
	return net.JoinHostPort(host, strconv.Itoa(int(port)))
}

// FormatAddr returns the bare IP of a peer, or the full address when it has none.
func FormatAddr(addr net.Addr) string {
	switch a := addr.(type) {
	case *net.TCPAddr:
		return a.IP.String()
	case *net.UDPAddr:
		return a.IP.String()
	case nil:
		return ""
	}
	return addr.String()
}

// Port reports the bound port of a listener or packet socket.
func Port(addr net.Addr) int {
	switch a := addr.(type) {
	case *net.TCPAddr:
		return a.Port
	case *net.UDPAddr:
		return a.Port
	}
	return 0
}
