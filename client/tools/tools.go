package tools

import (
	"fmt"
	"net"
	"strconv"

	"github.com/scanimetrics/wsnperf/wsnperf"
)

type Tools struct {
	IPVersion wsnperf.IPVersion

	RemoteIP       net.IP
	RemotePort     uint16
	RemoteHostname string
	RemoteRaw      string

	TrafficClass int
}

// NewTools resolves remote, given as host, IP or host:port. A port in remote
// wins over port.
func NewTools(ipVersion wsnperf.IPVersion, remote string, port uint16, tclass int) (*Tools, error) {
	host, rPort, err := splitRemote(remote, port)
	if err != nil {
		return nil, fmt.Errorf("error parsing server host and port (%s): %w", remote, err)
	}
	ip, err := lookupIP(host, ipVersion)
	if err != nil {
		return nil, err
	}
	if ip.To4() != nil {
		ipVersion = wsnperf.IPv4
	} else {
		ipVersion = wsnperf.IPv6
	}

	return &Tools{
		IPVersion:      ipVersion,
		RemoteIP:       ip,
		RemotePort:     rPort,
		RemoteHostname: host,
		RemoteRaw:      remote,
		TrafficClass:   tclass,
	}, nil
}

func splitRemote(remote string, port uint16) (string, uint16, error) {
	if net.ParseIP(remote) != nil {
		return remote, port, nil
	}
	host, p, err := net.SplitHostPort(remote)
	if err != nil {
		return remote, port, nil
	}
	n, err := strconv.ParseUint(p, 10, 16)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port %q", p)
	}
	return host, uint16(n), nil
}

func lookupIP(host string, ipVersion wsnperf.IPVersion) (net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		return ip, nil
	}
	ips, err := net.LookupIP(host)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup IP address for the server (%s): %w", host, err)
	}
	for _, ip := range ips {
		if ipVersion == wsnperf.IPAny ||
			(ipVersion == wsnperf.IPv4 && ip.To4() != nil) ||
			(ipVersion == wsnperf.IPv6 && ip.To4() == nil) {
			return ip, nil
		}
	}
	return nil, fmt.Errorf("unable to resolve the server (%s) to an %s address", host, ipVersion)
}

func (t *Tools) DialAddr() string {
	return net.JoinHostPort(t.RemoteIP.String(), strconv.Itoa(int(t.RemotePort)))
}
