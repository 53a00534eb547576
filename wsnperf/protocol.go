package wsnperf

import "strings"

type Protocol uint32

const (
	TCP Protocol = iota
	UDP
	ProtocolUnknown
)

func (p Protocol) String() string {
	switch p {
	case TCP:
		return "TCP"
	case UDP:
		return "UDP"
	}
	return "UNKNOWN"
}

func (p Protocol) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

func ParseProtocol(s string) Protocol {
	switch strings.ToUpper(s) {
	case "TCP":
		return TCP
	case "UDP":
		return UDP
	}
	return ProtocolUnknown
}

func TCPVersion(v IPVersion) string {
	if v == IPv4 {
		return "tcp4"
	} else if v == IPv6 {
		return "tcp6"
	}
	return "tcp"
}

func UDPVersion(v IPVersion) string {
	if v == IPv4 {
		return "udp4"
	} else if v == IPv6 {
		return "udp6"
	}
	return "udp"
}
