package wsnperf

import "strings"

// Mode selects what the server does with the single peer it accepts.
type Mode uint32

const (
	ModeThroughput Mode = iota
	ModeEcho
	ModeClient
	ModeUnknown
)

func (m Mode) String() string {
	switch m {
	case ModeThroughput:
		return "Throughput"
	case ModeEcho:
		return "Echo"
	case ModeClient:
		return "Client"
	}
	return "UNKNOWN"
}

func (m Mode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func ParseMode(s string) Mode {
	switch strings.ToUpper(s) {
	case "T", "THROUGHPUT":
		return ModeThroughput
	case "E", "ECHO":
		return ModeEcho
	case "C", "CLIENT":
		return ModeClient
	}
	return ModeUnknown
}
