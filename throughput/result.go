package throughput

import (
	"errors"
	"fmt"

	"github.com/scanimetrics/wsnperf/wsnperf"
)

type StopReason uint8

const (
	// StopPeerClosed covers a TCP graceful close and a zero-length datagram.
	StopPeerClosed StopReason = iota
	StopSentinel
)

func (r StopReason) String() string {
	switch r {
	case StopPeerClosed:
		return "peer closed"
	case StopSentinel:
		return "stop sentinel"
	}
	return "unknown"
}

func (r StopReason) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

type Result struct {
	Protocol   wsnperf.Protocol
	Peer       string
	Bytes      uint32
	Throughput float64 // kib/s
	Window     Window
	StopReason StopReason

	// UDP only
	Datagrams uint64
	Replies   uint64
	Malformed uint64
	Dropped   uint64
}

func (r Result) String() string {
	return fmt.Sprintf("%d bytes in %v, %f kib/s (%s)", r.Bytes, r.Window.Elapsed(), r.Throughput, r.StopReason)
}

// FatalError is an I/O failure that ends the measurement without a result.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("error on %s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
