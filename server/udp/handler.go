package udp

import (
	"context"
	"net"
	"time"

	"github.com/scanimetrics/wsnperf/throughput"
)

type Handler struct {
	meter  throughput.DatagramMeter
	linger time.Duration
}

// NewHandler measures one datagram session. After the session the socket
// stays open for linger so that late retries are absorbed instead of
// bouncing back as ICMP unreachable.
func NewHandler(sinks throughput.Sinks, bufferSize int, pingPong bool, linger time.Duration) Handler {
	return Handler{
		meter: throughput.DatagramMeter{
			Sinks:      sinks,
			BufferSize: bufferSize,
			PingPong:   pingPong,
		},
		linger: linger,
	}
}

func (h Handler) HandlePacketConn(ctx context.Context, conn net.PacketConn) error {
	if _, err := h.meter.Measure(conn); err != nil {
		return err
	}
	if h.linger > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(h.linger):
		}
	}
	return nil
}
