package tcp

import (
	"context"
	"net"

	"github.com/scanimetrics/wsnperf/throughput"
)

// ThroughputHandler measures the rate of one streaming client.
type ThroughputHandler struct {
	meter throughput.StreamMeter
}

func NewThroughputHandler(sinks throughput.Sinks, bufferSize int) ThroughputHandler {
	return ThroughputHandler{
		meter: throughput.StreamMeter{Sinks: sinks, BufferSize: bufferSize},
	}
}

func (h ThroughputHandler) HandleConn(_ context.Context, conn net.Conn) error {
	_, err := h.meter.Measure(conn)
	return err
}
