package throughput

import (
	"io"
	"net"

	"github.com/scanimetrics/wsnperf/wsnperf"
)

// DefaultStreamBufferSize is the read size of a StreamMeter. A BufferSize of
// 1 reads the stream a byte at a time.
const DefaultStreamBufferSize = 2048

type StreamMeter struct {
	Sinks
	BufferSize int
}

// Measure reads r until the peer closes it. Any error other than io.EOF is
// returned as a *FatalError and no result is reported.
func (m *StreamMeter) Measure(r io.Reader) (Result, error) {
	s := m.Sinks.withDefaults()
	size := m.BufferSize
	if size <= 0 {
		size = DefaultStreamBufferSize
	}
	buf := make([]byte, size)

	res := Result{Protocol: wsnperf.TCP}
	if rc, ok := r.(interface{ RemoteAddr() net.Addr }); ok && rc.RemoteAddr() != nil {
		res.Peer = rc.RemoteAddr().String()
	}

	n, err := r.Read(buf)
	res.Window.Start = s.Clock.Now()
	for {
		if n > 0 {
			res.Bytes += uint32(n)
			s.Progress.Update(false, res.Bytes, uint32(n))
			s.Observer.Received(wsnperf.TCP, n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, &FatalError{Op: "read", Err: err}
		}
		n, err = r.Read(buf)
	}
	res.StopReason = StopPeerClosed

	s.finish(&res)
	return res, nil
}
