package payloads

import (
	"fmt"
	"time"

	"github.com/scanimetrics/wsnperf/throughput"
)

// SendReport summarizes what a client sent. Acked and Lost are only
// meaningful in ping-pong mode.
type SendReport struct {
	Messages   uint64
	Bytes      uint64
	Elapsed    time.Duration
	Throughput float64 // kib/s as the server computes it

	PingPong   bool
	Acked      uint64
	Lost       uint64
	Duplicates uint64
	Stray      uint64
}

func (r SendReport) String() string {
	s := fmt.Sprintf("sent %d messages (%d bytes) in %v, ~ %f kib/s", r.Messages, r.Bytes, r.Elapsed, r.Throughput)
	if r.PingPong {
		s += fmt.Sprintf(", acked %d, lost %d", r.Acked, r.Lost)
		if r.Duplicates > 0 {
			s += fmt.Sprintf(", %d duplicate", r.Duplicates)
		}
		if r.Stray > 0 {
			s += fmt.Sprintf(", %d stray", r.Stray)
		}
	}
	return s
}

// Finish stamps the elapsed time and the resulting rate.
func (r *SendReport) Finish(elapsed time.Duration) {
	r.Elapsed = elapsed
	r.Throughput = throughput.Rate(uint32(r.Bytes), elapsed)
}
