// Package throughput measures how fast a single peer delivers bytes over a
// TCP stream or a UDP datagram socket.
package throughput

import (
	"time"
)

// Window is the span over which bytes were counted. Start is taken just after
// the first read or receive returns, End just after the session ended.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Elapsed() time.Duration {
	return w.End.Sub(w.Start)
}

// Rate converts a byte count over elapsed into kibibits per second. A zero
// elapsed time yields 0.
func Rate(bytes uint32, elapsed time.Duration) float64 {
	if elapsed == 0 {
		return 0.0
	}
	kib := float64(bytes) / (1024.0 / 8.0)
	return kib / elapsed.Seconds()
}
