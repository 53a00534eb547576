package tcp

import (
	"context"
	"fmt"
	"io"

	"github.com/benbjohnson/clock"

	"github.com/scanimetrics/wsnperf/client/payloads"
	"github.com/scanimetrics/wsnperf/client/tools"
)

// Streamer writes Count chunks of Size bytes and then closes the write side,
// which is what ends a stream throughput session.
type Streamer struct {
	Count int
	Size  int
	Bar   io.Writer
	Clock clock.Clock
}

func (s *Streamer) Send(ctx context.Context, conn io.WriteCloser) (payloads.SendReport, error) {
	clk := s.Clock
	if clk == nil {
		clk = clock.New()
	}

	buff := make([]byte, s.Size)
	for i := range buff {
		buff[i] = byte(i)
	}

	var report payloads.SendReport
	bar := tools.NewBar(s.Count, s.Bar)
	start := clk.Now()
	for i := 0; i < s.Count; i++ {
		if err := ctx.Err(); err != nil {
			bar.Finish()
			return report, err
		}
		n, err := conn.Write(buff)
		report.Bytes += uint64(n)
		if err != nil {
			bar.Finish()
			return report, fmt.Errorf("error sending data: %w", err)
		}
		report.Messages++
		bar.Increment()
	}
	bar.Finish()

	if err := conn.Close(); err != nil {
		return report, fmt.Errorf("error closing connection: %w", err)
	}
	report.Finish(clk.Since(start))
	return report, nil
}
