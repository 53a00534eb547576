package udp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/scanimetrics/wsnperf/client/payloads"
	"github.com/scanimetrics/wsnperf/client/tools"
	"github.com/scanimetrics/wsnperf/packet"
	"github.com/scanimetrics/wsnperf/wsnperf"
)

const DefaultAckWait = 500 * time.Millisecond

var ErrMessageTooShort = errors.New("message too short to carry a sequence number")

// Sender streams Count datagrams of Size bytes to a throughput server, then
// StopRepeat stop messages. Each datagram starts with its little-endian
// sequence number and is zero padded.
type Sender struct {
	Count      int
	Size       int
	StopRepeat int
	Gap        time.Duration
	PingPong   bool
	// AckWait is how long to keep reading acknowledgements after the stop
	// messages went out.
	AckWait time.Duration
	// Bar receives the progress bar, nil disables it.
	Bar    io.Writer
	Clock  clock.Clock
	Logger wsnperf.Logger
}

func (s *Sender) Send(ctx context.Context, conn net.Conn) (payloads.SendReport, error) {
	if s.Size < packet.SequenceSize {
		return payloads.SendReport{}, fmt.Errorf("%w: %d bytes", ErrMessageTooShort, s.Size)
	}
	clk := s.Clock
	if clk == nil {
		clk = clock.New()
	}
	logger := s.Logger
	if logger == nil {
		logger = wsnperf.NopLogger{}
	}

	report := payloads.SendReport{PingPong: s.PingPong}
	var acks *ackCounter
	var wg sync.WaitGroup
	if s.PingPong {
		acks = newAckCounter(s.Count)
		wg.Add(1)
		go func() {
			defer wg.Done()
			acks.run(conn, logger)
		}()
	}

	bar := tools.NewBar(s.Count, s.Bar)
	abort := func(err error) (payloads.SendReport, error) {
		bar.Finish()
		if acks != nil {
			_ = conn.SetReadDeadline(time.Now())
			wg.Wait()
		}
		return report, err
	}

	msg := make([]byte, s.Size)
	start := clk.Now()
	for seq := 0; seq < s.Count; seq++ {
		if err := ctx.Err(); err != nil {
			return abort(err)
		}
		packet.AppendSequenceNumber(msg[:0], uint32(seq))
		if _, err := conn.Write(msg); err != nil {
			return abort(fmt.Errorf("unable to communicate on socket: %w", err))
		}
		report.Messages++
		report.Bytes += uint64(len(msg))
		bar.Increment()
		if s.Gap > 0 {
			clk.Sleep(s.Gap)
		}
	}
	bar.Finish()

	stop := make([]byte, s.Size)
	for i := range stop {
		stop[i] = 0xFF
	}
	for i := 0; i < s.StopRepeat; i++ {
		if _, err := conn.Write(stop); err != nil {
			return abort(fmt.Errorf("unable to communicate on socket: %w", err))
		}
	}
	report.Finish(clk.Since(start))

	if acks != nil {
		wait := s.AckWait
		if wait == 0 {
			wait = DefaultAckWait
		}
		_ = conn.SetReadDeadline(time.Now().Add(wait))
		wg.Wait()
		acks.fill(&report)
	}
	return report, nil
}

// ackCounter records which sequence numbers came back.
type ackCounter struct {
	mu    sync.Mutex
	seen  []bool
	acked uint64
	dups  uint64
	stray uint64
}

func newAckCounter(count int) *ackCounter {
	return &ackCounter{seen: make([]bool, count)}
}

// run reads until the read deadline passes, conn is closed or a read fails.
// A refused connection, reported for an ICMP error about an earlier
// datagram, is the only error the reader keeps going after.
func (a *ackCounter) run(conn net.Conn, logger wsnperf.Logger) {
	buf := make([]byte, 64)
	for {
		n, err := conn.Read(buf)
		if errors.Is(err, syscall.ECONNREFUSED) {
			logger.Debug("Acknowledgement refused: %v", err)
			continue
		}
		if err != nil {
			if !errors.Is(err, os.ErrDeadlineExceeded) && !errors.Is(err, net.ErrClosed) {
				logger.Error("Error receiving acknowledgement: %v", err)
			}
			return
		}
		seq, err := packet.SequenceNumber(buf[:n])
		if err != nil {
			a.record(-1)
			continue
		}
		a.record(int64(seq))
	}
}

func (a *ackCounter) record(seq int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch {
	case seq < 0 || seq >= int64(len(a.seen)):
		a.stray++
	case a.seen[seq]:
		a.dups++
	default:
		a.seen[seq] = true
		a.acked++
	}
}

func (a *ackCounter) fill(r *payloads.SendReport) {
	a.mu.Lock()
	defer a.mu.Unlock()
	r.Acked = a.acked
	r.Lost = uint64(len(a.seen)) - a.acked
	r.Duplicates = a.dups
	r.Stray = a.stray
}
