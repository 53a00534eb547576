package throughput

import (
	"io"
	"net"

	"github.com/scanimetrics/wsnperf/packet"
	"github.com/scanimetrics/wsnperf/wsnperf"
)

// DefaultDatagramBufferSize fits the largest UDP payload.
const DefaultDatagramBufferSize = 64 * 1024

// MinDatagramBufferSize is the smallest read buffer a DatagramMeter uses.
// Smaller buffers would truncate datagrams, undercounting bytes and hiding
// a sentinel placed past the cut.
const MinDatagramBufferSize = 2048

// DatagramMeter measures the first peer that sends to an unconnected UDP
// socket. Once that peer is known the socket is connected to it, so the
// kernel only queues its datagrams and reports errors about it, such as a
// refused acknowledgement, on the next receive. Connections that are not
// backed by a socket fall back to dropping datagrams from other addresses.
//
// The session ends on a datagram carrying packet.StopSentinel or on a
// zero-length datagram. In ping-pong mode every other non-empty datagram is
// acknowledged with its sequence number.
type DatagramMeter struct {
	Sinks
	BufferSize int
	PingPong   bool
}

func (m *DatagramMeter) Measure(conn net.PacketConn) (Result, error) {
	s := m.Sinks.withDefaults()
	size := m.BufferSize
	switch {
	case size <= 0:
		size = DefaultDatagramBufferSize
	case size < MinDatagramBufferSize:
		size = MinDatagramBufferSize
	}
	buf := make([]byte, size)

	n, peer, err := conn.ReadFrom(buf)
	if err != nil {
		return Result{}, &FatalError{Op: "receive", Err: err}
	}
	res := Result{
		Protocol: wsnperf.UDP,
		Peer:     peer.String(),
		Window:   Window{Start: s.Clock.Now()},
	}
	s.Logger.Info("Incoming connection from: %s", peer)

	connected, err := connectPeer(conn, peer)
	if err != nil {
		return Result{}, &FatalError{Op: "connect", Err: err}
	}
	send := func(b []byte) (int, error) { return conn.WriteTo(b, peer) }
	if w, ok := conn.(io.Writer); ok && connected {
		// Some systems refuse sendto with an address on a connected socket.
		send = w.Write
	}

	for {
		payload := buf[:n]
		res.Bytes += uint32(n)
		res.Datagrams++
		s.Progress.Update(false, res.Bytes, uint32(n))
		s.Observer.Received(wsnperf.UDP, n)

		// Checked before acknowledging: a stop datagram is never answered,
		// even when it also starts with a sequence number.
		if packet.HasStopSentinel(payload) {
			res.StopReason = StopSentinel
			break
		}
		if m.PingPong && n > 0 {
			if err := m.acknowledge(s, send, payload, &res); err != nil {
				return Result{}, err
			}
		}

		n, err = m.receiveFrom(s, conn, peer, buf, &res)
		if err != nil {
			return Result{}, &FatalError{Op: "receive", Err: err}
		}
		if n == 0 {
			res.StopReason = StopPeerClosed
			break
		}
	}

	s.finish(&res)
	return res, nil
}

func (m *DatagramMeter) acknowledge(s Sinks, send func([]byte) (int, error), payload []byte, res *Result) error {
	reply := packet.BuildReply(payload)
	if len(reply) == 0 {
		res.Malformed++
		s.Observer.Malformed()
		s.Logger.Error("Malformed packet!")
		return nil
	}
	w, err := send(reply)
	if err != nil {
		return &FatalError{Op: "send", Err: err}
	}
	if w != len(reply) {
		return &FatalError{Op: "send", Err: io.ErrShortWrite}
	}
	res.Replies++
	s.Observer.Replied()
	return nil
}

// receiveFrom blocks until a datagram from peer arrives.
func (m *DatagramMeter) receiveFrom(s Sinks, conn net.PacketConn, peer net.Addr, buf []byte, res *Result) (int, error) {
	for {
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			return 0, err
		}
		if sameAddr(from, peer) {
			return n, nil
		}
		res.Dropped++
		s.Observer.Dropped()
		s.Logger.Debug("Dropping %d byte datagram from %s, session peer is %s", n, from, peer)
	}
}

func sameAddr(a, b net.Addr) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Network() == b.Network() && a.String() == b.String()
}
