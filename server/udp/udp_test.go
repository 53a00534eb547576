package udp

import (
	"context"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanimetrics/wsnperf/guard"
	"github.com/scanimetrics/wsnperf/packet"
	"github.com/scanimetrics/wsnperf/server"
	"github.com/scanimetrics/wsnperf/throughput"
	"github.com/scanimetrics/wsnperf/wsnperf"
)

type registrar struct {
	closers []io.Closer
	stopped bool
}

func (r *registrar) Register(c io.Closer) error {
	r.closers = append(r.closers, c)
	return nil
}

func (r *registrar) Stop() { r.stopped = true }

func TestListen(t *testing.T) {
	cfg := &server.Config{IPVersion: wsnperf.IPv4, LocalIP: net.ParseIP("127.0.0.1"), TrafficClass: 0x20}
	conn, err := Listen(cfg)
	require.NoError(t, err)
	defer conn.Close()
	assert.NotZero(t, server.Port(conn.LocalAddr()))
}

func TestServePingPong(t *testing.T) {
	pc, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	port := server.Port(pc.LocalAddr())
	pc.Close()

	cfg := &server.Config{IPVersion: wsnperf.IPv4, LocalIP: net.ParseIP("127.0.0.1"), Port: uint16(port)}
	reg := &registrar{}
	results := make(chan throughput.Result, 1)
	h := NewHandler(throughput.Sinks{
		Reporter: throughput.ReporterFunc(func(r throughput.Result) { results <- r }),
	}, 0, true, 10*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- Serve(context.Background(), cfg, reg, wsnperf.NopLogger{}, h) }()

	client, err := net.Dial("udp4", cfg.Address())
	require.NoError(t, err)
	defer client.Close()

	// Resend until the server is bound and acknowledges the first datagram.
	msg := packet.AppendSequenceNumber(nil, 42)
	reply := make([]byte, 16)
	require.Eventually(t, func() bool {
		if _, err := client.Write(msg); err != nil {
			return false
		}
		_ = client.SetReadDeadline(time.Now().Add(50 * time.Millisecond))
		n, err := client.Read(reply)
		return err == nil && n == packet.SequenceSize
	}, 5*time.Second, 10*time.Millisecond)
	seq, err := packet.SequenceNumber(reply)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), seq)

	_, err = client.Write(packet.StopSentinel[:])
	require.NoError(t, err)

	require.NoError(t, <-done)
	res := <-results
	assert.Equal(t, throughput.StopSentinel, res.StopReason)
	assert.GreaterOrEqual(t, res.Datagrams, uint64(2))
	assert.Len(t, reg.closers, 1)
	assert.True(t, reg.stopped)
}

func TestServeCancelled(t *testing.T) {
	cfg := &server.Config{IPVersion: wsnperf.IPv4, LocalIP: net.ParseIP("127.0.0.1")}
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHandler(throughput.Sinks{}, 0, false, 0)

	done := make(chan error, 1)
	go func() { done <- Serve(ctx, cfg, &registrar{}, wsnperf.NopLogger{}, h) }()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.True(t, throughput.IsFatal(err))
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return")
	}
}

type exitRecorder struct {
	mu    sync.Mutex
	codes []int
}

func (e *exitRecorder) exit(code int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.codes = append(e.codes, code)
}

func TestServeTerminateMidSession(t *testing.T) {
	pc, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	port := server.Port(pc.LocalAddr())
	pc.Close()

	exits := &exitRecorder{}
	g := guard.New(guard.DefaultCapacity, guard.WithExit(exits.exit))
	cfg := &server.Config{IPVersion: wsnperf.IPv4, LocalIP: net.ParseIP("127.0.0.1"), Port: uint16(port)}
	results := make(chan throughput.Result, 1)
	h := NewHandler(throughput.Sinks{
		Reporter: throughput.ReporterFunc(func(r throughput.Result) { results <- r }),
	}, 0, true, 0)

	done := make(chan error, 1)
	go func() { done <- Serve(context.Background(), cfg, g, wsnperf.NopLogger{}, h) }()

	client, err := net.Dial("udp4", cfg.Address())
	require.NoError(t, err)
	defer client.Close()

	// An acknowledgement means the session is running and the meter is
	// waiting for more datagrams.
	reply := make([]byte, 16)
	require.Eventually(t, func() bool {
		if _, err := client.Write(packet.AppendSequenceNumber(nil, 1)); err != nil {
			return false
		}
		_ = client.SetReadDeadline(time.Now().Add(50 * time.Millisecond))
		n, err := client.Read(reply)
		return err == nil && n == packet.SequenceSize
	}, 5*time.Second, 10*time.Millisecond)
	require.Equal(t, 1, g.Len())

	g.Terminate()

	select {
	case err := <-done:
		assert.True(t, throughput.IsFatal(err))
		assert.ErrorIs(t, err, net.ErrClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return")
	}
	assert.Equal(t, []int{1}, exits.codes)
	assert.Zero(t, g.Len())
	assert.Empty(t, results)
}
