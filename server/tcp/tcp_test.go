package tcp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanimetrics/wsnperf/guard"
	"github.com/scanimetrics/wsnperf/server"
	"github.com/scanimetrics/wsnperf/throughput"
	"github.com/scanimetrics/wsnperf/wsnperf"
)

type logRecorder struct {
	wsnperf.NopLogger
	mu   sync.Mutex
	info []string
}

func (l *logRecorder) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.info = append(l.info, fmt.Sprintf(format, args...))
}

func (l *logRecorder) lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.info...)
}

type registrar struct {
	mu      sync.Mutex
	closers []io.Closer
	stopped bool
}

func (r *registrar) Register(c io.Closer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closers = append(r.closers, c)
	return nil
}

func (r *registrar) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
}

func TestEcho(t *testing.T) {
	client, srv := net.Pipe()
	logger := &logRecorder{}
	done := make(chan error, 1)
	go func() { done <- NewEcho(logger).HandleConn(context.Background(), srv) }()

	r := bufio.NewReader(client)
	for _, line := range []string{"hello\n", "  spaced out \n", "exit\n"} {
		_, err := client.Write([]byte(line))
		require.NoError(t, err)
		got, err := r.ReadString('\n')
		require.NoError(t, err)
		assert.Equal(t, line, got)
	}
	require.NoError(t, <-done)
	assert.Equal(t, []string{"Echo Server: hello", "Echo Server: spaced out", "Echo Server: exit"}, logger.lines())
	client.Close()
	srv.Close()
}

func TestEchoPeerClose(t *testing.T) {
	client, srv := net.Pipe()
	logger := &logRecorder{}
	done := make(chan error, 1)
	go func() { done <- NewEcho(logger).HandleConn(context.Background(), srv) }()

	_, err := client.Write([]byte("bye\n"))
	require.NoError(t, err)
	_, err = bufio.NewReader(client).ReadString('\n')
	require.NoError(t, err)
	client.Close()

	require.NoError(t, <-done)
	assert.Equal(t, "Connection closed by client", logger.lines()[len(logger.lines())-1])
}

func TestEchoLongLine(t *testing.T) {
	client, srv := net.Pipe()
	done := make(chan error, 1)
	go func() { done <- NewEcho(wsnperf.NopLogger{}).HandleConn(context.Background(), srv) }()

	long := strings.Repeat("a", MaxLine+10) + "\n"
	go func() { _, _ = client.Write([]byte(long)) }()

	got := make([]byte, len(long))
	_, err := io.ReadFull(client, got)
	require.NoError(t, err)
	assert.Equal(t, long, string(got))
	client.Close()
	require.NoError(t, <-done)
}

func TestServeThroughput(t *testing.T) {
	ip := net.ParseIP("127.0.0.1")
	cfg := &server.Config{IPVersion: wsnperf.IPv4, LocalIP: ip}
	reg := &registrar{}
	logger := &logRecorder{}

	results := make(chan throughput.Result, 1)
	h := NewThroughputHandler(throughput.Sinks{
		Reporter: throughput.ReporterFunc(func(r throughput.Result) { results <- r }),
	}, 0)

	// Grab a free port first so the client knows where to dial.
	l, err := net.Listen("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	cfg.Port = uint16(server.Port(l.Addr()))
	l.Close()

	done := make(chan error, 1)
	go func() { done <- Serve(context.Background(), cfg, reg, logger, "throughput", h) }()

	var conn net.Conn
	require.Eventually(t, func() bool {
		conn, err = net.Dial("tcp4", cfg.Address())
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)
	_, err = conn.Write(make([]byte, 5000))
	require.NoError(t, err)
	conn.Close()

	require.NoError(t, <-done)
	res := <-results
	assert.Equal(t, uint32(5000), res.Bytes)
	assert.Equal(t, wsnperf.TCP, res.Protocol)
	assert.Len(t, reg.closers, 2)
	assert.True(t, reg.stopped)
	assert.Contains(t, logger.lines(), "Incoming connection from: 127.0.0.1")
}

func TestAcceptCancel(t *testing.T) {
	l, err := net.Listen("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := Accept(ctx, l)
		done <- err
	}()
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("accept did not return")
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

func TestServeTerminateMidTransfer(t *testing.T) {
	l, err := net.Listen("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	port := uint16(server.Port(l.Addr()))
	l.Close()

	exits := &exitRecorder{}
	g := guard.New(guard.DefaultCapacity, guard.WithExit(exits.exit))
	cfg := &server.Config{IPVersion: wsnperf.IPv4, LocalIP: net.ParseIP("127.0.0.1"), Port: port}
	progress := make(chan uint32, 16)
	h := NewThroughputHandler(throughput.Sinks{
		Progress: throughput.ProgressFunc(func(done bool, total, _ uint32) {
			if !done {
				progress <- total
			}
		}),
	}, 0)

	done := make(chan error, 1)
	go func() { done <- Serve(context.Background(), cfg, g, wsnperf.NopLogger{}, "throughput", h) }()

	var conn net.Conn
	require.Eventually(t, func() bool {
		conn, err = net.Dial("tcp4", cfg.Address())
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)
	defer conn.Close()

	_, err = conn.Write(make([]byte, 100))
	require.NoError(t, err)
	select {
	case <-progress:
	case <-time.After(5 * time.Second):
		t.Fatal("no bytes measured")
	}
	require.Equal(t, 2, g.Len())

	g.Terminate()

	select {
	case err := <-done:
		assert.True(t, throughput.IsFatal(err))
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return")
	}
	assert.Equal(t, []int{1}, exits.codes)
	assert.Zero(t, g.Len())

	// The peer sees the connection go away.
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, err = conn.Read(make([]byte, 1))
	assert.Error(t, err)
}
