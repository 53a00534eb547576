package udp

import (
	"context"
	"fmt"
	"net"
	"runtime"

	"github.com/scanimetrics/wsnperf/server"
	"github.com/scanimetrics/wsnperf/wsnperf"
)

// Listen binds the datagram socket. Unless cfg says otherwise the receive
// buffer is 4MB per CPU so bursts are queued while the meter catches up.
func Listen(cfg *server.Config) (*net.UDPConn, error) {
	lc := net.ListenConfig{Control: cfg.Control}
	pc, err := lc.ListenPacket(context.Background(), wsnperf.UDPVersion(cfg.IPVersion), cfg.Address())
	if err != nil {
		return nil, fmt.Errorf("error listening on %s: %w", cfg.Address(), err)
	}
	conn := pc.(*net.UDPConn)

	size := cfg.ReadBuffer
	if size == 0 {
		size = runtime.NumCPU() * 4 * 1024 * 1024
	}
	// The kernel may clamp the value, which is not an error here.
	_ = conn.SetReadBuffer(size)

	if err := cfg.SetPacketTrafficClass(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// Serve binds the socket, registers it with reg and runs one session on it.
func Serve(ctx context.Context, cfg *server.Config, reg server.Registrar, logger wsnperf.Logger, h server.PacketHandler) error {
	conn, err := Listen(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := reg.Register(conn); err != nil {
		return err
	}
	logger.Info("Creating UDP throughput server on port %d", server.Port(conn.LocalAddr()))

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	err = h.HandlePacketConn(ctx, conn)
	reg.Stop()
	return err
}
