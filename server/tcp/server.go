package tcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/scanimetrics/wsnperf/server"
	"github.com/scanimetrics/wsnperf/wsnperf"
)

func Listen(cfg *server.Config) (net.Listener, error) {
	lc := net.ListenConfig{Control: cfg.Control}
	l, err := lc.Listen(context.Background(), wsnperf.TCPVersion(cfg.IPVersion), cfg.Address())
	if err != nil {
		return nil, fmt.Errorf("unable to listen on %s: %w", cfg.Address(), err)
	}
	return l, nil
}

// Accept waits for one connection. Temporary errors are retried with a
// growing delay, cancelling ctx closes the listener.
func Accept(ctx context.Context, l net.Listener) (net.Conn, error) {
	stop := context.AfterFunc(ctx, func() { _ = l.Close() })
	defer stop()

	// https://golang.org/src/net/http/server.go?s=99574:99629#L3152
	var tempDelay time.Duration // how long to sleep on accept failure
	for {
		conn, err := l.Accept()
		if err == nil {
			return conn, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Temporary() { //nolint:staticcheck
			if tempDelay == 0 {
				tempDelay = 5 * time.Millisecond
			} else {
				tempDelay *= 2
			}
			if max := 1 * time.Second; tempDelay > max {
				tempDelay = max
			}
			time.Sleep(tempDelay)
			continue
		}
		return nil, fmt.Errorf("accept failed: %w", err)
	}
}

// Serve listens, accepts a single peer and hands it to h. The listener and
// the connection are registered with reg for the lifetime of the session.
func Serve(ctx context.Context, cfg *server.Config, reg server.Registrar, logger wsnperf.Logger, name string, h server.Handler) error {
	l, err := Listen(cfg)
	if err != nil {
		return err
	}
	defer l.Close()
	if err := reg.Register(l); err != nil {
		return err
	}
	logger.Info("Creating %s server on port %d", name, server.Port(l.Addr()))

	conn, err := Accept(ctx, l)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := reg.Register(conn); err != nil {
		return err
	}
	logger.Info("Incoming connection from: %s", server.FormatAddr(conn.RemoteAddr()))

	if err := cfg.SetTrafficClass(conn); err != nil {
		logger.Error("%v", err)
	}

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	err = h.HandleConn(ctx, conn)
	reg.Stop()
	return err
}
