package server

import (
	"context"
	"io"
	"net"
)

// Handler serves one accepted stream connection.
type Handler interface {
	HandleConn(ctx context.Context, conn net.Conn) error
}

type HandlerFunc func(ctx context.Context, conn net.Conn) error

func (f HandlerFunc) HandleConn(ctx context.Context, conn net.Conn) error {
	return f(ctx, conn)
}

// PacketHandler serves one datagram session.
type PacketHandler interface {
	HandlePacketConn(ctx context.Context, conn net.PacketConn) error
}

// Registrar is the part of guard.Guard the servers need: every socket is
// registered as soon as it exists and the set is released once the session
// ends normally.
type Registrar interface {
	Register(c io.Closer) error
	Stop()
}
