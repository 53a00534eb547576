package tcp

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strings"

	"github.com/scanimetrics/wsnperf/throughput"
	"github.com/scanimetrics/wsnperf/wsnperf"
)

const (
	MaxLine  = 1024
	ExitWord = "exit"
)

// Echo writes every line it reads back to the peer. Lines longer than
// MaxLine are echoed in MaxLine chunks.
type Echo struct {
	logger wsnperf.Logger
}

func NewEcho(logger wsnperf.Logger) Echo {
	return Echo{logger: logger}
}

func (e Echo) HandleConn(_ context.Context, conn net.Conn) error {
	r := bufio.NewReaderSize(conn, MaxLine)
	for {
		line, err := r.ReadSlice('\n')
		if len(line) == 0 {
			if err == nil || errors.Is(err, io.EOF) {
				e.logger.Info("Connection closed by client")
				return nil
			}
			return &throughput.FatalError{Op: "read", Err: err}
		}
		if err != nil && !errors.Is(err, bufio.ErrBufferFull) && !errors.Is(err, io.EOF) {
			return &throughput.FatalError{Op: "read", Err: err}
		}

		if _, werr := conn.Write(line); werr != nil {
			return &throughput.FatalError{Op: "write", Err: werr}
		}

		text := strings.TrimSpace(string(line))
		e.logger.Info("Echo Server: %s", text)
		if text == ExitWord {
			return nil
		}
	}
}
