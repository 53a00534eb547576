package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/scanimetrics/wsnperf/client/payloads"
	"github.com/scanimetrics/wsnperf/client/tcp"
	"github.com/scanimetrics/wsnperf/client/tools"
	"github.com/scanimetrics/wsnperf/client/udp"
	"github.com/scanimetrics/wsnperf/wsnperf"
)

type Params struct {
	Protocol   wsnperf.Protocol
	Count      int
	Size       int
	Gap        time.Duration
	StopRepeat int
	PingPong   bool
}

type Client struct {
	NetTools *tools.Tools
	Params   Params
	Logger   wsnperf.Logger
	// Bar receives progress bars, nil disables them.
	Bar io.Writer
}

func NewClient(logger wsnperf.Logger, params Params, remote string, port uint16, ipVersion wsnperf.IPVersion, tclass int) (*Client, error) {
	t, err := tools.NewTools(ipVersion, remote, port, tclass)
	if err != nil {
		return nil, fmt.Errorf("failed to initial network tools: %w", err)
	}
	if t.RemotePort == 0 {
		return nil, ErrNoPort
	}
	return &Client{
		NetTools: t,
		Params:   params,
		Logger:   logger,
	}, nil
}

func (c Client) Run(ctx context.Context) (payloads.SendReport, error) {
	c.Logger.Info("Using destination: %s, ip: %s, port: %d", c.NetTools.RemoteHostname, c.NetTools.RemoteIP, c.NetTools.RemotePort)
	conn, err := c.NetTools.Dial(c.Params.Protocol)
	if err != nil {
		return payloads.SendReport{}, err
	}
	defer conn.Close()

	switch c.Params.Protocol {
	case wsnperf.TCP:
		s := tcp.Streamer{Count: c.Params.Count, Size: c.Params.Size, Bar: c.Bar}
		return s.Send(ctx, conn)
	case wsnperf.UDP:
		s := udp.Sender{
			Count:      c.Params.Count,
			Size:       c.Params.Size,
			StopRepeat: c.Params.StopRepeat,
			Gap:        c.Params.Gap,
			PingPong:   c.Params.PingPong,
			Bar:        c.Bar,
			Logger:     c.Logger,
		}
		return s.Send(ctx, conn)
	}
	return payloads.SendReport{}, ErrNotImplemented
}
