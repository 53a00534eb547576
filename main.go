package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/scanimetrics/wsnperf/client"
	"github.com/scanimetrics/wsnperf/config"
	"github.com/scanimetrics/wsnperf/guard"
	"github.com/scanimetrics/wsnperf/metric"
	"github.com/scanimetrics/wsnperf/server"
	"github.com/scanimetrics/wsnperf/server/tcp"
	"github.com/scanimetrics/wsnperf/server/udp"
	"github.com/scanimetrics/wsnperf/throughput"
	"github.com/scanimetrics/wsnperf/ui"
	"github.com/scanimetrics/wsnperf/wsnperf"
)

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Try -h to get help text\n")
		os.Exit(1)
	}

	g := guard.New(guard.DefaultCapacity)
	g.Watch(os.Interrupt, syscall.SIGTERM)

	var tui *ui.TUI
	if cfg.ShowUI {
		tui, err = ui.NewTUI(fmt.Sprintf("wsnperf %s (%s)", cfg.Mode, cfg.Protocol), g.Terminate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := g.Register(tui); err != nil {
			tui.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	logger, closers, err := newLogger(cfg, tui)
	if err != nil {
		fail(tui, nil, err, g)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var observer throughput.Observer
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			metric.NewNetStatCollector(logger),
		)
		rec, err := metric.NewRecorder(reg)
		if err != nil {
			fail(tui, logger, err, g)
		}
		observer = rec
		go func() {
			if err := metric.Serve(ctx, cfg.MetricsAddr, reg); err != nil {
				logger.Error("Metrics server stopped: %v", err)
			}
		}()
		logger.Info("Serving metrics on %s%s", cfg.MetricsAddr, metric.Endpoint)
	}

	var final *throughput.Result
	if cfg.Mode == wsnperf.ModeClient {
		err = runClient(ctx, cfg, logger)
	} else {
		final, err = runServer(ctx, cfg, g, logger, tui, observer)
	}
	if err != nil {
		fail(tui, logger, err, g)
	}

	if tui != nil {
		tui.Close()
		if final != nil {
			ui.TextReporter{W: os.Stdout}.Report(*final)
		}
	}
	for _, c := range closers {
		_ = c.Close()
	}
}

// fail reports err and terminates through the guard, closing every
// registered resource.
func fail(tui *ui.TUI, logger wsnperf.Logger, err error, g *guard.Guard) {
	if logger != nil {
		logger.Error("%v", err)
	}
	if tui != nil {
		tui.Close()
	}
	if tui != nil || logger == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	g.Terminate()
}

// runServer runs one session of the selected server. With the text UI the
// final report is returned so it can be printed once the terminal is restored.
func runServer(ctx context.Context, cfg *config.Config, g *guard.Guard, logger wsnperf.Logger, tui *ui.TUI, observer throughput.Observer) (*throughput.Result, error) {
	scfg := server.NewConfig(cfg)

	var final *throughput.Result
	var progress throughput.Progress = ui.NewStarProgress(os.Stdout)
	if tui != nil {
		progress = tui
	}
	text := ui.TextReporter{W: os.Stdout}
	sinks := throughput.Sinks{
		Progress: progress,
		Reporter: throughput.ReporterFunc(func(res throughput.Result) {
			if tui == nil {
				text.Report(res)
			} else {
				final = &res
			}
			logger.TestResult(wsnperf.ModeThroughput, true, res.Protocol, res.Peer, res)
		}),
		Observer: observer,
		Logger:   logger,
	}

	var err error
	switch {
	case cfg.Mode == wsnperf.ModeEcho:
		err = tcp.Serve(ctx, scfg, g, logger, "echo", tcp.NewEcho(logger))
	case cfg.Protocol == wsnperf.TCP:
		err = tcp.Serve(ctx, scfg, g, logger, "throughput", tcp.NewThroughputHandler(sinks, cfg.BufferSize))
	default:
		err = udp.Serve(ctx, scfg, g, logger, udp.NewHandler(sinks, cfg.BufferSize, cfg.PingPong, cfg.Linger))
	}
	return final, err
}

func runClient(ctx context.Context, cfg *config.Config, logger wsnperf.Logger) error {
	params := client.Params{
		Protocol:   cfg.Protocol,
		Count:      cfg.Count,
		Size:       cfg.Size,
		Gap:        cfg.Gap,
		StopRepeat: cfg.StopRepeat,
		PingPong:   cfg.PingPong,
	}
	c, err := client.NewClient(logger, params, cfg.ClientDest, cfg.Port, cfg.IPVersion, cfg.TrafficClass)
	if err != nil {
		return err
	}
	c.Bar = os.Stderr

	report, err := c.Run(ctx)
	logger.TestResult(wsnperf.ModeClient, err == nil, cfg.Protocol, c.NetTools.DialAddr(), report)
	return err
}
