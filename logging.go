package main

import (
	"io"

	"github.com/scanimetrics/wsnperf/config"
	"github.com/scanimetrics/wsnperf/log"
	"github.com/scanimetrics/wsnperf/ui"
	"github.com/scanimetrics/wsnperf/wsnperf"
)

const syslogTag = "wsnperf"

// newLogger builds the fan-out logger selected by -logto, -o and -no. With the
// text UI active, stdout logging is redirected into the UI panes.
func newLogger(cfg *config.Config, tui *ui.TUI) (wsnperf.Logger, []io.Closer, error) {
	ll := log.LevelInfo
	if cfg.Debug {
		ll = log.LevelDebug
	}

	logger := log.NewAggregateLogger()
	var closers []io.Closer

	if tui != nil {
		logger.Add(log.NewTuiLogger(ll, tui))
	}
	switch cfg.LogTo {
	case "", "stdout":
		if tui == nil {
			logger.Add(log.NewSTDOutLogger(ll))
		}
	case "syslog":
		l, err := log.NewSyslogLogger(syslogTag, ll)
		if err != nil {
			return nil, closers, err
		}
		logger.Add(l)
		closers = append(closers, l)
	default:
		l, err := log.NewFileLogger(cfg.LogTo, ll)
		if err != nil {
			return nil, closers, err
		}
		logger.Add(l)
		closers = append(closers, l)
	}

	if !cfg.NoOutput && cfg.OutputFile != "" {
		l, err := log.NewJSONLogger(cfg.OutputFile, ll)
		if err != nil {
			return nil, closers, err
		}
		logger.Add(l)
		closers = append(closers, l)
	}
	return logger, closers, nil
}
