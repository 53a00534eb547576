package log

import (
	"fmt"
	"io"
	"os"

	"github.com/gologme/log"
	gsyslog "github.com/hashicorp/go-syslog"

	"github.com/scanimetrics/wsnperf/wsnperf"
)

// TextLogger writes human readable lines through a leveled gologme logger.
type TextLogger struct {
	logger *log.Logger
	closer io.Closer
}

func NewTextLogger(w io.Writer, ll LogLevel) *TextLogger {
	return newTextLogger(log.New(w, "", log.Flags()), ll)
}

func NewSTDOutLogger(ll LogLevel) *TextLogger {
	return NewTextLogger(os.Stdout, ll)
}

// NewFileLogger appends to the named file.
func NewFileLogger(filename string, ll LogLevel) (*TextLogger, error) {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to open the log file (%s): %w", filename, err)
	}
	l := NewTextLogger(f, ll)
	l.closer = f
	return l, nil
}

// NewSyslogLogger sends lines to the local syslog daemon. Syslog stamps its
// own time so the date and time flags are dropped.
func NewSyslogLogger(tag string, ll LogLevel) (*TextLogger, error) {
	w, err := gsyslog.NewLogger(gsyslog.LOG_NOTICE, "DAEMON", tag)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to syslog: %w", err)
	}
	l := newTextLogger(log.New(w, "", log.Flags()&^(log.Ldate|log.Ltime)), ll)
	l.closer = w
	return l, nil
}

func newTextLogger(logger *log.Logger, ll LogLevel) *TextLogger {
	logger.EnableLevel("error")
	if ll <= LevelInfo {
		logger.EnableLevel("warn")
		logger.EnableLevel("info")
	}
	if ll <= LevelDebug {
		logger.EnableLevel("debug")
	}
	return &TextLogger{logger: logger}
}

func (l *TextLogger) Error(format string, args ...interface{}) {
	l.logger.Errorf(format, args...)
}

func (l *TextLogger) Info(format string, args ...interface{}) {
	l.logger.Infof(format, args...)
}

func (l *TextLogger) Debug(format string, args ...interface{}) {
	l.logger.Debugf(format, args...)
}

func (l *TextLogger) TestResult(mode wsnperf.Mode, success bool, protocol wsnperf.Protocol, remote string, body interface{}) {
	status := "FAILURE"
	if success {
		status = "SUCCESS"
	}
	details := "no details"
	if s, ok := body.(fmt.Stringer); ok {
		details = s.String()
	}
	l.logger.Infof("[RESULT] %s: %s - %s (%s):: %s", mode, status, remote, protocol, details)
}

func (l *TextLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
