package log

import (
	"fmt"

	"github.com/scanimetrics/wsnperf/wsnperf"
)

// MessageSink is the part of ui.TUI the logger draws into.
type MessageSink interface {
	AddInfoMsg(msg string)
	AddErrorMsg(msg string)
}

type TuiLogger struct {
	ui MessageSink
	ll LogLevel
}

func NewTuiLogger(ll LogLevel, ui MessageSink) *TuiLogger {
	return &TuiLogger{
		ui: ui,
		ll: ll,
	}
}

func (l *TuiLogger) Error(format string, args ...interface{}) {
	l.ui.AddErrorMsg(fmt.Sprintf(format, args...))
}

func (l *TuiLogger) Info(format string, args ...interface{}) {
	if l.ll <= LevelInfo {
		l.ui.AddInfoMsg(fmt.Sprintf(format, args...))
	}
}

func (l *TuiLogger) Debug(format string, args ...interface{}) {
	if l.ll == LevelDebug {
		l.ui.AddInfoMsg(fmt.Sprintf(format, args...))
	}
}

func (l *TuiLogger) TestResult(mode wsnperf.Mode, success bool, protocol wsnperf.Protocol, remote string, result interface{}) {
	if s, ok := result.(fmt.Stringer); ok && success {
		l.ui.AddInfoMsg(fmt.Sprintf("%s %s %s: %s", mode, protocol, remote, s))
	}
}
