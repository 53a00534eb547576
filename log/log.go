package log

import (
	"fmt"
	"strings"
	"time"

	"github.com/scanimetrics/wsnperf/wsnperf"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(s) {
	case "error":
		return LevelError, nil
	case "info", "":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level: %q", s)
}

type Message struct {
	Timestamp string
	Level     LogLevel
	Message   string
}

func NewMessage(ll LogLevel, msg string) Message {
	return Message{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     ll,
		Message:   msg,
	}
}

type TestResultLog struct {
	Timestamp string
	Mode      wsnperf.Mode
	Protocol  wsnperf.Protocol
	Remote    string
	Success   bool
	Details   interface{}
}

func NewTestResultLog(mode wsnperf.Mode, success bool, protocol wsnperf.Protocol, remote string, details interface{}) TestResultLog {
	return TestResultLog{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Mode:      mode,
		Protocol:  protocol,
		Remote:    remote,
		Success:   success,
		Details:   details,
	}
}
