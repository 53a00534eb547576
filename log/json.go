package log

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/scanimetrics/wsnperf/wsnperf"
)

// JSONLogger writes one JSON object per line, suitable for later ingestion.
type JSONLogger struct {
	mu  sync.Mutex
	ll  LogLevel
	enc *json.Encoder
	f   io.Closer
}

func NewJSONLogger(filename string, ll LogLevel) (*JSONLogger, error) {
	if filename == "" {
		return nil, errors.New("filename required")
	}
	logFile, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to open the log file (%s): %w", filename, err)
	}
	l := NewJSONWriterLogger(logFile, ll)
	l.f = logFile
	return l, nil
}

func NewJSONWriterLogger(w io.Writer, ll LogLevel) *JSONLogger {
	return &JSONLogger{ll: ll, enc: json.NewEncoder(w)}
}

func (l *JSONLogger) write(v interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.enc.Encode(v)
}

func (l *JSONLogger) Error(format string, args ...interface{}) {
	l.write(NewMessage(LevelError, fmt.Sprintf(format, args...)))
}

func (l *JSONLogger) Info(format string, args ...interface{}) {
	if l.ll <= LevelInfo {
		l.write(NewMessage(LevelInfo, fmt.Sprintf(format, args...)))
	}
}

func (l *JSONLogger) Debug(format string, args ...interface{}) {
	if l.ll == LevelDebug {
		l.write(NewMessage(LevelDebug, fmt.Sprintf(format, args...)))
	}
}

func (l *JSONLogger) TestResult(mode wsnperf.Mode, success bool, protocol wsnperf.Protocol, remote string, result interface{}) {
	l.write(NewTestResultLog(mode, success, protocol, remote, result))
}

func (l *JSONLogger) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}
