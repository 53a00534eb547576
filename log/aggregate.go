package log

import (
	"github.com/scanimetrics/wsnperf/wsnperf"
)

type AggregateLogger struct {
	loggers []wsnperf.Logger
}

func NewAggregateLogger(loggers ...wsnperf.Logger) *AggregateLogger {
	return &AggregateLogger{loggers: loggers}
}

func (l *AggregateLogger) Add(logger wsnperf.Logger) {
	l.loggers = append(l.loggers, logger)
}

func (l *AggregateLogger) Error(format string, args ...interface{}) {
	for _, logger := range l.loggers {
		logger.Error(format, args...)
	}
}

func (l *AggregateLogger) Info(format string, args ...interface{}) {
	for _, logger := range l.loggers {
		logger.Info(format, args...)
	}
}

func (l *AggregateLogger) Debug(format string, args ...interface{}) {
	for _, logger := range l.loggers {
		logger.Debug(format, args...)
	}
}

func (l *AggregateLogger) TestResult(mode wsnperf.Mode, success bool, protocol wsnperf.Protocol, remote string, result interface{}) {
	for _, logger := range l.loggers {
		logger.TestResult(mode, success, protocol, remote, result)
	}
}
