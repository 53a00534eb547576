package wsnperf

type Logger interface {
	Error(format string, args ...interface{})
	Info(format string, args ...interface{})
	Debug(format string, args ...interface{})
	TestResult(mode Mode, success bool, protocol Protocol, remote string, result interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Debug(string, ...interface{}) {}

func (NopLogger) TestResult(Mode, bool, Protocol, string, interface{}) {}
