package throughput

import (
	"github.com/benbjohnson/clock"

	"github.com/scanimetrics/wsnperf/wsnperf"
)

// Progress is told about every read. done is set exactly once, at the end of
// the session, with added equal to zero.
type Progress interface {
	Update(done bool, total, added uint32)
}

type ProgressFunc func(done bool, total, added uint32)

func (f ProgressFunc) Update(done bool, total, added uint32) {
	f(done, total, added)
}

// Reporter receives the final result of a session.
type Reporter interface {
	Report(Result)
}

type ReporterFunc func(Result)

func (f ReporterFunc) Report(r Result) {
	f(r)
}

// Observer collects per-datagram events, typically for metrics.
type Observer interface {
	Received(protocol wsnperf.Protocol, n int)
	Replied()
	Malformed()
	Dropped()
	Completed(Result)
}

type nopProgress struct{}

func (nopProgress) Update(bool, uint32, uint32) {}

type nopReporter struct{}

func (nopReporter) Report(Result) {}

type nopObserver struct{}

func (nopObserver) Received(wsnperf.Protocol, int) {}
func (nopObserver) Replied()                       {}
func (nopObserver) Malformed()                     {}
func (nopObserver) Dropped()                       {}
func (nopObserver) Completed(Result)               {}

// Sinks holds the collaborators shared by both meters. Nil fields are
// replaced by the real clock and no-op implementations.
type Sinks struct {
	Clock    clock.Clock
	Progress Progress
	Reporter Reporter
	Observer Observer
	Logger   wsnperf.Logger
}

func (s Sinks) withDefaults() Sinks {
	if s.Clock == nil {
		s.Clock = clock.New()
	}
	if s.Progress == nil {
		s.Progress = nopProgress{}
	}
	if s.Reporter == nil {
		s.Reporter = nopReporter{}
	}
	if s.Observer == nil {
		s.Observer = nopObserver{}
	}
	if s.Logger == nil {
		s.Logger = wsnperf.NopLogger{}
	}
	return s
}

func (s Sinks) finish(res *Result) {
	res.Window.End = s.Clock.Now()
	s.Progress.Update(true, res.Bytes, 0)
	res.Throughput = Rate(res.Bytes, res.Window.Elapsed())
	s.Reporter.Report(*res)
	s.Observer.Completed(*res)
}
